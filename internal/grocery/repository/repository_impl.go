package repository

import (
	"context"
	"fmt"

	"github.com/syedfahimdev/omni-admin/internal/grocery/domain"
	"github.com/syedfahimdev/omni-admin/pkg/db/query"
	"gorm.io/gorm"
)

const (
	lowStockListLimit = 100

	dateOnlyLayout = "2006-01-02"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListProducts(ctx context.Context, db *gorm.DB, businessID string) ([]domain.Product, error) {
	q := query.Query{Order: "created_at asc"}.Where(query.Eq("business_id", businessID))
	return query.Find[domain.Product](ctx, db, q)
}

func (r *repo) FindProductByID(ctx context.Context, db *gorm.DB, id string) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repo) InsertProduct(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) UpdateProduct(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (r *repo) ProductNames(ctx context.Context, db *gorm.DB, ids []string) (map[string]string, error) {
	products, err := query.Find[domain.Product](ctx, db, query.Query{}.Where(query.In("id", ids)))
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (r *repo) ListSuppliers(ctx context.Context, db *gorm.DB, businessID string) ([]domain.Supplier, error) {
	q := query.Query{Order: "created_at asc"}.Where(query.Eq("business_id", businessID))
	return query.Find[domain.Supplier](ctx, db, q)
}

func (r *repo) FindSupplierByID(ctx context.Context, db *gorm.DB, id string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := db.WithContext(ctx).First(&supplier, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *repo) InsertSupplier(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).Create(supplier).Error
}

func (r *repo) UpdateSupplier(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Supplier{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (r *repo) SupplierNames(ctx context.Context, db *gorm.DB, ids []string) (map[string]string, error) {
	suppliers, err := query.Find[domain.Supplier](ctx, db, query.Query{}.Where(query.In("id", ids)))
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}
	return names, nil
}

func (r *repo) ListLowStockEvents(ctx context.Context, db *gorm.DB, req domain.ListLowStockRequest) ([]domain.LowStockEvent, error) {
	q := query.Query{Order: "created_at desc", Limit: lowStockListLimit}.
		Where(query.Eq("business_id", req.BusinessID))
	if req.FromDate != nil {
		q = q.Where(query.Gte("created_at", req.FromDate.Format(dateOnlyLayout)))
	}
	if req.ToDate != nil {
		// Roll the upper bound forward one day so the whole closing day
		// is included.
		q = q.Where(query.Lte("created_at", req.ToDate.AddDate(0, 0, 1).Format(dateOnlyLayout)))
	}
	return query.Find[domain.LowStockEvent](ctx, db, q)
}

func (r *repo) ListLedgerEntries(ctx context.Context, db *gorm.DB, businessID string) ([]domain.CreditLedgerEntry, error) {
	q := query.Query{}.Where(query.Eq("business_id", businessID))
	return query.Find[domain.CreditLedgerEntry](ctx, db, q)
}

func (r *repo) ContactLabels(ctx context.Context, db *gorm.DB, ids []string) (map[string]string, error) {
	contacts, err := query.Find[domain.Contact](ctx, db, query.Query{}.Where(query.In("id", ids)))
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(contacts))
	for _, c := range contacts {
		name := c.Name
		if name == "" {
			name = "Unknown"
		}
		labels[c.ID] = fmt.Sprintf("%s (%s)", name, c.Phone)
	}
	return labels, nil
}
