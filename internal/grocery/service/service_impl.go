package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/syedfahimdev/omni-admin/internal/grocery/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("grocery.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListProducts(ctx context.Context, businessID string) ([]domain.ProductView, error) {
	products, err := s.repo.ListProducts(ctx, s.db, businessID)
	if err != nil {
		return nil, err
	}

	supplierIDs := make([]string, 0, len(products))
	seen := map[string]bool{}
	for _, p := range products {
		if p.SupplierID == nil || *p.SupplierID == "" || seen[*p.SupplierID] {
			continue
		}
		seen[*p.SupplierID] = true
		supplierIDs = append(supplierIDs, *p.SupplierID)
	}

	// Skip the lookup entirely when no product has a supplier.
	names := map[string]string{}
	if len(supplierIDs) > 0 {
		names, err = s.repo.SupplierNames(ctx, s.db, supplierIDs)
		if err != nil {
			return nil, err
		}
	}

	out := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		view := domain.ProductView{Product: p}
		if p.SupplierID != nil {
			view.SupplierName = names[*p.SupplierID]
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *Service) CreateProduct(ctx context.Context, businessID string, fields domain.ProductFields) (domain.Product, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}

	isActive := true
	if fields.IsActive != nil {
		isActive = *fields.IsActive
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:              uuid.NewString(),
		BusinessID:      businessID,
		Name:            name,
		SKU:             strings.TrimSpace(fields.SKU),
		SupplierID:      fields.SupplierID,
		IsPerishable:    fields.IsPerishable,
		DefaultPackSize: fields.DefaultPackSize,
		MinStockLevel:   fields.MinStockLevel,
		IsActive:        isActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.InsertProduct(ctx, s.db, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, fields domain.ProductFields) (domain.Product, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindProductByID(ctx, s.db, id)
	if err != nil {
		return domain.Product{}, err
	}
	if existing == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	columns := map[string]any{
		"name":              name,
		"sku":               strings.TrimSpace(fields.SKU),
		"is_perishable":     fields.IsPerishable,
		"default_pack_size": fields.DefaultPackSize,
		"min_stock_level":   fields.MinStockLevel,
		"updated_at":        time.Now().UTC(),
	}
	if fields.SupplierID != nil {
		columns["supplier_id"] = *fields.SupplierID
	}
	if fields.IsActive != nil {
		columns["is_active"] = *fields.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, s.db, id, columns); err != nil {
		return domain.Product{}, err
	}

	updated, err := s.repo.FindProductByID(ctx, s.db, id)
	if err != nil {
		return domain.Product{}, err
	}
	return *updated, nil
}

func (s *Service) ListSuppliers(ctx context.Context, businessID string) ([]domain.Supplier, error) {
	return s.repo.ListSuppliers(ctx, s.db, businessID)
}

func (s *Service) CreateSupplier(ctx context.Context, businessID string, fields domain.SupplierFields) (domain.Supplier, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return domain.Supplier{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	supplier := domain.Supplier{
		ID:             uuid.NewString(),
		BusinessID:     businessID,
		Name:           name,
		Phone:          strings.TrimSpace(fields.Phone),
		WhatsappNumber: strings.TrimSpace(fields.WhatsappNumber),
		Email:          strings.TrimSpace(fields.Email),
		Address:        strings.TrimSpace(fields.Address),
		Notes:          fields.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.InsertSupplier(ctx, s.db, &supplier); err != nil {
		return domain.Supplier{}, err
	}
	return supplier, nil
}

func (s *Service) UpdateSupplier(ctx context.Context, id string, fields domain.SupplierFields) (domain.Supplier, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return domain.Supplier{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindSupplierByID(ctx, s.db, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	if existing == nil {
		return domain.Supplier{}, domain.ErrNotFound
	}

	columns := map[string]any{
		"name":            name,
		"phone":           strings.TrimSpace(fields.Phone),
		"whatsapp_number": strings.TrimSpace(fields.WhatsappNumber),
		"email":           strings.TrimSpace(fields.Email),
		"address":         strings.TrimSpace(fields.Address),
		"notes":           fields.Notes,
		"updated_at":      time.Now().UTC(),
	}
	if err := s.repo.UpdateSupplier(ctx, s.db, id, columns); err != nil {
		return domain.Supplier{}, err
	}

	updated, err := s.repo.FindSupplierByID(ctx, s.db, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	return *updated, nil
}

func (s *Service) ListLowStockEvents(ctx context.Context, req domain.ListLowStockRequest) ([]domain.LowStockEventView, error) {
	events, err := s.repo.ListLowStockEvents(ctx, s.db, req)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(events))
	seen := map[string]bool{}
	for _, e := range events {
		if e.ProductID == "" || seen[e.ProductID] {
			continue
		}
		seen[e.ProductID] = true
		productIDs = append(productIDs, e.ProductID)
	}

	names := map[string]string{}
	if len(productIDs) > 0 {
		names, err = s.repo.ProductNames(ctx, s.db, productIDs)
		if err != nil {
			return nil, err
		}
	}

	out := make([]domain.LowStockEventView, 0, len(events))
	for _, e := range events {
		out = append(out, domain.LowStockEventView{
			LowStockEvent: e,
			ProductName:   names[e.ProductID],
		})
	}
	return out, nil
}

func (s *Service) CreditLedger(ctx context.Context, businessID string) (domain.CreditLedger, error) {
	entries, err := s.repo.ListLedgerEntries(ctx, s.db, businessID)
	if err != nil {
		return domain.CreditLedger{}, err
	}

	sums := map[string]float64{}
	contactIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := sums[e.ContactID]; !ok {
			contactIDs = append(contactIDs, e.ContactID)
		}
		sums[e.ContactID] += e.Amount
	}
	sort.Strings(contactIDs)

	labels := map[string]string{}
	if len(contactIDs) > 0 {
		labels, err = s.repo.ContactLabels(ctx, s.db, contactIDs)
		if err != nil {
			s.log.Warn("resolve contact labels", zap.Error(err))
			labels = map[string]string{}
		}
	}

	totals := make([]domain.ContactTotal, 0, len(contactIDs))
	for _, id := range contactIDs {
		totals = append(totals, domain.ContactTotal{
			ContactID: id,
			Contact:   labels[id],
			Total:     sums[id],
		})
	}

	views := make([]domain.LedgerEntryView, 0, len(entries))
	for _, e := range entries {
		// Older rows predate transaction_date; fall back to created_at.
		date := e.TransactionDate
		if date == "" {
			date = e.CreatedAt
		}
		views = append(views, domain.LedgerEntryView{
			ID:              e.ID,
			ContactID:       e.ContactID,
			Amount:          e.Amount,
			TransactionType: e.TransactionType,
			TransactionDate: date,
			Notes:           e.Notes,
		})
	}

	return domain.CreditLedger{Totals: totals, Entries: views}, nil
}
