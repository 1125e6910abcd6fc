package repository

import (
	"context"

	"github.com/syedfahimdev/omni-admin/internal/business/domain"
	"github.com/syedfahimdev/omni-admin/pkg/db/query"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListBusinessRequest) ([]domain.Business, error) {
	q := query.Query{Order: "created_at desc"}
	if req.Search != "" {
		q = q.Where(query.Or(
			query.ILike("name", req.Search),
			query.ILike("slug", req.Search),
		))
	}
	if req.City != "" {
		q = q.Where(query.ILike("city", req.City))
	}
	if req.Industry != "" {
		q = q.Where(query.ILike("industry", req.Industry))
	}
	if req.ActiveOnly {
		q = q.Where(query.Eq("is_active", true))
	}
	return query.Find[domain.Business](ctx, db, q)
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Business, error) {
	var business domain.Business
	err := db.WithContext(ctx).First(&business, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]domain.Business, error) {
	return query.Find[domain.Business](ctx, db, query.Query{}.Where(query.In("id", ids)))
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, business *domain.Business) error {
	return db.WithContext(ctx).Create(business).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error {
	return db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("id = ?", id).
		Updates(columns).Error
}

func (r *repo) ListChannels(ctx context.Context, db *gorm.DB, businessID string) ([]domain.BusinessChannel, error) {
	q := query.Query{Order: "created_at asc"}.Where(query.Eq("business_id", businessID))
	return query.Find[domain.BusinessChannel](ctx, db, q)
}

func (r *repo) InsertChannel(ctx context.Context, db *gorm.DB, channel *domain.BusinessChannel) error {
	return db.WithContext(ctx).Create(channel).Error
}
