package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB, req ListBusinessRequest) ([]Business, error)
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Business, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []string) ([]Business, error)
	Insert(ctx context.Context, db *gorm.DB, business *Business) error
	Update(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error

	ListChannels(ctx context.Context, db *gorm.DB, businessID string) ([]BusinessChannel, error)
	InsertChannel(ctx context.Context, db *gorm.DB, channel *BusinessChannel) error
}
