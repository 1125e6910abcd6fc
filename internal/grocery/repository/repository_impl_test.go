package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syedfahimdev/omni-admin/internal/grocery/domain"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(
		&domain.Product{},
		&domain.Supplier{},
		&domain.LowStockEvent{},
		&domain.CreditLedgerEntry{},
		&domain.Contact{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func day(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestContactLabelsFormatsNameAndPhone(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	contacts := []domain.Contact{
		{ID: "c-1", BusinessID: "b-1", Name: "Ahmed", Phone: "0300-1234567"},
		{ID: "c-2", BusinessID: "b-1", Name: "", Phone: "0311-7654321"},
	}
	require.NoError(t, db.Create(&contacts).Error)

	labels, err := repo.ContactLabels(context.Background(), db, []string{"c-1", "c-2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"c-1": "Ahmed (0300-1234567)",
		"c-2": "Unknown (0311-7654321)",
	}, labels)
}

func TestListLowStockEventsWindowIncludesClosingDay(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	events := []domain.LowStockEvent{
		{ID: "ev-1", BusinessID: "b-1", ProductID: "p-1", CreatedAt: "2024-03-01T08:00:00"},
		{ID: "ev-2", BusinessID: "b-1", ProductID: "p-1", CreatedAt: "2024-03-03T23:30:00"},
		{ID: "ev-3", BusinessID: "b-1", ProductID: "p-2", CreatedAt: "2024-03-04T00:10:00"},
		{ID: "ev-4", BusinessID: "b-2", ProductID: "p-9", CreatedAt: "2024-03-03T12:00:00"},
	}
	require.NoError(t, db.Create(&events).Error)

	listed, err := repo.ListLowStockEvents(context.Background(), db, domain.ListLowStockRequest{
		BusinessID: "b-1",
		FromDate:   day("2024-03-02"),
		ToDate:     day("2024-03-03"),
	})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "ev-2", listed[0].ID)
}

func TestListLowStockEventsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	events := []domain.LowStockEvent{
		{ID: "ev-1", BusinessID: "b-1", CreatedAt: "2024-03-01T08:00:00"},
		{ID: "ev-2", BusinessID: "b-1", CreatedAt: "2024-03-02T08:00:00"},
		{ID: "ev-3", BusinessID: "b-1", CreatedAt: "2024-03-03T08:00:00"},
	}
	require.NoError(t, db.Create(&events).Error)

	listed, err := repo.ListLowStockEvents(context.Background(), db, domain.ListLowStockRequest{BusinessID: "b-1"})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{"ev-3", "ev-2", "ev-1"}, []string{listed[0].ID, listed[1].ID, listed[2].ID})
}

func TestProductRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := Provide()

	product := domain.Product{
		ID:         "p-1",
		BusinessID: "b-1",
		Name:       "Basmati Rice 5kg",
		SKU:        "RICE-5KG",
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.InsertProduct(context.Background(), db, &product))

	require.NoError(t, repo.UpdateProduct(context.Background(), db, "p-1", map[string]any{
		"min_stock_level": 10.0,
	}))

	found, err := repo.FindProductByID(context.Background(), db, "p-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 10.0, found.MinStockLevel)

	missing, err := repo.FindProductByID(context.Background(), db, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
