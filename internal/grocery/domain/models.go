package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Product belongs to one business in the grocery vertical. SupplierID is
// nil when the product has no supplier on record.
type Product struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	BusinessID      string    `gorm:"not null;index" json:"business_id"`
	Name            string    `gorm:"not null" json:"name"`
	SKU             string    `gorm:"column:sku" json:"sku"`
	SupplierID      *string   `gorm:"index" json:"supplier_id"`
	IsPerishable    bool      `json:"is_perishable"`
	DefaultPackSize float64   `json:"default_pack_size"`
	MinStockLevel   float64   `json:"min_stock_level"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type Supplier struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	BusinessID     string    `gorm:"not null;index" json:"business_id"`
	Name           string    `gorm:"not null" json:"name"`
	Phone          string    `json:"phone"`
	WhatsappNumber string    `json:"whatsapp_number"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Supplier) TableName() string { return "suppliers" }

// LowStockEvent rows are written by the workflow engine and read-only here.
// CreatedAt is the raw stored timestamp string so display formatting can
// pass unparseable values through unchanged.
type LowStockEvent struct {
	ID            string  `gorm:"primaryKey" json:"id"`
	BusinessID    string  `gorm:"not null;index" json:"business_id"`
	ProductID     string  `gorm:"index" json:"product_id"`
	CurrentStock  float64 `json:"current_stock"`
	MinStockLevel float64 `json:"min_stock_level"`
	ContactPhone  string  `json:"contact_phone"`
	CreatedAt     string  `json:"created_at"`
}

func (LowStockEvent) TableName() string { return "low_stock_events" }

// CreditLedgerEntry is one udhaar ledger row. TransactionDate may be empty
// on older rows, in which case CreatedAt stands in for display.
type CreditLedgerEntry struct {
	ID              string  `gorm:"primaryKey" json:"id"`
	BusinessID      string  `gorm:"not null;index" json:"business_id"`
	ContactID       string  `gorm:"index" json:"contact_id"`
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	TransactionDate string  `json:"transaction_date"`
	Notes           string  `json:"notes"`
	CreatedAt       string  `json:"created_at"`
}

func (CreditLedgerEntry) TableName() string { return "credit_ledger" }

type Contact struct {
	ID         string `gorm:"primaryKey" json:"id"`
	BusinessID string `gorm:"not null;index" json:"business_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

func (Contact) TableName() string { return "contacts" }

// ProductView is a product row with its supplier name resolved.
type ProductView struct {
	Product
	SupplierName string `json:"supplier_name"`
}

type LowStockEventView struct {
	LowStockEvent
	ProductName string `json:"product_name"`
}

type ProductFields struct {
	Name            string
	SKU             string
	SupplierID      *string
	IsPerishable    bool
	DefaultPackSize float64
	MinStockLevel   float64
	IsActive        *bool
}

type SupplierFields struct {
	Name           string
	Phone          string
	WhatsappNumber string
	Email          string
	Address        string
	Notes          string
}

type ListLowStockRequest struct {
	BusinessID string
	FromDate   *time.Time
	ToDate     *time.Time
}

// ContactTotal is the summed ledger amount per contact. Contact carries the
// "name (phone)" display label, empty when the contact row is missing.
type ContactTotal struct {
	ContactID string  `json:"contact_id"`
	Contact   string  `json:"contact"`
	Total     float64 `json:"total"`
}

type LedgerEntryView struct {
	ID              string  `json:"id"`
	ContactID       string  `json:"contact_id"`
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	TransactionDate string  `json:"transaction_date"`
	Notes           string  `json:"notes"`
}

type CreditLedger struct {
	Totals  []ContactTotal    `json:"totals_by_contact"`
	Entries []LedgerEntryView `json:"entries"`
}

type Service interface {
	ListProducts(ctx context.Context, businessID string) ([]ProductView, error)
	CreateProduct(ctx context.Context, businessID string, fields ProductFields) (Product, error)
	UpdateProduct(ctx context.Context, id string, fields ProductFields) (Product, error)

	ListSuppliers(ctx context.Context, businessID string) ([]Supplier, error)
	CreateSupplier(ctx context.Context, businessID string, fields SupplierFields) (Supplier, error)
	UpdateSupplier(ctx context.Context, id string, fields SupplierFields) (Supplier, error)

	ListLowStockEvents(ctx context.Context, req ListLowStockRequest) ([]LowStockEventView, error)
	CreditLedger(ctx context.Context, businessID string) (CreditLedger, error)
}

type Repository interface {
	ListProducts(ctx context.Context, db *gorm.DB, businessID string) ([]Product, error)
	FindProductByID(ctx context.Context, db *gorm.DB, id string) (*Product, error)
	InsertProduct(ctx context.Context, db *gorm.DB, product *Product) error
	UpdateProduct(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error
	ProductNames(ctx context.Context, db *gorm.DB, ids []string) (map[string]string, error)

	ListSuppliers(ctx context.Context, db *gorm.DB, businessID string) ([]Supplier, error)
	FindSupplierByID(ctx context.Context, db *gorm.DB, id string) (*Supplier, error)
	InsertSupplier(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	UpdateSupplier(ctx context.Context, db *gorm.DB, id string, columns map[string]any) error
	SupplierNames(ctx context.Context, db *gorm.DB, ids []string) (map[string]string, error)

	ListLowStockEvents(ctx context.Context, db *gorm.DB, req ListLowStockRequest) ([]LowStockEvent, error)
	ListLedgerEntries(ctx context.Context, db *gorm.DB, businessID string) ([]CreditLedgerEntry, error)
	ContactLabels(ctx context.Context, db *gorm.DB, ids []string) (map[string]string, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("not_found")
)
