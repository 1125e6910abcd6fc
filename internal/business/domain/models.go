package domain

import "time"

type Business struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	LegalName      string    `json:"legal_name"`
	Slug           string    `gorm:"uniqueIndex;not null" json:"slug"`
	Industry       string    `json:"industry"`
	Country        string    `json:"country"`
	City           string    `json:"city"`
	Area           string    `json:"area"`
	Address        string    `json:"address"`
	WhatsappNumber string    `json:"whatsapp_number"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Website        string    `json:"website"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Business) TableName() string { return "businesses" }

type BusinessChannel struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	BusinessID  string    `gorm:"not null;index" json:"business_id"`
	ChannelType string    `gorm:"not null" json:"channel_type"`
	Identifier  string    `gorm:"not null" json:"identifier"`
	Provider    string    `json:"provider"`
	IsPrimary   bool      `json:"is_primary"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (BusinessChannel) TableName() string { return "business_channels" }

// ChannelTypes are the supported contact channel kinds.
var ChannelTypes = []string{"whatsapp", "sms", "email", "voice"}
