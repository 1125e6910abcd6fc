package domain

import (
	"context"
	"errors"
)

// ListBusinessRequest carries the list-page filter fields. Search matches
// name or slug as a substring; city and industry are substring matches;
// ActiveOnly keeps only active rows.
type ListBusinessRequest struct {
	Search     string
	City       string
	Industry   string
	ActiveOnly bool
}

type BusinessFields struct {
	Name           string
	LegalName      string
	Slug           string
	Industry       string
	Country        string
	City           string
	Area           string
	Address        string
	WhatsappNumber string
	Phone          string
	Email          string
	Website        string
	IsActive       *bool
}

type CreateChannelRequest struct {
	BusinessID  string
	ChannelType string
	Identifier  string
	Provider    string
	IsPrimary   bool
}

type Service interface {
	List(ctx context.Context, req ListBusinessRequest) ([]Business, error)
	GetByID(ctx context.Context, id string) (Business, error)
	Create(ctx context.Context, fields BusinessFields) (Business, error)
	Update(ctx context.Context, id string, fields BusinessFields) (Business, error)

	ListChannels(ctx context.Context, businessID string) ([]BusinessChannel, error)
	AddChannel(ctx context.Context, req CreateChannelRequest) (BusinessChannel, error)

	// Labels resolves business ids to display names in one batch lookup.
	// An empty id set short-circuits without touching the store.
	Labels(ctx context.Context, ids []string) (map[string]string, error)
}

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidSlug        = errors.New("invalid_slug")
	ErrInvalidIdentifier  = errors.New("invalid_identifier")
	ErrInvalidChannelType = errors.New("invalid_channel_type")
	ErrNotFound           = errors.New("not_found")
	ErrSlugTaken          = errors.New("slug_taken")
)
