package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/syedfahimdev/omni-admin/internal/business/domain"
	pkgdb "github.com/syedfahimdev/omni-admin/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultCountry = "Pakistan"

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
		log:  p.Log.Named("business.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListBusinessRequest) ([]domain.Business, error) {
	req.Search = strings.TrimSpace(req.Search)
	req.City = strings.TrimSpace(req.City)
	req.Industry = strings.TrimSpace(req.Industry)
	return s.repo.List(ctx, s.db, req)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Business, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Business{}, err
	}
	if item == nil {
		return domain.Business{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Create(ctx context.Context, fields domain.BusinessFields) (domain.Business, error) {
	if err := validateRequired(fields); err != nil {
		return domain.Business{}, err
	}

	isActive := true
	if fields.IsActive != nil {
		isActive = *fields.IsActive
	}
	country := strings.TrimSpace(fields.Country)
	if country == "" {
		country = defaultCountry
	}

	now := time.Now().UTC()
	business := domain.Business{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(fields.Name),
		LegalName:      strings.TrimSpace(fields.LegalName),
		Slug:           strings.TrimSpace(fields.Slug),
		Industry:       strings.TrimSpace(fields.Industry),
		Country:        country,
		City:           strings.TrimSpace(fields.City),
		Area:           strings.TrimSpace(fields.Area),
		Address:        strings.TrimSpace(fields.Address),
		WhatsappNumber: strings.TrimSpace(fields.WhatsappNumber),
		Phone:          strings.TrimSpace(fields.Phone),
		Email:          strings.TrimSpace(fields.Email),
		Website:        strings.TrimSpace(fields.Website),
		IsActive:       isActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, &business); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Business{}, domain.ErrSlugTaken
		}
		return domain.Business{}, err
	}
	return business, nil
}

func (s *Service) Update(ctx context.Context, id string, fields domain.BusinessFields) (domain.Business, error) {
	if err := validateRequired(fields); err != nil {
		return domain.Business{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Business{}, err
	}
	if existing == nil {
		return domain.Business{}, domain.ErrNotFound
	}

	columns := map[string]any{
		"name":            strings.TrimSpace(fields.Name),
		"legal_name":      strings.TrimSpace(fields.LegalName),
		"slug":            strings.TrimSpace(fields.Slug),
		"industry":        strings.TrimSpace(fields.Industry),
		"country":         strings.TrimSpace(fields.Country),
		"city":            strings.TrimSpace(fields.City),
		"area":            strings.TrimSpace(fields.Area),
		"address":         strings.TrimSpace(fields.Address),
		"whatsapp_number": strings.TrimSpace(fields.WhatsappNumber),
		"phone":           strings.TrimSpace(fields.Phone),
		"email":           strings.TrimSpace(fields.Email),
		"website":         strings.TrimSpace(fields.Website),
		"updated_at":      time.Now().UTC(),
	}
	if fields.IsActive != nil {
		columns["is_active"] = *fields.IsActive
	}

	if err := s.repo.Update(ctx, s.db, id, columns); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Business{}, domain.ErrSlugTaken
		}
		return domain.Business{}, err
	}
	return s.GetByID(ctx, id)
}

func (s *Service) ListChannels(ctx context.Context, businessID string) ([]domain.BusinessChannel, error) {
	return s.repo.ListChannels(ctx, s.db, businessID)
}

func (s *Service) AddChannel(ctx context.Context, req domain.CreateChannelRequest) (domain.BusinessChannel, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return domain.BusinessChannel{}, domain.ErrInvalidIdentifier
	}
	if !slices.Contains(domain.ChannelTypes, req.ChannelType) {
		return domain.BusinessChannel{}, domain.ErrInvalidChannelType
	}

	provider := strings.TrimSpace(req.Provider)
	if provider == "" {
		provider = "twilio"
	}

	channel := domain.BusinessChannel{
		ID:          uuid.NewString(),
		BusinessID:  req.BusinessID,
		ChannelType: req.ChannelType,
		Identifier:  identifier,
		Provider:    provider,
		IsPrimary:   req.IsPrimary,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.InsertChannel(ctx, s.db, &channel); err != nil {
		return domain.BusinessChannel{}, err
	}
	return channel, nil
}

func (s *Service) Labels(ctx context.Context, ids []string) (map[string]string, error) {
	labels := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return labels, nil
	}
	businesses, err := s.repo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range businesses {
		labels[b.ID] = b.Name
	}
	return labels, nil
}

func validateRequired(fields domain.BusinessFields) error {
	if strings.TrimSpace(fields.Name) == "" {
		return domain.ErrInvalidName
	}
	trimmed := strings.TrimSpace(fields.Slug)
	if trimmed == "" || !slug.IsSlug(trimmed) {
		return domain.ErrInvalidSlug
	}
	return nil
}
