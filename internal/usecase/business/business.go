package business

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/models"
	"github.com/BruksfildServices01/studiobook/internal/pagination"
	"github.com/BruksfildServices01/studiobook/internal/timezone"
)

var (
	ErrBusinessNotFound = httperr.ErrNotFound("business_not_found", "Business not found")
	ErrAlreadyExists    = httperr.ErrConflict("business_exists", "Business already exists at this address")
	ErrNotOwner         = httperr.ErrForbidden("forbidden", "Only the owner can change this business")
	ErrMissingFields    = httperr.ErrInvalidState("invalid_request", "Name and address are required")
	ErrInvalidTimezone  = httperr.ErrInvalidState("invalid_timezone", "Invalid timezone")
	ErrInvalidHours     = httperr.ErrInvalidState("invalid_hours", "Invalid business hours")
)

type Repository interface {
	GetBusinessByID(ctx context.Context, id string) (*models.Business, error)
	ExistsAtAddress(ctx context.Context, name, address string) (bool, error)
	CreateBusiness(ctx context.Context, b *models.Business) error
	ListBusinesses(ctx context.Context, limit, offset int) ([]models.Business, int64, error)
	UpdateBusiness(ctx context.Context, id string, fields map[string]any) (*models.Business, error)
	DeleteBusiness(ctx context.Context, id string) (bool, error)

	ListBusinessHours(ctx context.Context, businessID string) ([]models.BusinessHour, error)
	UpsertBusinessHours(ctx context.Context, businessID string, hours []models.BusinessHour) error
}

type ImageStore interface {
	Save(ctx context.Context, folder string, data []byte) (string, error)
	Delete(ctx context.Context, url string)
}

type Service struct {
	repo   Repository
	images ImageStore
	audit  *audit.Dispatcher
}

func NewService(repo Repository, images ImageStore, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, images: images, audit: audit}
}

// ======================================================
// CRUD
// ======================================================

type Input struct {
	Name                  *string
	Address               *string
	Description           *string
	Phone                 *string
	Cnpj                  *string
	MunicipalRegistration *string
	Timezone              *string
	IsActive              *bool
}

// Create registers a business owned by the caller.
func (s *Service) Create(ctx context.Context, ownerID string, in Input) (*models.Business, error) {
	name, address := trimmed(in.Name), trimmed(in.Address)
	if name == "" || address == "" {
		return nil, ErrMissingFields
	}

	tz := timezone.Default()
	if in.Timezone != nil && *in.Timezone != "" {
		if !timezone.IsValid(*in.Timezone) {
			return nil, ErrInvalidTimezone
		}
		tz = *in.Timezone
	}

	exists, err := s.repo.ExistsAtAddress(ctx, name, address)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	b := &models.Business{
		OwnerID:               ownerID,
		Name:                  name,
		Address:               address,
		Description:           in.Description,
		Phone:                 in.Phone,
		Cnpj:                  in.Cnpj,
		MunicipalRegistration: in.MunicipalRegistration,
		Timezone:              tz,
		IsActive:              true,
	}
	if err := s.repo.CreateBusiness(ctx, b); err != nil {
		if httperr.IsUniqueViolation(err, "") {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	s.dispatch(b.ID, ownerID, "business_created")
	return b, nil
}

func (s *Service) List(ctx context.Context, p pagination.Params) (pagination.Result[models.Business], error) {
	items, total, err := s.repo.ListBusinesses(ctx, p.Limit, p.Offset())
	if err != nil {
		return pagination.Result[models.Business]{}, err
	}
	return pagination.NewResult(items, p, total), nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Business, error) {
	b, err := s.repo.GetBusinessByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBusinessNotFound
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, actorID, id string, in Input) (*models.Business, error) {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		if trimmed(in.Name) == "" {
			return nil, ErrMissingFields
		}
		fields["name"] = trimmed(in.Name)
	}
	if in.Address != nil {
		if trimmed(in.Address) == "" {
			return nil, ErrMissingFields
		}
		fields["address"] = trimmed(in.Address)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Cnpj != nil {
		fields["cnpj"] = *in.Cnpj
	}
	if in.MunicipalRegistration != nil {
		fields["municipal_registration"] = *in.MunicipalRegistration
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, ErrInvalidTimezone
		}
		fields["timezone"] = *in.Timezone
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	b, err := s.repo.UpdateBusiness(ctx, id, fields)
	if err != nil {
		if httperr.IsUniqueViolation(err, "") {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	if b == nil {
		return nil, ErrBusinessNotFound
	}

	s.dispatch(id, actorID, "business_updated")
	return b, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	b, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteBusiness(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBusinessNotFound
	}
	if b.CoverImage != nil {
		s.images.Delete(ctx, *b.CoverImage)
	}

	s.dispatch(id, actorID, "business_deleted")
	return nil
}

// ======================================================
// HOURS
// ======================================================

type HourInput struct {
	Weekday     int
	OpeningTime string
	ClosingTime string
	IsOpen      bool
}

func (s *Service) Hours(ctx context.Context, id string) ([]models.BusinessHour, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListBusinessHours(ctx, id)
}

// SetHours replaces the listed weekdays. Open days need opening < closing.
func (s *Service) SetHours(ctx context.Context, actorID, id string, in []HourInput) ([]models.BusinessHour, error) {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return nil, err
	}

	seen := map[int]bool{}
	hours := make([]models.BusinessHour, 0, len(in))
	for _, h := range in {
		if h.Weekday < 0 || h.Weekday > 6 || seen[h.Weekday] {
			return nil, ErrInvalidHours
		}
		seen[h.Weekday] = true

		if h.IsOpen {
			open, err1 := time.Parse("15:04", h.OpeningTime)
			closeAt, err2 := time.Parse("15:04", h.ClosingTime)
			if err1 != nil || err2 != nil || !open.Before(closeAt) {
				return nil, ErrInvalidHours
			}
		}

		hours = append(hours, models.BusinessHour{
			Weekday:     h.Weekday,
			OpeningTime: h.OpeningTime,
			ClosingTime: h.ClosingTime,
			IsOpen:      h.IsOpen,
		})
	}

	if err := s.repo.UpsertBusinessHours(ctx, id, hours); err != nil {
		return nil, err
	}

	s.dispatch(id, actorID, "business_hours_updated")
	return s.repo.ListBusinessHours(ctx, id)
}

// ======================================================
// COVER
// ======================================================

// UploadCover stores a new cover image and removes the previous one.
func (s *Service) UploadCover(ctx context.Context, actorID, id string, data []byte) (*models.Business, error) {
	current, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Save(ctx, "covers", data)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.UpdateBusiness(ctx, id, map[string]any{"cover_image": url})
	if err != nil {
		s.images.Delete(ctx, url)
		return nil, err
	}
	if current.CoverImage != nil {
		s.images.Delete(ctx, *current.CoverImage)
	}

	s.dispatch(id, actorID, "business_cover_updated")
	return b, nil
}

// ======================================================
// HELPERS
// ======================================================

func (s *Service) owned(ctx context.Context, actorID, id string) (*models.Business, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != actorID {
		return nil, ErrNotOwner
	}
	return b, nil
}

func (s *Service) dispatch(businessID, actorID, action string) {
	s.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &actorID,
		Action:     action,
		Entity:     "business",
		EntityID:   &businessID,
	})
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
