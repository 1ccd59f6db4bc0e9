package catalog

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/models"
	"github.com/BruksfildServices01/studiobook/internal/pagination"
)

var (
	ErrServiceNotFound  = httperr.ErrNotFound("service_not_found", "Service not found")
	ErrBusinessNotFound = httperr.ErrNotFound("business_not_found", "Business not found")
	ErrNameRequired     = httperr.ErrInvalidState("invalid_request", "Name is required")
	ErrInvalidDuration  = httperr.ErrInvalidState("invalid_duration", "Duration must be greater than zero")
	ErrNegativePrice    = httperr.ErrInvalidState("invalid_price", "Price cannot be negative")
	ErrNotAllowed       = httperr.ErrForbidden("forbidden", "Only the owner or a manager can change services")
)

type Repository interface {
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	ListServices(ctx context.Context, limit, offset int) ([]models.Service, int64, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.Service, error)
	UpdateService(ctx context.Context, id string, fields map[string]any) (*models.Service, error)
	DeleteService(ctx context.Context, id string) (bool, error)
}

type BusinessLookup interface {
	GetBusinessByID(ctx context.Context, id string) (*models.Business, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Service maintains the services a business offers.
type Service struct {
	repo       Repository
	businesses BusinessLookup
	users      UserLookup
	audit      *audit.Dispatcher
}

func NewService(repo Repository, businesses BusinessLookup, users UserLookup, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, businesses: businesses, users: users, audit: audit}
}

type Input struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	Category        *string
	IsActive        *bool
}

func (s *Service) Create(ctx context.Context, actorID, businessID string, in Input) (*models.Service, error) {
	if err := s.authorize(ctx, actorID, businessID); err != nil {
		return nil, err
	}

	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if in.DurationMinutes == nil || *in.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	svc := &models.Service{
		BusinessID:      businessID,
		Name:            name,
		Description:     in.Description,
		DurationMinutes: *in.DurationMinutes,
		IsActive:        true,
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, ErrNegativePrice
		}
		svc.Price = *in.Price
	}
	if in.Category != nil {
		svc.Category = *in.Category
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}

	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	s.dispatch(businessID, actorID, svc.ID, "service_created")
	return svc, nil
}

func (s *Service) List(ctx context.Context, p pagination.Params) (pagination.Result[models.Service], error) {
	items, total, err := s.repo.ListServices(ctx, p.Limit, p.Offset())
	if err != nil {
		return pagination.Result[models.Service]{}, err
	}
	return pagination.NewResult(items, p, total), nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (s *Service) ByBusiness(ctx context.Context, businessID string) ([]models.Service, error) {
	b, err := s.businesses.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBusinessNotFound
	}

	out, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Service{}
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, actorID, id string, in Input) (*models.Service, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, current.BusinessID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, ErrNegativePrice
		}
		fields["price"] = *in.Price
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		fields["duration_minutes"] = *in.DurationMinutes
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	svc, err := s.repo.UpdateService(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	s.dispatch(svc.BusinessID, actorID, id, "service_updated")
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actorID, current.BusinessID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteService(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrServiceNotFound
	}

	s.dispatch(current.BusinessID, actorID, id, "service_deleted")
	return nil
}

// authorize allows the business owner and managers assigned to it.
func (s *Service) authorize(ctx context.Context, actorID, businessID string) error {
	b, err := s.businesses.GetBusinessByID(ctx, businessID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBusinessNotFound
	}
	if b.OwnerID == actorID {
		return nil
	}

	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor != nil && actor.Role == models.RoleManager && actor.WorksAt(businessID) {
		return nil
	}
	return ErrNotAllowed
}

func (s *Service) dispatch(businessID, actorID, serviceID, action string) {
	s.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &actorID,
		Action:     action,
		Entity:     "service",
		EntityID:   &serviceID,
	})
}
