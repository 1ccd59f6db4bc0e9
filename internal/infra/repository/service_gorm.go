package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

func (r *ServiceGormRepository) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceGormRepository) ListServices(ctx context.Context, limit, offset int) ([]models.Service, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Service{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Service
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ServiceGormRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.Service, error) {
	out := []models.Service{}
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ServiceGormRepository) UpdateService(ctx context.Context, id string, fields map[string]any) (*models.Service, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.Service{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.GetServiceByID(ctx, id)
}

func (r *ServiceGormRepository) DeleteService(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

var _ domain.ServiceLookup = (*ServiceGormRepository)(nil)
