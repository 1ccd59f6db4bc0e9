package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

type BusinessGormRepository struct {
	db *gorm.DB
}

func NewBusinessGormRepository(db *gorm.DB) *BusinessGormRepository {
	return &BusinessGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *BusinessGormRepository) GetBusinessByID(ctx context.Context, id string) (*models.Business, error) {
	var b models.Business
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessGormRepository) ExistsAtAddress(ctx context.Context, name, address string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Business{}).
		Where("LOWER(name) = LOWER(?) AND LOWER(address) = LOWER(?)", name, address).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateBusiness stores the business and, when the owner has no business
// yet, attaches the owner to it in the same transaction.
func (r *BusinessGormRepository) CreateBusiness(ctx context.Context, b *models.Business) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ? AND business_id IS NULL", b.OwnerID).
			Update("business_id", b.ID).Error
	})
}

func (r *BusinessGormRepository) ListBusinesses(ctx context.Context, limit, offset int) ([]models.Business, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Business{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Business
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *BusinessGormRepository) UpdateBusiness(ctx context.Context, id string, fields map[string]any) (*models.Business, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.Business{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.GetBusinessByID(ctx, id)
}

// DeleteBusiness removes the business with its hours and services and
// detaches its staff.
func (r *BusinessGormRepository) DeleteBusiness(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", id).Delete(&models.BusinessHour{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", id).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("business_id = ?", id).
			Update("business_id", nil).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Business{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// --------------------------------------------------
// Hours
// --------------------------------------------------

func (r *BusinessGormRepository) GetBusinessHour(ctx context.Context, businessID string, weekday int) (*models.BusinessHour, error) {
	var h models.BusinessHour
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND weekday = ?", businessID, weekday).
		Take(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *BusinessGormRepository) ListBusinessHours(ctx context.Context, businessID string) ([]models.BusinessHour, error) {
	hours := []models.BusinessHour{}
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// UpsertBusinessHours replaces the given weekdays of a business.
func (r *BusinessGormRepository) UpsertBusinessHours(ctx context.Context, businessID string, hours []models.BusinessHour) error {
	if len(hours) == 0 {
		return nil
	}
	for i := range hours {
		hours[i].BusinessID = businessID
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{"opening_time", "closing_time", "is_open", "updated_at"}),
		}).
		Create(&hours).Error
}

var _ domain.BusinessLookup = (*BusinessGormRepository)(nil)
