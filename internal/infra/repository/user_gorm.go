package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.takeWhere(ctx, "id = ?", id)
}

func (r *UserGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.takeWhere(ctx, "email = ?", email)
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// UpdateUser writes the given columns and returns the stored row.
func (r *UserGormRepository) UpdateUser(ctx context.Context, id string, fields map[string]any) (*models.User, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.GetUserByID(ctx, id)
}

func (r *UserGormRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserGormRepository) takeWhere(ctx context.Context, query string, args ...any) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where(query, args...).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ domain.UserLookup = (*UserGormRepository)(nil)
