package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/studiobook/internal/domain/appointment"
	"github.com/BruksfildServices01/studiobook/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// LockOwner takes a row lock on the owner. Only postgres supports
// SELECT ... FOR UPDATE; sqlite already serializes writers.
func (r *AppointmentGormRepository) LockOwner(
	ctx context.Context,
	ownerID string,
) error {

	if r.db.Dialector.Name() != "postgres" {
		return nil
	}

	var owner models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", ownerID).
		Take(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// --------------------------------------------------
// Conflict
// --------------------------------------------------

func (r *AppointmentGormRepository) FindConflicting(
	ctx context.Context,
	ownerID string,
	start time.Time,
	end time.Time,
	excludeID string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where(
			"owner_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			ownerID,
			models.StatusCancelled,
			end.UTC(),
			start.UTC(),
		)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// CRUD
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) FindByID(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// Update writes only the fields present in the patch and returns the
// stored row, or nil when it no longer exists.
func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	id string,
	patch models.AppointmentPatch,
) (*models.Appointment, error) {

	fields := map[string]any{}
	if patch.ServiceID != nil {
		fields["service_id"] = *patch.ServiceID
	}
	if patch.StartTime != nil {
		fields["start_time"] = patch.StartTime.UTC()
	}
	if patch.EndTime != nil {
		fields["end_time"] = patch.EndTime.UTC()
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()

		res := r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}

	return r.FindByID(ctx, id)
}

func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	id string,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) FindAll(
	ctx context.Context,
	limit int,
	offset int,
) ([]models.Appointment, int64, error) {

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]models.Appointment, error) {
	return r.findWhere(ctx, "start_time DESC", "owner_id = ?", ownerID)
}

func (r *AppointmentGormRepository) FindByClientID(ctx context.Context, clientID string) ([]models.Appointment, error) {
	return r.findWhere(ctx, "start_time DESC", "client_id = ?", clientID)
}

func (r *AppointmentGormRepository) FindByBusinessID(ctx context.Context, businessID string) ([]models.Appointment, error) {
	return r.findWhere(ctx, "start_time DESC", "business_id = ?", businessID)
}

func (r *AppointmentGormRepository) FindByBusinessInPeriod(
	ctx context.Context,
	businessID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return r.findWhere(ctx, "start_time ASC",
		"business_id = ? AND start_time >= ? AND start_time < ?",
		businessID, start.UTC(), end.UTC(),
	)
}

func (r *AppointmentGormRepository) FindByOwnerInPeriod(
	ctx context.Context,
	ownerID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return r.findWhere(ctx, "start_time ASC",
		"owner_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
		ownerID, models.StatusCancelled, end.UTC(), start.UTC(),
	)
}

func (r *AppointmentGormRepository) FindByDateRange(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	return r.findWhere(ctx, "start_time ASC",
		"start_time >= ? AND end_time <= ?",
		start.UTC(), end.UTC(),
	)
}

func (r *AppointmentGormRepository) findWhere(
	ctx context.Context,
	order string,
	query string,
	args ...any,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Where(query, args...).
		Order(order).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
