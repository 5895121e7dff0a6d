package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vehicle-service/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// GetByID treats absence as a normal value: (nil, nil) when no row exists.
func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	if plate == "" {
		return nil, nil
	}
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).
		Where("license_plate = ?", plate).
		First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

// Save inserts the vehicle, assigning an id when absent, or replaces the
// existing row when the id is already persisted.
func (r *VehicleRepository) Save(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Vehicle{}, "id = ?", id).Error
}

type VehicleListFilter struct {
	Status  *model.VehicleStatus
	Type    *model.VehicleType
	RouteID *string
}

func (r *VehicleRepository) List(ctx context.Context, filter VehicleListFilter, offset, limit int) ([]model.Vehicle, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := r.db.WithContext(ctx).Model(&model.Vehicle{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.RouteID != nil {
		q = q.Where("route_id = ?", *filter.RouteID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var vehicles []model.Vehicle
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}
