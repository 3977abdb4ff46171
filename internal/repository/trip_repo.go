package repository

import (
	"context"

	"gorm.io/gorm"

	"tabetrip/backend/internal/model"
	pkgerrors "tabetrip/backend/pkg/errors"
)

// TripRepository 行程数据访问接口
type TripRepository interface {
	Create(ctx context.Context, trip *model.Trip) error
	GetByID(ctx context.Context, id string) (*model.Trip, error)
	List(ctx context.Context) ([]model.Trip, error)
	Update(ctx context.Context, trip *model.Trip) error
	Delete(ctx context.Context, id string) error
}

type tripRepo struct {
	db *gorm.DB
}

// NewTripRepo 创建 TripRepository 实例
func NewTripRepo(db *gorm.DB) TripRepository {
	return &tripRepo{db: db}
}

func (r *tripRepo) Create(ctx context.Context, trip *model.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepo) GetByID(ctx context.Context, id string) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", id).
		First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepo) List(ctx context.Context) ([]model.Trip, error) {
	var trips []model.Trip
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&trips).Error
	return trips, err
}

func (r *tripRepo) Update(ctx context.Context, trip *model.Trip) error {
	oldVersion := trip.Version
	result := r.db.WithContext(ctx).
		Model(trip).
		Where("trip_id = ? AND version = ?", trip.TripID, oldVersion).
		Updates(map[string]interface{}{
			"name":       trip.Name,
			"start_date": trip.StartDate,
			"end_date":   trip.EndDate,
			"notes":      trip.Notes,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	trip.Version = oldVersion + 1
	return nil
}

func (r *tripRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("trip_id = ?", id).
		Delete(&model.Trip{}).Error
}
