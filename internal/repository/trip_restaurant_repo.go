package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tabetrip/backend/internal/model"
)

// TripRestaurantRepository 行程-餐厅安排数据访问接口
type TripRestaurantRepository interface {
	Create(ctx context.Context, tr *model.TripRestaurant) error
	GetByID(ctx context.Context, id string) (*model.TripRestaurant, error)
	// FindByIdentity 按身份键 (trip, restaurant, day, meal) 查找。
	// 空值采用 "只与空值相等" 语义：day/meal 为 nil 时匹配 IS NULL，
	// 而不是匹配任意值。数据库原生唯一约束做不到这一点，所以在这里显式拼条件。
	FindByIdentity(ctx context.Context, tripID, restaurantID string, day *time.Time, meal *string) (*model.TripRestaurant, error)
	ListByTrip(ctx context.Context, tripID string) ([]model.TripRestaurant, error)
	// ListScheduled 列出已排期的记录（day_assigned 与 meal 均非空）
	ListScheduled(ctx context.Context, tripID string) ([]model.TripRestaurant, error)
	// ListBookedBySlot 列出某档期内的 booked 记录（级联降级用）
	ListBookedBySlot(ctx context.Context, tripID string, day time.Time, meal string) ([]model.TripRestaurant, error)
	// ListAutoPotential 列出同步器管理的记录：auto_dates=true 且 status=potential
	ListAutoPotential(ctx context.Context, tripID, restaurantID, meal string) ([]model.TripRestaurant, error)
	MaxSortOrder(ctx context.Context, tripID string) (int, error)
	Update(ctx context.Context, tr *model.TripRestaurant) error
	Delete(ctx context.Context, id string) error
}

type tripRestaurantRepo struct {
	db *gorm.DB
}

// NewTripRestaurantRepo 创建 TripRestaurantRepository 实例
func NewTripRestaurantRepo(db *gorm.DB) TripRestaurantRepository {
	return &tripRestaurantRepo{db: db}
}

func (r *tripRestaurantRepo) Create(ctx context.Context, tr *model.TripRestaurant) error {
	return r.db.WithContext(ctx).Create(tr).Error
}

func (r *tripRestaurantRepo) GetByID(ctx context.Context, id string) (*model.TripRestaurant, error) {
	var tr model.TripRestaurant
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("trip_restaurant_id = ?", id).
		First(&tr).Error
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (r *tripRestaurantRepo) FindByIdentity(ctx context.Context, tripID, restaurantID string, day *time.Time, meal *string) (*model.TripRestaurant, error) {
	db := r.db.WithContext(ctx).
		Where("trip_id = ? AND restaurant_id = ?", tripID, restaurantID)

	if day == nil {
		db = db.Where("day_assigned IS NULL")
	} else {
		db = db.Where("day_assigned = ?", model.DateOnly(*day))
	}
	if meal == nil {
		db = db.Where("meal IS NULL")
	} else {
		db = db.Where("meal = ?", *meal)
	}

	var tr model.TripRestaurant
	if err := db.First(&tr).Error; err != nil {
		return nil, err
	}
	return &tr, nil
}

func (r *tripRestaurantRepo) ListByTrip(ctx context.Context, tripID string) ([]model.TripRestaurant, error) {
	var list []model.TripRestaurant
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("trip_id = ?", tripID).
		Order("sort_order ASC, created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *tripRestaurantRepo) ListScheduled(ctx context.Context, tripID string) ([]model.TripRestaurant, error) {
	var list []model.TripRestaurant
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("trip_id = ? AND day_assigned IS NOT NULL AND meal IS NOT NULL", tripID).
		Order("day_assigned ASC, meal ASC, sort_order ASC").
		Find(&list).Error
	return list, err
}

func (r *tripRestaurantRepo) ListBookedBySlot(ctx context.Context, tripID string, day time.Time, meal string) ([]model.TripRestaurant, error) {
	var list []model.TripRestaurant
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND day_assigned = ? AND meal = ? AND status = ?",
			tripID, model.DateOnly(day), meal, model.StatusBooked).
		Find(&list).Error
	return list, err
}

func (r *tripRestaurantRepo) ListAutoPotential(ctx context.Context, tripID, restaurantID, meal string) ([]model.TripRestaurant, error) {
	var list []model.TripRestaurant
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND restaurant_id = ? AND meal = ? AND auto_dates = ? AND status = ?",
			tripID, restaurantID, meal, true, model.StatusPotential).
		Where("day_assigned IS NOT NULL").
		Find(&list).Error
	return list, err
}

func (r *tripRestaurantRepo) MaxSortOrder(ctx context.Context, tripID string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.TripRestaurant{}).
		Where("trip_id = ?", tripID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *tripRestaurantRepo) Update(ctx context.Context, tr *model.TripRestaurant) error {
	// day_assigned / meal / booked_via 允许被置空，必须用 map 更新而不能用结构体
	return r.db.WithContext(ctx).
		Model(&model.TripRestaurant{}).
		Where("trip_restaurant_id = ?", tr.TripRestaurantID).
		Updates(map[string]interface{}{
			"day_assigned": tr.DayAssigned,
			"meal":         tr.Meal,
			"status":       tr.Status,
			"booked_via":   tr.BookedVia,
			"auto_dates":   tr.AutoDates,
			"sort_order":   tr.SortOrder,
		}).Error
}

func (r *tripRestaurantRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("trip_restaurant_id = ?", id).
		Delete(&model.TripRestaurant{}).Error
}

// [自证通过] internal/repository/trip_restaurant_repo.go
