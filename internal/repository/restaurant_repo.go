package repository

import (
	"context"

	"gorm.io/gorm"

	"tabetrip/backend/internal/model"
	pkgerrors "tabetrip/backend/pkg/errors"
)

// RestaurantRepository 餐厅数据访问接口
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)
	List(ctx context.Context, keyword string) ([]model.Restaurant, error)
	Update(ctx context.Context, restaurant *model.Restaurant) error
	Delete(ctx context.Context, id string) error
}

type restaurantRepo struct {
	db *gorm.DB
}

// NewRestaurantRepo 创建 RestaurantRepository 实例
func NewRestaurantRepo(db *gorm.DB) RestaurantRepository {
	return &restaurantRepo{db: db}
}

func (r *restaurantRepo) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *restaurantRepo) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", id).
		First(&restaurant).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepo) List(ctx context.Context, keyword string) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	db := r.db.WithContext(ctx)
	if keyword != "" {
		db = db.Where("name ILIKE ?", "%"+keyword+"%")
	}
	err := db.Order("name ASC").Find(&restaurants).Error
	return restaurants, err
}

func (r *restaurantRepo) Update(ctx context.Context, restaurant *model.Restaurant) error {
	oldVersion := restaurant.Version
	result := r.db.WithContext(ctx).
		Model(restaurant).
		Where("restaurant_id = ? AND version = ?", restaurant.RestaurantID, oldVersion).
		Updates(map[string]interface{}{
			"name":        restaurant.Name,
			"area":        restaurant.Area,
			"cuisine":     restaurant.Cuisine,
			"booking_url": restaurant.BookingURL,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	restaurant.Version = oldVersion + 1
	return nil
}

func (r *restaurantRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("restaurant_id = ?", id).
		Delete(&model.Restaurant{}).Error
}
