package model

import "time"

// ── 预订状态 ──

const (
	StatusPotential = "potential" // 候补：想去但尚未订到
	StatusBooked    = "booked"    // 已预订：该档期的唯一正式预订
)

// ValidStatus 判断状态值是否合法
func ValidStatus(s string) bool {
	return s == StatusPotential || s == StatusBooked
}

// ── 餐段 ──

const (
	MealLunch  = "lunch"
	MealDinner = "dinner"
)

// ValidMeal 判断餐段值是否合法
func ValidMeal(m string) bool {
	return m == MealLunch || m == MealDinner
}

// Meals 全部餐段，按午餐、晚餐顺序
var Meals = []string{MealLunch, MealDinner}

// TripRestaurant 行程-餐厅安排表 — 对应 trip_restaurants
//
// 一条记录代表"某次行程中想去/已订某家餐厅"：
//   - DayAssigned / Meal 均可为空（未排期）；两者都有值时构成一个档期 (day, meal)
//   - 同一档期允许多条候补记录，但至多一条 booked（应用层级联降级保证）
//   - AutoDates 标记该记录由空位同步自动生成；同步器只增删自己生成的记录
//   - 身份键 (trip_id, restaurant_id, day_assigned, meal) 的唯一性由
//     AddOrUpdate 在应用层保证：空值只与空值相等，不依赖数据库唯一约束
type TripRestaurant struct {
	TripRestaurantID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"trip_restaurant_id"`
	TripID           string     `gorm:"type:uuid;not null;index"                       json:"trip_id"`
	RestaurantID     string     `gorm:"type:uuid;not null;index"                       json:"restaurant_id"`
	DayAssigned      *time.Time `gorm:"type:date"                                      json:"day_assigned,omitempty"`
	Meal             *string    `gorm:"type:varchar(10)"                               json:"meal,omitempty"`   // lunch | dinner
	Status           string     `gorm:"type:varchar(20);not null;default:'potential'"  json:"status"`           // potential | booked
	BookedVia        *string    `gorm:"type:varchar(100)"                              json:"booked_via,omitempty"` // 预订渠道，仅 booked 时有意义
	AutoDates        bool       `gorm:"not null;default:false"                         json:"auto_dates"`
	SortOrder        int        `gorm:"not null;default:0"                             json:"sort_order"`
	BaseModel

	// 关联
	Trip       *Trip       `gorm:"foreignKey:TripID;references:TripID"             json:"trip,omitempty"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;references:RestaurantID" json:"restaurant,omitempty"`
}

// TableName 指定表名
func (TripRestaurant) TableName() string { return "trip_restaurants" }

// Scheduled 是否已排入某个档期（日期与餐段都已指定）
func (tr *TripRestaurant) Scheduled() bool {
	return tr.DayAssigned != nil && tr.Meal != nil
}

// [自证通过] internal/model/trip_restaurant.go
