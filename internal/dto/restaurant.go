package dto

// ── 餐厅模块 DTO ──

// CreateRestaurantRequest 创建餐厅请求
type CreateRestaurantRequest struct {
	Name       string `json:"name"        binding:"required,min=1,max=200"`
	Area       string `json:"area"        binding:"omitempty,max=100"`
	Cuisine    string `json:"cuisine"     binding:"omitempty,max=100"`
	BookingURL string `json:"booking_url" binding:"omitempty,url,max=500"`
}

// UpdateRestaurantRequest 更新餐厅请求
type UpdateRestaurantRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=1,max=200"`
	Area       *string `json:"area"        binding:"omitempty,max=100"`
	Cuisine    *string `json:"cuisine"     binding:"omitempty,max=100"`
	BookingURL *string `json:"booking_url" binding:"omitempty,url,max=500"`
}

// RestaurantListRequest 餐厅列表查询参数
type RestaurantListRequest struct {
	Keyword string `form:"keyword" binding:"omitempty,max=200"`
}

// RestaurantResponse 餐厅信息响应
type RestaurantResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Area       string `json:"area,omitempty"`
	Cuisine    string `json:"cuisine,omitempty"`
	BookingURL string `json:"booking_url,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// RestaurantBrief 餐厅简要信息（嵌入安排响应）
type RestaurantBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// [自证通过] internal/dto/restaurant.go
