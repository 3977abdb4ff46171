package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tabetrip/backend/internal/dto"
	"tabetrip/backend/internal/service"
	"tabetrip/backend/pkg/response"
)

// TripHandler 行程模块 HTTP 处理器
type TripHandler struct {
	tripSvc service.TripService
}

// NewTripHandler 创建 TripHandler
func NewTripHandler(tripSvc service.TripService) *TripHandler {
	return &TripHandler{tripSvc: tripSvc}
}

// ListTrips 获取行程列表
// GET /api/v1/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	trips, err := h.tripSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": trips})
}

// GetTrip 获取行程详情
// GET /api/v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "行程ID不能为空")
		return
	}

	trip, err := h.tripSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTripError(c, err)
		return
	}

	response.OK(c, trip)
}

// CreateTrip 创建行程
// POST /api/v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	trip, err := h.tripSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTripError(c, err)
		return
	}

	response.Created(c, trip)
}

// UpdateTrip 更新行程
// PUT /api/v1/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "行程ID不能为空")
		return
	}

	var req dto.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	trip, err := h.tripSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTripError(c, err)
		return
	}

	response.OK(c, trip)
}

// DeleteTrip 删除行程
// DELETE /api/v1/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "行程ID不能为空")
		return
	}

	if err := h.tripSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTripError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTripError 统一处理行程模块业务错误
func (h *TripHandler) handleTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTripNotFound):
		response.NotFound(c, 11001, "行程不存在")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 11002, "行程结束日期不能早于开始日期")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 11003, "日期格式应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/trip_handler.go
