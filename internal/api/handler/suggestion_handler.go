package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tabetrip/backend/internal/service"
	"tabetrip/backend/pkg/response"
)

// SuggestionHandler 调整建议模块 HTTP 处理器
type SuggestionHandler struct {
	suggestionSvc service.SuggestionService
}

// NewSuggestionHandler 创建 SuggestionHandler
func NewSuggestionHandler(suggestionSvc service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionSvc: suggestionSvc}
}

// GetSuggestions 计算某行程的调整建议（只读，不落库）
// GET /api/v1/trips/:id/suggestions
func (h *SuggestionHandler) GetSuggestions(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		response.BadRequest(c, 10001, "行程ID不能为空")
		return
	}

	suggestions, err := h.suggestionSvc.Compute(c.Request.Context(), tripID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFound(c, 11001, "行程不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, gin.H{"list": suggestions})
}

// [自证通过] internal/api/handler/suggestion_handler.go
