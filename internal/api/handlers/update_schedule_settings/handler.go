package update_schedule_settings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/matjarhub/booking-service/internal/api/handlers"
	"github.com/matjarhub/booking-service/internal/api/middleware"
	scheduleService "github.com/matjarhub/booking-service/internal/service/schedule"
	"github.com/matjarhub/booking-service/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "نص الطلب غير صالح"
	msgInvalidManagerID   = "معرّف المدير غير صالح"
	msgAccessDenied       = "غير مصرح لك بالوصول إلى هذا المورد"
	msgInvalidSettings    = "إعدادات الاجتماعات غير صالحة"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/managers/{managerId}/schedule/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	vars := mux.Vars(r)
	managerID, err := uuid.Parse(vars["managerId"])
	if err != nil {
		h.logger.Warn("PUT /managers/{id}/schedule/settings - Invalid manager ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidManagerID)
		return
	}

	if managerID != userID {
		h.logger.Warn("PUT /managers/{id}/schedule/settings - Access denied: manager_id=%s, user_id=%s", managerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /managers/{id}/schedule/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ManagerID = managerID

	settings, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /managers/{id}/schedule/settings - Invalid settings: manager_id=%s: %v", managerID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /managers/{id}/schedule/settings - Failed to update settings: manager_id=%s, error=%v", managerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /managers/{id}/schedule/settings - Settings updated: manager_id=%s", managerID)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
