package create_time_off

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
	msgInvalidTimeOff     = "فترة الإجازة غير صالحة"
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

// Handle POST /api/v1/managers/{managerId}/schedule/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	vars := mux.Vars(r)
	managerID, err := uuid.Parse(vars["managerId"])
	if err != nil {
		h.logger.Warn("POST /managers/{id}/schedule/time-off - Invalid manager ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidManagerID)
		return
	}

	if managerID != userID {
		h.logger.Warn("POST /managers/{id}/schedule/time-off - Access denied: manager_id=%s, user_id=%s", managerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req models.CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /managers/{id}/schedule/time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ManagerID = managerID

	timeOff, err := h.service.CreateTimeOff(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /managers/{id}/schedule/time-off - Invalid time off: manager_id=%s: %v", managerID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeOff)

		default:
			h.logger.Error("POST /managers/{id}/schedule/time-off - Failed to create time off: manager_id=%s, error=%v", managerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /managers/{id}/schedule/time-off - Time off created: manager_id=%s, time_off_id=%s",
		managerID, timeOff.ID)
	handlers.RespondJSON(w, http.StatusCreated, timeOff)
}
