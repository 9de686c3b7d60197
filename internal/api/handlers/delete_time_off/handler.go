package delete_time_off

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/matjarhub/booking-service/internal/api/handlers"
	"github.com/matjarhub/booking-service/internal/api/middleware"
	scheduleService "github.com/matjarhub/booking-service/internal/service/schedule"
)

const (
	msgInvalidManagerID = "معرّف المدير غير صالح"
	msgInvalidTimeOffID = "معرّف فترة الإجازة غير صالح"
	msgAccessDenied     = "غير مصرح لك بالوصول إلى هذا المورد"
	msgTimeOffNotFound  = "لم يتم العثور على فترة الإجازة"
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

// Handle DELETE /api/v1/managers/{managerId}/schedule/time-off/{timeOffId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	vars := mux.Vars(r)
	managerID, err := uuid.Parse(vars["managerId"])
	if err != nil {
		h.logger.Warn("DELETE /managers/{id}/schedule/time-off/{id} - Invalid manager ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidManagerID)
		return
	}

	if managerID != userID {
		h.logger.Warn("DELETE /managers/{id}/schedule/time-off/{id} - Access denied: manager_id=%s, user_id=%s", managerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	timeOffID, err := uuid.Parse(vars["timeOffId"])
	if err != nil {
		h.logger.Warn("DELETE /managers/{id}/schedule/time-off/{id} - Invalid time off ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeOffID)
		return
	}

	if err := h.service.DeleteTimeOff(r.Context(), managerID, timeOffID); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrTimeOffNotFound):
			h.logger.Warn("DELETE /managers/{id}/schedule/time-off/{id} - Time off not found: time_off_id=%s", timeOffID)
			handlers.RespondNotFound(w, msgTimeOffNotFound)

		default:
			h.logger.Error("DELETE /managers/{id}/schedule/time-off/{id} - Failed to delete time off: time_off_id=%s, error=%v", timeOffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /managers/{id}/schedule/time-off/{id} - Time off deleted: manager_id=%s, time_off_id=%s",
		managerID, timeOffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
