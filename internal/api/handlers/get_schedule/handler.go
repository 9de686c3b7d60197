package get_schedule

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/matjarhub/booking-service/internal/api/handlers"
	"github.com/matjarhub/booking-service/internal/api/middleware"
)

const (
	msgInvalidManagerID = "معرّف المدير غير صالح"
	msgAccessDenied     = "غير مصرح لك بالوصول إلى هذا المورد"
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

// Handle GET /api/v1/managers/{managerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	vars := mux.Vars(r)
	managerID, err := uuid.Parse(vars["managerId"])
	if err != nil {
		h.logger.Warn("GET /managers/{id}/schedule - Invalid manager ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidManagerID)
		return
	}

	if managerID != userID {
		h.logger.Warn("GET /managers/{id}/schedule - Access denied: manager_id=%s, user_id=%s", managerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), managerID)
	if err != nil {
		h.logger.Error("GET /managers/{id}/schedule - Failed to get schedule: manager_id=%s, error=%v", managerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /managers/{id}/schedule - Schedule retrieved: manager_id=%s, rules=%d, time_off=%d",
		managerID, len(schedule.Rules), len(schedule.TimeOff))
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
