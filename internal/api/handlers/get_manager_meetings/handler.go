package get_manager_meetings

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/matjarhub/booking-service/internal/api/handlers"
	"github.com/matjarhub/booking-service/internal/api/middleware"
	"github.com/matjarhub/booking-service/internal/domain"
	meetingsService "github.com/matjarhub/booking-service/internal/service/meetings"
	"github.com/matjarhub/booking-service/internal/service/meetings/models"
)

const (
	msgInvalidManagerID = "معرّف المدير غير صالح"
	msgAccessDenied     = "غير مصرح لك بالوصول إلى هذا المورد"
	msgInvalidFromDate  = "صيغة تاريخ البداية غير صحيحة، الصيغة المتوقعة YYYY-MM-DD"
	msgInvalidToDate    = "صيغة تاريخ النهاية غير صحيحة، الصيغة المتوقعة YYYY-MM-DD"
	msgInvalidStatus    = "حالة الاجتماع غير صالحة"
)

type Handler struct {
	service MeetingsService
	logger  Logger
}

func NewHandler(service MeetingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/managers/{managerId}/meetings
// Query params: from, to (YYYY-MM-DD), status (booked|cancelled) — все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	vars := mux.Vars(r)
	managerID, err := uuid.Parse(vars["managerId"])
	if err != nil {
		h.logger.Warn("GET /managers/{id}/meetings - Invalid manager ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidManagerID)
		return
	}

	// Менеджер видит только собственные встречи
	if managerID != userID {
		h.logger.Warn("GET /managers/{id}/meetings - Access denied: manager_id=%s, user_id=%s", managerID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetManagerMeetingsRequest{ManagerID: managerID}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /managers/{id}/meetings - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFromDate)
			return
		}
		req.StartDate = &from
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /managers/{id}/meetings - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidToDate)
			return
		}
		req.EndDate = &to
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetManagerMeetings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, meetingsService.ErrInvalidInput):
			h.logger.Warn("GET /managers/{id}/meetings - Invalid status filter: manager_id=%s: %v", managerID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /managers/{id}/meetings - Failed to get meetings: manager_id=%s, error=%v", managerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /managers/{id}/meetings - Meetings retrieved: manager_id=%s, count=%d",
		managerID, len(result.Meetings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
