package get_meeting

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/matjarhub/booking-service/internal/api/handlers"
	"github.com/matjarhub/booking-service/internal/api/middleware"
	meetingsService "github.com/matjarhub/booking-service/internal/service/meetings"
)

const (
	msgInvalidMeetingID = "معرّف الاجتماع غير صالح"
	msgMeetingNotFound  = "لم يتم العثور على الاجتماع"
	msgAccessDenied     = "غير مصرح لك بالوصول إلى هذا الاجتماع"
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

// Handle GET /api/v1/meetings/{meetingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	managerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	vars := mux.Vars(r)
	meetingID, err := uuid.Parse(vars["meetingId"])
	if err != nil {
		h.logger.Warn("GET /meetings/{id} - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	meeting, err := h.service.GetByID(r.Context(), meetingID, managerID)
	if err != nil {
		switch {
		case errors.Is(err, meetingsService.ErrMeetingNotFound):
			h.logger.Warn("GET /meetings/{id} - Meeting not found: meeting_id=%s", meetingID)
			handlers.RespondNotFound(w, msgMeetingNotFound)

		case errors.Is(err, meetingsService.ErrAccessDenied):
			h.logger.Warn("GET /meetings/{id} - Access denied: meeting_id=%s, manager_id=%s", meetingID, managerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /meetings/{id} - Failed to get meeting: meeting_id=%s, error=%v", meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /meetings/{id} - Meeting retrieved: meeting_id=%s, manager_id=%s", meetingID, managerID)
	handlers.RespondJSON(w, http.StatusOK, meeting)
}
