package cancel_meeting

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/matjarhub/booking-service/internal/api/handlers"
	"github.com/matjarhub/booking-service/internal/api/middleware"
	meetingsService "github.com/matjarhub/booking-service/internal/service/meetings"
	"github.com/matjarhub/booking-service/internal/service/meetings/models"
)

const (
	msgInvalidRequestBody = "نص الطلب غير صالح"
	msgInvalidMeetingID   = "معرّف الاجتماع غير صالح"
	msgMeetingNotFound    = "لم يتم العثور على الاجتماع"
	msgAccessDenied       = "غير مصرح لك بالوصول إلى هذا الاجتماع"
	msgCannotCancel       = "لا يمكن إلغاء هذا الاجتماع"
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

// Handle PATCH /api/v1/meetings/{meetingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	managerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondInternalError(w)
		return
	}

	vars := mux.Vars(r)
	meetingID, err := uuid.Parse(vars["meetingId"])
	if err != nil {
		h.logger.Warn("PATCH /meetings/{id}/cancel - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	var req CancelMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /meetings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CancelMeetingRequest{
		ManagerID: managerID,
		Reason:    req.Reason,
	}

	if err := h.service.Cancel(r.Context(), meetingID, serviceReq); err != nil {
		switch {
		case errors.Is(err, meetingsService.ErrMeetingNotFound):
			h.logger.Warn("PATCH /meetings/{id}/cancel - Meeting not found: meeting_id=%s", meetingID)
			handlers.RespondNotFound(w, msgMeetingNotFound)

		case errors.Is(err, meetingsService.ErrAccessDenied):
			h.logger.Warn("PATCH /meetings/{id}/cancel - Access denied: meeting_id=%s, manager_id=%s", meetingID, managerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, meetingsService.ErrCannotCancel):
			h.logger.Warn("PATCH /meetings/{id}/cancel - Cannot cancel: meeting_id=%s", meetingID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /meetings/{id}/cancel - Failed to cancel meeting: meeting_id=%s, error=%v", meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /meetings/{id}/cancel - Meeting cancelled: meeting_id=%s, manager_id=%s", meetingID, managerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
