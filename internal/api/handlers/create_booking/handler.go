package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/matjarhub/booking-service/internal/api/handlers"
	createBooking "github.com/matjarhub/booking-service/internal/usecase/create_booking"
)

const (
	msgBookingConfirmed   = "تم حجز الموعد بنجاح"
	msgInvalidRequestBody = "نص الطلب غير صالح"
	msgInvalidDate        = "صيغة التاريخ غير صحيحة، الصيغة المتوقعة YYYY-MM-DD"
	msgInvalidTime        = "صيغة وقت البدء غير صحيحة، الصيغة المتوقعة HH:MM"
	msgMissingFields      = "يرجى تعبئة جميع الحقول المطلوبة"
	msgManagerNotFound    = "لم يتم العثور على صفحة الحجز"
	msgSlotNotAvailable   = "فشل في حجز الموعد. قد يكون الوقت محجوزاً مسبقاً، يرجى اختيار وقت آخر"
	msgTooLateToBook      = "لا يمكن حجز هذا الموعد، يرجى اختيار وقت أبعد"
)

var (
	errInvalidDate = errors.New("invalid date format")
	errInvalidTime = errors.New("invalid time format")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/book/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book/{slug} - Invalid request body: slug=%s: %v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slug)
	if err != nil {
		h.logger.Warn("POST /book/{slug} - Failed to parse request: slug=%s: %v", slug, err)
		switch {
		case errors.Is(err, errInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createBooking.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /book/{slug} - Missing fields: slug=%s, fields=%v", slug, validationErr.MissingFields)
			handlers.RespondBadRequest(w, msgMissingFields+": "+strings.Join(validationErr.MissingFields, ", "))

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /book/{slug} - Invalid input: slug=%s: %v", slug, err)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createBooking.ErrManagerNotFound):
			h.logger.Warn("POST /book/{slug} - Manager not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgManagerNotFound)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /book/{slug} - Slot not available: slug=%s, date=%s, time=%s",
				slug, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /book/{slug} - Too late to book: slug=%s, date=%s, time=%s",
				slug, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		default:
			h.logger.Error("POST /book/{slug} - Failed to create booking: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, msgBookingConfirmed)

	h.logger.Info("POST /book/{slug} - Booking created: slug=%s, meeting_id=%s, start_at=%s",
		slug, result.MeetingID, result.StartAt)
	handlers.RespondJSON(w, http.StatusOK, response)
}
