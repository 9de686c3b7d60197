package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/matjarhub/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/matjarhub/booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "التاريخ مطلوب"
	msgInvalidDate     = "صيغة التاريخ غير صحيحة، الصيغة المتوقعة YYYY-MM-DD"
	msgManagerNotFound = "لم يتم العثور على صفحة الحجز"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/book/{slug}
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /book/{slug} - Missing date: slug=%s", slug)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(slug, dateStr)
	if err != nil {
		h.logger.Warn("GET /book/{slug} - Invalid date format: slug=%s, date=%s: %v", slug, dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrManagerNotFound):
			h.logger.Warn("GET /book/{slug} - Manager not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgManagerNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /book/{slug} - Invalid input: slug=%s: %v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /book/{slug} - Failed to get slots: slug=%s, date=%s, error=%v", slug, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /book/{slug} - Slots retrieved: slug=%s, date=%s, slots_count=%d",
		slug, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
