package create_booking

import (
	"time"

	"github.com/matjarhub/booking-service/internal/domain"
	createBooking "github.com/matjarhub/booking-service/internal/usecase/create_booking"
	"github.com/matjarhub/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date       string  `json:"date"` // "2026-09-15"
	StartTime  string  `json:"time"` // "09:30"
	GuestName  string  `json:"guest_name"`
	GuestEmail string  `json:"guest_email"`
	GuestPhone *string `json:"guest_phone,omitempty"`
	StoreURL   *string `json:"store_url,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Success   bool        `json:"success"`
	MeetingID string      `json:"meeting_id"`
	Message   string      `json:"message"`
	Meeting   MeetingInfo `json:"meeting"`
}

// MeetingInfo данные созданной встречи для страницы подтверждения
type MeetingInfo struct {
	StartAt     string `json:"start_at"` // ISO 8601
	EndAt       string `json:"end_at"`   // ISO 8601
	ManagerName string `json:"manager_name"`
	GuestName   string `json:"guest_name"`
	GuestEmail  string `json:"guest_email"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустые date/startTime пропускаются как нулевые значения:
// use case перечислит их в ошибке обязательных полей.
func (r *CreateBookingRequest) ToUseCaseRequest(slug string) (*createBooking.Request, error) {
	req := &createBooking.Request{
		BookingSlug: slug,
		GuestName:   r.GuestName,
		GuestEmail:  r.GuestEmail,
		GuestPhone:  r.GuestPhone,
		StoreURL:    r.StoreURL,
	}

	if r.Date != "" {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, errInvalidDate
		}
		req.Date = date
	}

	if r.StartTime != "" {
		startTime, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, errInvalidTime
		}
		req.StartTime = startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, message string) *BookingResponse {
	return &BookingResponse{
		Success:   true,
		MeetingID: resp.MeetingID.String(),
		Message:   message,
		Meeting: MeetingInfo{
			StartAt:     resp.StartAt.Format(time.RFC3339),
			EndAt:       resp.EndAt.Format(time.RFC3339),
			ManagerName: resp.ManagerName,
			GuestName:   resp.GuestName,
			GuestEmail:  resp.GuestEmail,
		},
	}
}
