package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/matjarhub/booking-service/internal/domain"
	settingsRepo "github.com/matjarhub/booking-service/internal/infra/storage/settings"
	profileClient "github.com/matjarhub/booking-service/internal/integrations/profileservice"
)

// UseCase use case для получения слотов публичной страницы бронирования
type UseCase struct {
	meetingRepo      MeetingRepository
	availabilityRepo AvailabilityRepository
	timeOffRepo      TimeOffRepository
	settingsRepo     SettingsRepository
	profileClient    ProfileServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	meetingRepo MeetingRepository,
	availabilityRepo AvailabilityRepository,
	timeOffRepo TimeOffRepository,
	settingsRepo SettingsRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		meetingRepo:      meetingRepo,
		availabilityRepo: availabilityRepo,
		timeOffRepo:      timeOffRepo,
		settingsRepo:     settingsRepo,
		profileClient:    profileClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов на дату.
// Отсутствие правил на день, настроек или доступных слотов не является
// ошибкой: результат деградирует до пустого списка. Ошибкой считается
// только нерезолвящийся slug и сбои хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: slug=%s, date=%s",
		req.BookingSlug, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим менеджера по slug
	manager, err := uc.profileClient.GetManagerBySlug(ctx, req.BookingSlug)
	if err != nil {
		if errors.Is(err, profileClient.ErrManagerNotFound) {
			uc.logger.Warn("GetAvailableSlots: slug=%s not found", req.BookingSlug)
			return nil, ErrManagerNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve slug=%s: %v", req.BookingSlug, err)
		return nil, fmt.Errorf("%w: failed to resolve manager: %v", ErrInternal, err)
	}

	// 3. Настройки встреч (или значения по умолчанию)
	settings, err := uc.settingsRepo.GetByManager(ctx, manager.ID)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get settings for manager=%s: %v", manager.ID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings == nil {
		settings = domain.DefaultMeetingSettings(manager.ID)
		uc.logger.Info("GetAvailableSlots: using default settings for manager=%s", manager.ID)
	}

	now := uc.timeProvider.Now()
	loc := settings.Location()
	dayStart, dayEnd := dayBounds(req.Date, loc)

	resp := &Response{
		Manager: ManagerSummary{
			ID:        manager.ID,
			Name:      manager.Name,
			AvatarURL: manager.AvatarURL,
		},
		Settings: SettingsSummary{
			MeetingDuration:  settings.MeetingDuration,
			Timezone:         settings.Timezone,
			MinBookingNotice: settings.MinBookingNoticeHrs,
			MaxBookingDays:   settings.MaxBookingDays,
		},
		Date:  req.Date,
		Slots: []domain.Slot{},
	}

	// 4. Даты вне горизонта и прошедшие дни деградируют до пустого списка
	if isPastDay(dayStart, now, loc) || isBeyondHorizon(dayStart, now, settings, loc) {
		uc.logger.Info("GetAvailableSlots: date %s outside bookable window for manager=%s",
			req.Date.Format(domain.DateFormat), manager.ID)
		return resp, nil
	}

	// 5. Правила доступности на день недели
	rules, err := uc.availabilityRepo.ListOpenForWeekday(ctx, manager.ID, dayStart.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules for manager=%s: %v", manager.ID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	// День полностью закрыт - это не ошибка
	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: manager=%s has no rules for weekday=%d",
			manager.ID, int(dayStart.Weekday()))
		return resp, nil
	}

	// 6. Блокировки времени, пересекающие день
	blocks, err := uc.timeOffRepo.ListOverlapping(ctx, manager.ID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get time off for manager=%s: %v", manager.ID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	// 7. Активные встречи дня
	meetings, err := uc.meetingRepo.ListBookedBetween(ctx, manager.ID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get meetings for manager=%s: %v", manager.ID, err)
		return nil, fmt.Errorf("%w: failed to get meetings: %v", ErrInternal, err)
	}

	// 8. Генерируем слоты дня
	slots, err := buildDaySlots(rules, blocks, meetings, settings, dayStart, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots for manager=%s: %v", manager.ID, err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for manager=%s, date=%s",
		len(slots), manager.ID, req.Date.Format(domain.DateFormat))

	resp.Slots = slots
	return resp, nil
}
