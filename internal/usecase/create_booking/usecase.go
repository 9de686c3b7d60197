package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
	meetingRepo "github.com/matjarhub/booking-service/internal/infra/storage/meeting"
	settingsRepo "github.com/matjarhub/booking-service/internal/infra/storage/settings"
	"github.com/matjarhub/booking-service/internal/integrations/notifier"
	profileClient "github.com/matjarhub/booking-service/internal/integrations/profileservice"
)

// UseCase use case для создания брони с публичной страницы
type UseCase struct {
	meetingRepo   MeetingRepository
	settingsRepo  SettingsRepository
	storeRepo     StoreRepository
	storeMatcher  StoreMatcher
	profileClient ProfileServiceClient
	notifier      NotifierClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	meetingRepo MeetingRepository,
	settingsRepo SettingsRepository,
	storeRepo StoreRepository,
	storeMatcher StoreMatcher,
	profileClient ProfileServiceClient,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		meetingRepo:   meetingRepo,
		settingsRepo:  settingsRepo,
		storeRepo:     storeRepo,
		storeMatcher:  storeMatcher,
		profileClient: profileClient,
		notifier:      notifierClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания брони.
// Проверка пересечения и вставка атомарны относительно конкурентных
// попыток занять тот же слот: условная вставка выполняется одним
// запросом внутри SERIALIZABLE транзакции, отдельного check-then-insert
// в коде приложения нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slug=%s, date=%s, time=%s, guest=%s",
		req.BookingSlug, req.Date.Format(domain.DateFormat), req.StartTime, req.GuestEmail)

	// 1. Валидация обязательных полей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим менеджера по slug
	manager, err := uc.profileClient.GetManagerBySlug(ctx, req.BookingSlug)
	if err != nil {
		if errors.Is(err, profileClient.ErrManagerNotFound) {
			uc.logger.Warn("CreateBooking: slug=%s not found", req.BookingSlug)
			return nil, ErrManagerNotFound
		}
		uc.logger.Error("CreateBooking: failed to resolve slug=%s: %v", req.BookingSlug, err)
		return nil, fmt.Errorf("%w: failed to resolve manager: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 3. Best-effort привязка магазина по URL; отсутствие совпадения
	// не ошибка, бронь создается без store_id
	matchedStoreID := uc.matchStore(ctx, manager, req.StoreURL)

	var result *domain.Meeting

	// 4. Настройки и вставка в SERIALIZABLE транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		settings, err := uc.settingsRepo.GetByManager(txCtx, manager.ID)
		if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateBooking: failed to get settings for manager=%s: %v", manager.ID, err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		if settings == nil {
			settings = domain.DefaultMeetingSettings(manager.ID)
			uc.logger.Info("CreateBooking: using default settings for manager=%s", manager.ID)
		}

		loc := settings.Location()

		startAt, err := resolveStartAt(req.Date, req.StartTime, loc)
		if err != nil {
			return err
		}
		endAt := startAt.Add(time.Duration(settings.MeetingDuration) * time.Minute)

		if err := validateBookingNotice(startAt, now, settings.MinBookingNoticeHrs); err != nil {
			uc.logger.Warn("CreateBooking: notice validation failed for manager=%s: %v", manager.ID, err)
			return err
		}

		meeting := &domain.Meeting{
			ManagerID:  manager.ID,
			StoreID:    matchedStoreID,
			StartAt:    startAt,
			EndAt:      endAt,
			GuestName:  req.GuestName,
			GuestEmail: req.GuestEmail,
			GuestPhone: req.GuestPhone,
			Status:     domain.StatusBooked,
			Source:     domain.SourceBookingPage,
		}

		created, err := uc.meetingRepo.CreateIfSlotFree(txCtx, meeting)
		if err != nil {
			if errors.Is(err, meetingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken for manager=%s, start=%s",
					manager.ID, startAt.Format(time.RFC3339))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create meeting for manager=%s: %v", manager.ID, err)
			return fmt.Errorf("%w: failed to create meeting: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created meeting id=%s for manager=%s",
		result.ID, manager.ID)

	// 5. Подтверждение - fire-and-forget, на результат не влияет
	uc.notifier.DispatchBookingConfirmed(&notifier.BookingConfirmation{
		MeetingID:   result.ID,
		ManagerID:   manager.ID,
		ManagerName: manager.Name,
		GuestName:   result.GuestName,
		GuestEmail:  result.GuestEmail,
		StartAt:     result.StartAt,
		EndAt:       result.EndAt,
	})

	return &Response{
		MeetingID:   result.ID,
		ManagerID:   manager.ID,
		ManagerName: manager.Name,
		StoreID:     result.StoreID,
		StartAt:     result.StartAt,
		EndAt:       result.EndAt,
		GuestName:   result.GuestName,
		GuestEmail:  result.GuestEmail,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// matchStore подбирает магазин менеджера по URL.
// Любая ошибка здесь деградирует до отсутствия привязки.
func (uc *UseCase) matchStore(ctx context.Context, manager *profileClient.Manager, storeURL *string) *uuid.UUID {
	if storeURL == nil || *storeURL == "" {
		return nil
	}

	stores, err := uc.storeRepo.ListByManager(ctx, manager.ID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to list stores for manager=%s, skipping match: %v",
			manager.ID, err)
		return nil
	}

	matched := uc.storeMatcher.Match(stores, *storeURL)
	if matched == nil {
		uc.logger.Info("CreateBooking: no store matched url=%s for manager=%s", *storeURL, manager.ID)
		return nil
	}

	uc.logger.Info("CreateBooking: matched store=%s for url=%s", *matched, *storeURL)
	return matched
}
