package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/matjarhub/booking-service/internal/domain"
	settingsRepo "github.com/matjarhub/booking-service/internal/infra/storage/settings"
	timeoffRepo "github.com/matjarhub/booking-service/internal/infra/storage/timeoff"
	"github.com/matjarhub/booking-service/internal/service/schedule/models"
)

// Service сервис управления расписанием менеджера:
// правила доступности, блокировки времени и настройки встреч
type Service struct {
	availabilityRepo AvailabilityRepository
	timeOffRepo      TimeOffRepository
	settingsRepo     SettingsRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	timeOffRepo TimeOffRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		timeOffRepo:      timeOffRepo,
		settingsRepo:     settingsRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetSchedule возвращает полное расписание менеджера.
// Если настройки отсутствуют, подставляются значения по умолчанию.
func (s *Service) GetSchedule(ctx context.Context, managerID uuid.UUID) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for manager=%s", managerID)

	rules, err := s.availabilityRepo.ListByManager(ctx, managerID)
	if err != nil {
		s.logger.Error("GetSchedule: availability repository error for manager=%s: %v", managerID, err)
		return nil, fmt.Errorf("%w: GetSchedule - availability repository error: %v", ErrInternal, err)
	}

	timeOff, err := s.timeOffRepo.ListByManager(ctx, managerID)
	if err != nil {
		s.logger.Error("GetSchedule: time off repository error for manager=%s: %v", managerID, err)
		return nil, fmt.Errorf("%w: GetSchedule - time off repository error: %v", ErrInternal, err)
	}

	settings, err := s.settingsRepo.GetByManager(ctx, managerID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			settings = domain.DefaultMeetingSettings(managerID)
		} else {
			s.logger.Error("GetSchedule: settings repository error for manager=%s: %v", managerID, err)
			return nil, fmt.Errorf("%w: GetSchedule - settings repository error: %v", ErrInternal, err)
		}
	}

	return &models.ScheduleResponse{
		Rules:    models.FromDomainRules(rules),
		TimeOff:  models.FromDomainTimeOffList(timeOff),
		Settings: models.FromDomainSettings(settings),
	}, nil
}

// UpdateSettings обновляет настройки встреч менеджера (upsert)
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating settings for manager=%s", req.ManagerID)

	if err := req.Validate(); err != nil {
		s.logger.Warn("UpdateSettings: invalid settings for manager=%s: %v", req.ManagerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.settingsRepo.Upsert(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for manager=%s: %v", req.ManagerID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: settings updated for manager=%s", req.ManagerID)
	resp := models.FromDomainSettings(saved)
	return &resp, nil
}

// ReplaceRules атомарно заменяет все правила доступности менеджера.
// Пустой список допустим: страница бронирования перестаёт предлагать слоты.
func (s *Service) ReplaceRules(ctx context.Context, req *models.ReplaceRulesRequest) ([]models.AvailabilityRuleResponse, error) {
	s.logger.Info("ReplaceRules: replacing %d rules for manager=%s", len(req.Rules), req.ManagerID)

	rules := make([]*domain.AvailabilityRule, 0, len(req.Rules))
	for i, input := range req.Rules {
		rule, err := input.ToDomain(req.ManagerID)
		if err != nil {
			s.logger.Warn("ReplaceRules: invalid rule #%d for manager=%s: %v", i, req.ManagerID, err)
			return nil, fmt.Errorf("%w: rule #%d: %v", ErrInvalidInput, i, err)
		}
		rules = append(rules, rule)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.availabilityRepo.ReplaceForManager(ctx, req.ManagerID, rules)
	})
	if err != nil {
		s.logger.Error("ReplaceRules: repository error for manager=%s: %v", req.ManagerID, err)
		return nil, fmt.Errorf("%w: ReplaceRules - repository error: %v", ErrInternal, err)
	}

	saved, err := s.availabilityRepo.ListByManager(ctx, req.ManagerID)
	if err != nil {
		s.logger.Error("ReplaceRules: failed to reload rules for manager=%s: %v", req.ManagerID, err)
		return nil, fmt.Errorf("%w: ReplaceRules - failed to reload rules: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceRules: replaced rules for manager=%s, now %d rules", req.ManagerID, len(saved))
	return models.FromDomainRules(saved), nil
}

// CreateTimeOff создаёт блокировку времени для менеджера
func (s *Service) CreateTimeOff(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("CreateTimeOff: creating time off for manager=%s", req.ManagerID)

	timeOff, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("CreateTimeOff: invalid time off for manager=%s: %v", req.ManagerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.timeOffRepo.Create(ctx, timeOff)
	if err != nil {
		s.logger.Error("CreateTimeOff: repository error for manager=%s: %v", req.ManagerID, err)
		return nil, fmt.Errorf("%w: CreateTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTimeOff: created time off id=%s for manager=%s", created.ID, req.ManagerID)
	resp := models.FromDomainTimeOff(created)
	return &resp, nil
}

// DeleteTimeOff удаляет блокировку времени менеджера
func (s *Service) DeleteTimeOff(ctx context.Context, managerID, id uuid.UUID) error {
	s.logger.Info("DeleteTimeOff: deleting time off id=%s for manager=%s", id, managerID)

	if err := s.timeOffRepo.Delete(ctx, managerID, id); err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("DeleteTimeOff: time off id=%s not found for manager=%s", id, managerID)
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error for time off id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTimeOff: deleted time off id=%s", id)
	return nil
}
