package meetings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	meetingRepo "github.com/matjarhub/booking-service/internal/infra/storage/meeting"
	"github.com/matjarhub/booking-service/internal/service/meetings/models"
)

// Service сервис для работы со встречами менеджера
type Service struct {
	meetingRepo MeetingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(meetingRepo MeetingRepository, logger Logger) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		logger:      logger,
	}
}

// GetByID получает встречу по ID.
// Менеджер видит только свои встречи.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, managerID uuid.UUID) (*models.MeetingResponse, error) {
	s.logger.Info("GetByID: fetching meeting id=%s for manager=%s", id, managerID)

	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("GetByID: meeting id=%s not found", id)
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("GetByID: repository error for meeting id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if meeting.ManagerID != managerID {
		s.logger.Warn("GetByID: access denied for manager=%s to meeting id=%s", managerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainMeeting(meeting), nil
}

// GetManagerMeetings получает встречи менеджера с фильтрацией
// по периоду и статусу
func (s *Service) GetManagerMeetings(ctx context.Context, req *models.GetManagerMeetingsRequest) (*models.MeetingListResponse, error) {
	s.logger.Info("GetManagerMeetings: fetching meetings for manager=%s", req.ManagerID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetManagerMeetings: invalid filter for manager=%s: %v", req.ManagerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	meetings, err := s.meetingRepo.GetByManagerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetManagerMeetings: repository error for manager=%s: %v", req.ManagerID, err)
		return nil, fmt.Errorf("%w: GetManagerMeetings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetManagerMeetings: fetched %d meetings for manager=%s", len(meetings), req.ManagerID)
	return models.FromDomainMeetingList(meetings), nil
}

// Cancel отменяет встречу менеджера (мягкое удаление).
// Встреча остаётся в истории, слот освобождается для новых броней.
func (s *Service) Cancel(ctx context.Context, meetingID uuid.UUID, req *models.CancelMeetingRequest) error {
	s.logger.Info("Cancel: cancelling meeting id=%s by manager=%s", meetingID, req.ManagerID)

	meeting, err := s.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("Cancel: meeting id=%s not found", meetingID)
			return ErrMeetingNotFound
		}
		s.logger.Error("Cancel: repository error for meeting id=%s: %v", meetingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if meeting.ManagerID != req.ManagerID {
		s.logger.Warn("Cancel: access denied for manager=%s to meeting id=%s", req.ManagerID, meetingID)
		return ErrAccessDenied
	}

	if !meeting.CanBeCancelled() {
		s.logger.Warn("Cancel: meeting id=%s cannot be cancelled, status=%s", meetingID, meeting.Status)
		return ErrCannotCancel
	}

	if err := s.meetingRepo.Cancel(ctx, meetingID, req.Reason); err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			return ErrMeetingNotFound
		}
		s.logger.Error("Cancel: repository error for meeting id=%s: %v", meetingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled meeting id=%s", meetingID)
	return nil
}
