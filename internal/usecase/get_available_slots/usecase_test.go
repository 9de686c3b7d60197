package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matjarhub/booking-service/internal/domain"
	settingsStorage "github.com/matjarhub/booking-service/internal/infra/storage/settings"
	"github.com/matjarhub/booking-service/internal/integrations/profileservice"
	"github.com/matjarhub/booking-service/pkg/types"
)

type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) ListBookedBetween(ctx context.Context, managerID uuid.UUID, from, to time.Time) ([]*domain.Meeting, error) {
	args := m.Called(ctx, managerID, from, to)
	return args.Get(0).([]*domain.Meeting), args.Error(1)
}

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) ListOpenForWeekday(ctx context.Context, managerID uuid.UUID, weekday time.Weekday) ([]*domain.AvailabilityRule, error) {
	args := m.Called(ctx, managerID, weekday)
	return args.Get(0).([]*domain.AvailabilityRule), args.Error(1)
}

type MockTimeOffRepository struct {
	mock.Mock
}

func (m *MockTimeOffRepository) ListOverlapping(ctx context.Context, managerID uuid.UUID, from, to time.Time) ([]*domain.TimeOff, error) {
	args := m.Called(ctx, managerID, from, to)
	return args.Get(0).([]*domain.TimeOff), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetByManager(ctx context.Context, managerID uuid.UUID) (*domain.MeetingSettings, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetingSettings), args.Error(1)
}

type MockProfileServiceClient struct {
	mock.Mock
}

func (m *MockProfileServiceClient) GetManagerBySlug(ctx context.Context, slug string) (*profileservice.Manager, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profileservice.Manager), args.Error(1)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	uc            *UseCase
	meetingRepo   *MockMeetingRepository
	availability  *MockAvailabilityRepository
	timeOffRepo   *MockTimeOffRepository
	settingsRepo  *MockSettingsRepository
	profileClient *MockProfileServiceClient
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		meetingRepo:   new(MockMeetingRepository),
		availability:  new(MockAvailabilityRepository),
		timeOffRepo:   new(MockTimeOffRepository),
		settingsRepo:  new(MockSettingsRepository),
		profileClient: new(MockProfileServiceClient),
	}
	f.uc = NewUseCase(f.meetingRepo, f.availability, f.timeOffRepo, f.settingsRepo, f.profileClient, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func utcSettings(managerID uuid.UUID) *domain.MeetingSettings {
	return &domain.MeetingSettings{
		ManagerID:           managerID,
		MeetingDuration:     30,
		BufferBefore:        0,
		BufferAfter:         0,
		Timezone:            "UTC",
		MinBookingNoticeHrs: 0,
		MaxBookingDays:      30,
	}
}

func rule(t *testing.T, managerID uuid.UUID, weekday time.Weekday, start, end string) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		ID:          uuid.New(),
		ManagerID:   managerID,
		Weekday:     weekday,
		StartTime:   mustTime(t, start),
		EndTime:     mustTime(t, end),
		IsAvailable: true,
	}
}

func slotTimes(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Time.String()
	}
	return out
}

func availableTimes(slots []domain.Slot) []string {
	out := make([]string, 0)
	for _, s := range slots {
		if s.Available {
			out = append(out, s.Time.String())
		}
	}
	return out
}

func TestExecute_SingleRule(t *testing.T) {
	managerID := uuid.New()
	// Понедельник
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).
		Return([]*domain.AvailabilityRule{rule(t, managerID, time.Monday, "09:00", "10:00")}, nil)
	f.timeOffRepo.On("ListOverlapping", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.TimeOff{}, nil)
	f.meetingRepo.On("ListBookedBetween", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.Meeting{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30"}, slotTimes(resp.Slots))
	assert.Equal(t, []string{"09:00", "09:30"}, availableTimes(resp.Slots))
	assert.Equal(t, managerID, resp.Manager.ID)
	assert.Equal(t, 30, resp.Settings.MeetingDuration)
}

func TestExecute_RepeatedCallsIdentical(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	meeting := &domain.Meeting{
		ID:        uuid.New(),
		ManagerID: managerID,
		StartAt:   time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC),
		Status:    domain.StatusBooked,
	}

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).
		Return([]*domain.AvailabilityRule{rule(t, managerID, time.Monday, "09:00", "11:00")}, nil)
	f.timeOffRepo.On("ListOverlapping", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.TimeOff{}, nil)
	f.meetingRepo.On("ListBookedBetween", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.Meeting{meeting}, nil)

	req := &Request{BookingSlug: "ahmed", Date: date}

	first, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повторный вызов без изменения данных даёт идентичный ответ
	second, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"09:30", "10:00", "10:30"}, availableTimes(first.Slots))
}

func TestExecute_BookedSlotUnavailable(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	meeting := &domain.Meeting{
		ID:        uuid.New(),
		ManagerID: managerID,
		StartAt:   time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC),
		Status:    domain.StatusBooked,
	}

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).
		Return([]*domain.AvailabilityRule{rule(t, managerID, time.Monday, "09:00", "10:00")}, nil)
	f.timeOffRepo.On("ListOverlapping", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.TimeOff{}, nil)
	f.meetingRepo.On("ListBookedBetween", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.Meeting{meeting}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30"}, slotTimes(resp.Slots))
	assert.Equal(t, []string{"09:30"}, availableTimes(resp.Slots))
}

func TestExecute_CancelledMeetingFreesSlot(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	cancelled := &domain.Meeting{
		ID:        uuid.New(),
		ManagerID: managerID,
		StartAt:   time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC),
		Status:    domain.StatusCancelled,
	}

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).
		Return([]*domain.AvailabilityRule{rule(t, managerID, time.Monday, "09:00", "10:00")}, nil)
	f.timeOffRepo.On("ListOverlapping", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.TimeOff{}, nil)
	f.meetingRepo.On("ListBookedBetween", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.Meeting{cancelled}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30"}, availableTimes(resp.Slots))
}

func TestExecute_TimeOffBlocksSlots(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	block := &domain.TimeOff{
		ID:        uuid.New(),
		ManagerID: managerID,
		StartAt:   time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC),
	}

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).
		Return([]*domain.AvailabilityRule{rule(t, managerID, time.Monday, "09:00", "10:00")}, nil)
	f.timeOffRepo.On("ListOverlapping", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.TimeOff{block}, nil)
	f.meetingRepo.On("ListBookedBetween", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.Meeting{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	// Слот, заканчивающийся ровно на границе блокировки, не считается занятым
	assert.Equal(t, []string{"09:30"}, availableTimes(resp.Slots))
}

func TestExecute_MinNoticeHidesNearSlots(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	// За час до начала дня работы: notice 1h отрезает слот 09:00... нет,
	// now 08:30 + 1h = 09:30, слот 09:00 раньше минимума
	now := time.Date(2026, time.September, 7, 8, 30, 0, 0, time.UTC)

	settings := utcSettings(managerID)
	settings.MinBookingNoticeHrs = 1

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(settings, nil)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).
		Return([]*domain.AvailabilityRule{rule(t, managerID, time.Monday, "09:00", "10:00")}, nil)
	f.timeOffRepo.On("ListOverlapping", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.TimeOff{}, nil)
	f.meetingRepo.On("ListBookedBetween", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.Meeting{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30"}, slotTimes(resp.Slots))
	assert.Equal(t, []string{"09:30"}, availableTimes(resp.Slots))
}

func TestExecute_BuffersShrinkWindow(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	settings := utcSettings(managerID)
	settings.BufferBefore = 15
	settings.BufferAfter = 15

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(settings, nil)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).
		Return([]*domain.AvailabilityRule{rule(t, managerID, time.Monday, "09:00", "11:00")}, nil)
	f.timeOffRepo.On("ListOverlapping", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.TimeOff{}, nil)
	f.meetingRepo.On("ListBookedBetween", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.Meeting{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	// Окно 09:00-11:00 поджато буферами до 09:15-10:45
	assert.Equal(t, []string{"09:15", "09:45", "10:15"}, slotTimes(resp.Slots))
}

func TestExecute_OverlappingRulesDeduped(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	rules := []*domain.AvailabilityRule{
		rule(t, managerID, time.Monday, "09:00", "10:00"),
		rule(t, managerID, time.Monday, "09:00", "10:30"),
	}

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).Return(rules, nil)
	f.timeOffRepo.On("ListOverlapping", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.TimeOff{}, nil)
	f.meetingRepo.On("ListBookedBetween", mock.Anything, managerID, mock.Anything, mock.Anything).
		Return([]*domain.Meeting{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotTimes(resp.Slots))
}

func TestExecute_NoRulesEmptySlots(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).
		Return([]*domain.AvailabilityRule{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	f.meetingRepo.AssertNotCalled(t, "ListBookedBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_PastDateEmptySlots(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 7, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	f.availability.AssertNotCalled(t, "ListOpenForWeekday", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_BeyondHorizonEmptySlots(t *testing.T) {
	managerID := uuid.New()
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	// Горизонт 30 дней, дата через 60
	date := time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_DefaultSettingsWhenMissing(t *testing.T) {
	managerID := uuid.New()
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).
		Return(nil, settingsStorage.ErrSettingsNotFound)
	f.availability.On("ListOpenForWeekday", mock.Anything, managerID, time.Monday).
		Return([]*domain.AvailabilityRule{}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed", Date: date})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultMeetingDurationMinutes, resp.Settings.MeetingDuration)
	assert.Equal(t, domain.DefaultTimezone, resp.Settings.Timezone)
}

func TestExecute_ManagerNotFound(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ghost").
		Return(nil, profileservice.ErrManagerNotFound)

	_, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ghost", Date: date})
	assert.ErrorIs(t, err, ErrManagerNotFound)
}

func TestExecute_MissingSlug(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{Date: now})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
