package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matjarhub/booking-service/internal/domain"
	meetingStorage "github.com/matjarhub/booking-service/internal/infra/storage/meeting"
	settingsStorage "github.com/matjarhub/booking-service/internal/infra/storage/settings"
	"github.com/matjarhub/booking-service/internal/integrations/notifier"
	"github.com/matjarhub/booking-service/internal/integrations/profileservice"
	"github.com/matjarhub/booking-service/pkg/ptr"
	"github.com/matjarhub/booking-service/pkg/types"
)

type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) CreateIfSlotFree(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error) {
	args := m.Called(ctx, meeting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
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

type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*domain.Store, error) {
	args := m.Called(ctx, managerID)
	return args.Get(0).([]*domain.Store), args.Error(1)
}

type MockStoreMatcher struct {
	mock.Mock
}

func (m *MockStoreMatcher) Match(stores []*domain.Store, rawURL string) *uuid.UUID {
	args := m.Called(stores, rawURL)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*uuid.UUID)
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

type MockNotifierClient struct {
	mock.Mock
}

func (m *MockNotifierClient) DispatchBookingConfirmed(confirmation *notifier.BookingConfirmation) {
	m.Called(confirmation)
}

// passthroughTxManager выполняет fn без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	settingsRepo  *MockSettingsRepository
	storeRepo     *MockStoreRepository
	storeMatcher  *MockStoreMatcher
	profileClient *MockProfileServiceClient
	notifier      *MockNotifierClient
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		meetingRepo:   new(MockMeetingRepository),
		settingsRepo:  new(MockSettingsRepository),
		storeRepo:     new(MockStoreRepository),
		storeMatcher:  new(MockStoreMatcher),
		profileClient: new(MockProfileServiceClient),
		notifier:      new(MockNotifierClient),
	}
	f.uc = NewUseCase(
		f.meetingRepo,
		f.settingsRepo,
		f.storeRepo,
		f.storeMatcher,
		f.profileClient,
		f.notifier,
		passthroughTxManager{},
		nopLogger{},
	)
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
		Timezone:            "UTC",
		MinBookingNoticeHrs: 0,
		MaxBookingDays:      30,
	}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		BookingSlug: "ahmed",
		Date:        time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		StartTime:   mustTime(t, "09:00"),
		GuestName:   "Sara",
		GuestEmail:  "sara@example.com",
	}
}

func TestExecute_CreatesBooking(t *testing.T) {
	managerID := uuid.New()
	meetingID := uuid.New()
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.meetingRepo.On("CreateIfSlotFree", mock.Anything, mock.MatchedBy(func(m *domain.Meeting) bool {
		return m.ManagerID == managerID &&
			m.StartAt.Equal(time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)) &&
			m.EndAt.Equal(time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC)) &&
			m.Status == domain.StatusBooked &&
			m.Source == domain.SourceBookingPage
	})).Return(&domain.Meeting{
		ID:         meetingID,
		ManagerID:  managerID,
		StartAt:    time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC),
		GuestName:  "Sara",
		GuestEmail: "sara@example.com",
		Status:     domain.StatusBooked,
		CreatedAt:  now,
	}, nil)
	f.notifier.On("DispatchBookingConfirmed", mock.Anything).Return()

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, meetingID, resp.MeetingID)
	assert.Equal(t, managerID, resp.ManagerID)
	assert.Equal(t, "Ahmed", resp.ManagerName)
	assert.Nil(t, resp.StoreID)
	f.notifier.AssertCalled(t, "DispatchBookingConfirmed", mock.Anything)
	f.storeRepo.AssertNotCalled(t, "ListByManager", mock.Anything, mock.Anything)
}

func TestExecute_SlotTaken(t *testing.T) {
	managerID := uuid.New()
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.meetingRepo.On("CreateIfSlotFree", mock.Anything, mock.Anything).
		Return(nil, meetingStorage.ErrSlotTaken)

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	f.notifier.AssertNotCalled(t, "DispatchBookingConfirmed", mock.Anything)
}

func TestExecute_TooLateToBook(t *testing.T) {
	managerID := uuid.New()
	// Слот 09:00 того же дня, notice 24h
	now := time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)

	settings := utcSettings(managerID)
	settings.MinBookingNoticeHrs = 24

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(settings, nil)

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrTooLateToBook)
	f.meetingRepo.AssertNotCalled(t, "CreateIfSlotFree", mock.Anything, mock.Anything)
}

func TestExecute_MissingFields(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)

	_, err := f.uc.Execute(context.Background(), &Request{BookingSlug: "ahmed"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"date", "time", "guest_name", "guest_email"}, validationErr.MissingFields)
}

func TestExecute_ManagerNotFound(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ghost").
		Return(nil, profileservice.ErrManagerNotFound)

	req := validRequest(t)
	req.BookingSlug = "ghost"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrManagerNotFound)
}

func TestExecute_StoreMatched(t *testing.T) {
	managerID := uuid.New()
	storeID := uuid.New()
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	stores := []*domain.Store{
		{ID: storeID, ManagerID: managerID, Name: "Matjar", URL: "https://matjar.example.com"},
	}

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.storeRepo.On("ListByManager", mock.Anything, managerID).Return(stores, nil)
	f.storeMatcher.On("Match", stores, "matjar.example.com").Return(&storeID)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.meetingRepo.On("CreateIfSlotFree", mock.Anything, mock.MatchedBy(func(m *domain.Meeting) bool {
		return m.StoreID != nil && *m.StoreID == storeID
	})).Return(&domain.Meeting{
		ID:        uuid.New(),
		ManagerID: managerID,
		StoreID:   &storeID,
		StartAt:   time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC),
		Status:    domain.StatusBooked,
	}, nil)
	f.notifier.On("DispatchBookingConfirmed", mock.Anything).Return()

	req := validRequest(t)
	req.StoreURL = ptr.Ptr("matjar.example.com")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.StoreID)
	assert.Equal(t, storeID, *resp.StoreID)
}

func TestExecute_StoreMatchFailureDegrades(t *testing.T) {
	managerID := uuid.New()
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.storeRepo.On("ListByManager", mock.Anything, managerID).
		Return([]*domain.Store{}, assert.AnError)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).Return(utcSettings(managerID), nil)
	f.meetingRepo.On("CreateIfSlotFree", mock.Anything, mock.MatchedBy(func(m *domain.Meeting) bool {
		return m.StoreID == nil
	})).Return(&domain.Meeting{
		ID:        uuid.New(),
		ManagerID: managerID,
		StartAt:   time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC),
		Status:    domain.StatusBooked,
	}, nil)
	f.notifier.On("DispatchBookingConfirmed", mock.Anything).Return()

	req := validRequest(t)
	req.StoreURL = ptr.Ptr("matjar.example.com")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.StoreID)
}

func TestExecute_DefaultSettingsDuration(t *testing.T) {
	managerID := uuid.New()
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(now)
	f.profileClient.On("GetManagerBySlug", mock.Anything, "ahmed").
		Return(&profileservice.Manager{ID: managerID, Name: "Ahmed", Role: profileservice.RoleManager}, nil)
	f.settingsRepo.On("GetByManager", mock.Anything, managerID).
		Return(nil, settingsStorage.ErrSettingsNotFound)
	f.meetingRepo.On("CreateIfSlotFree", mock.Anything, mock.MatchedBy(func(m *domain.Meeting) bool {
		// Длительность по умолчанию 30 минут
		return m.EndAt.Sub(m.StartAt) == 30*time.Minute
	})).Return(&domain.Meeting{
		ID:        uuid.New(),
		ManagerID: managerID,
		StartAt:   time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndAt:     time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC),
		Status:    domain.StatusBooked,
	}, nil)
	f.notifier.On("DispatchBookingConfirmed", mock.Anything).Return()

	req := validRequest(t)
	// Notice по умолчанию 24 часа, и 7 сентября это с запасом
	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}
