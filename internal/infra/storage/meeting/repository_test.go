package meeting_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matjarhub/booking-service/internal/domain"
	"github.com/matjarhub/booking-service/internal/infra/storage/meeting"
)

func setupRepo(t *testing.T) (*meeting.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return meeting.NewRepository(db), dbMock
}

func newMeeting(managerID uuid.UUID) *domain.Meeting {
	return &domain.Meeting{
		ManagerID:  managerID,
		StartAt:    time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2026, time.September, 7, 9, 30, 0, 0, time.UTC),
		GuestName:  "Sara",
		GuestEmail: "sara@example.com",
		Status:     domain.StatusBooked,
		Source:     domain.SourceBookingPage,
	}
}

func TestCreateIfSlotFree(t *testing.T) {
	managerID := uuid.New()

	t.Run("inserts when slot is free", func(t *testing.T) {
		repo, dbMock := setupRepo(t)

		meetingID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(meetingID, now, now)

		dbMock.ExpectQuery("INSERT INTO meetings").
			WillReturnRows(rows)

		m := newMeeting(managerID)
		created, err := repo.CreateIfSlotFree(context.Background(), m)
		require.NoError(t, err)

		assert.Equal(t, meetingID, created.ID)
		assert.Equal(t, now, created.CreatedAt)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("returns ErrSlotTaken when conditional insert matches nothing", func(t *testing.T) {
		repo, dbMock := setupRepo(t)

		dbMock.ExpectQuery("INSERT INTO meetings").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.CreateIfSlotFree(context.Background(), newMeeting(managerID))
		assert.ErrorIs(t, err, meeting.ErrSlotTaken)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("maps exclusion constraint violation to ErrSlotTaken", func(t *testing.T) {
		repo, dbMock := setupRepo(t)

		dbMock.ExpectQuery("INSERT INTO meetings").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "meetings_no_overlap"})

		_, err := repo.CreateIfSlotFree(context.Background(), newMeeting(managerID))
		assert.ErrorIs(t, err, meeting.ErrSlotTaken)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("wraps other database errors", func(t *testing.T) {
		repo, dbMock := setupRepo(t)

		dbMock.ExpectQuery("INSERT INTO meetings").
			WillReturnError(&pq.Error{Code: "53300"})

		_, err := repo.CreateIfSlotFree(context.Background(), newMeeting(managerID))
		assert.ErrorIs(t, err, meeting.ErrExecQuery)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestGetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo, dbMock := setupRepo(t)

		dbMock.ExpectQuery("SELECT .+ FROM meetings").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, meeting.ErrMeetingNotFound)
	})

	t.Run("found", func(t *testing.T) {
		repo, dbMock := setupRepo(t)

		meetingID := uuid.New()
		managerID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{
			"id", "manager_id", "store_id", "start_at", "end_at", "guest_name", "guest_email",
			"guest_phone", "status", "source", "cancellation_reason", "cancelled_at", "created_at", "updated_at",
		}).AddRow(meetingID, managerID, nil, now, now.Add(30*time.Minute), "Sara", "sara@example.com",
			nil, "booked", "booking_page", nil, nil, now, now)

		dbMock.ExpectQuery("SELECT .+ FROM meetings").
			WithArgs(meetingID).
			WillReturnRows(rows)

		m, err := repo.GetByID(context.Background(), meetingID)
		require.NoError(t, err)
		assert.Equal(t, meetingID, m.ID)
		assert.Equal(t, domain.StatusBooked, m.Status)
		assert.Nil(t, m.StoreID)
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancels existing meeting", func(t *testing.T) {
		repo, dbMock := setupRepo(t)

		meetingID := uuid.New()
		dbMock.ExpectExec("UPDATE meetings").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Cancel(context.Background(), meetingID, "guest asked to reschedule")
		require.NoError(t, err)
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("returns ErrMeetingNotFound when nothing updated", func(t *testing.T) {
		repo, dbMock := setupRepo(t)

		dbMock.ExpectExec("UPDATE meetings").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Cancel(context.Background(), uuid.New(), "")
		assert.ErrorIs(t, err, meeting.ErrMeetingNotFound)
	})
}

func TestListBookedBetween(t *testing.T) {
	repo, dbMock := setupRepo(t)

	managerID := uuid.New()
	from := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "manager_id", "store_id", "start_at", "end_at", "guest_name", "guest_email",
		"guest_phone", "status", "source", "cancellation_reason", "cancelled_at", "created_at", "updated_at",
	}).
		AddRow(uuid.New(), managerID, nil, from.Add(9*time.Hour), from.Add(9*time.Hour+30*time.Minute),
			"Sara", "sara@example.com", nil, "booked", "booking_page", nil, nil, now, now).
		AddRow(uuid.New(), managerID, nil, from.Add(14*time.Hour), from.Add(14*time.Hour+30*time.Minute),
			"Omar", "omar@example.com", nil, "booked", "dashboard", nil, nil, now, now)

	dbMock.ExpectQuery("SELECT .+ FROM meetings").
		WillReturnRows(rows)

	meetings, err := repo.ListBookedBetween(context.Background(), managerID, from, to)
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "Sara", meetings[0].GuestName)
	assert.Equal(t, "Omar", meetings[1].GuestName)
}
