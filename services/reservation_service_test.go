package services

import (
	"context"
	"testing"
	"time"

	"salonbook-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestCreateReservationSlotConflict(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewReservationService(gdb, nil, nil, "")

	salonID := uuid.New()
	userID := uuid.New()
	customerID := uuid.New()
	staffID := uuid.New()
	serviceID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id"}).AddRow(customerID.String(), salonID.String()))
	mock.ExpectQuery(`SELECT \* FROM "staffs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id"}).AddRow(staffID.String(), salonID.String()))
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "duration"}).AddRow(serviceID.String(), salonID.String(), 30))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), salonID, userID, CreateReservationInput{
		CustomerID: customerID,
		StaffID:    staffID,
		ServiceID:  serviceID,
		StartTime:  time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationUnknownCustomer(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewReservationService(gdb, nil, nil, "")

	mock.ExpectQuery(`SELECT \* FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), CreateReservationInput{
		CustomerID: uuid.New(),
		StaffID:    uuid.New(),
		ServiceID:  uuid.New(),
		StartTime:  time.Now(),
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationInvalidRange(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewReservationService(gdb, nil, nil, "")

	salonID := uuid.New()
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery(`SELECT \* FROM "staffs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "duration"}).AddRow(uuid.NewString(), 30))

	_, err := svc.Create(context.Background(), salonID, uuid.New(), CreateReservationInput{
		CustomerID: uuid.New(),
		StaffID:    uuid.New(),
		ServiceID:  uuid.New(),
		StartTime:  start,
		EndTime:    &end,
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionCancelAlreadyCancelled(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewReservationService(gdb, nil, nil, "")

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(id.String(), "cancelled"))

	_, err := svc.Transition(context.Background(), uuid.New(), id, models.ReservationCancelled, "double cancel")

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionFromTerminalStatus(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewReservationService(gdb, nil, nil, "")

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(id.String(), "completed"))

	_, err := svc.Transition(context.Background(), uuid.New(), id, models.ReservationConfirmed, "")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionConfirm(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewReservationService(gdb, nil, nil, "")

	id := uuid.New()
	salonID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "status"}).AddRow(id.String(), salonID.String(), "pending"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reservations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reservation, err := svc.Transition(context.Background(), salonID, id, models.ReservationConfirmed, "")

	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, reservation.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionCompleteBumpsCustomerStats(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewReservationService(gdb, nil, nil, "")

	id := uuid.New()
	salonID := uuid.New()
	customerID := uuid.New()
	end := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "customer_id", "status", "end_time"}).
			AddRow(id.String(), salonID.String(), customerID.String(), "confirmed", end))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reservations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "customers" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reservation, err := svc.Transition(context.Background(), salonID, id, models.ReservationCompleted, "")

	require.NoError(t, err)
	assert.Equal(t, models.ReservationCompleted, reservation.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type stubHolder struct {
	acquired bool
	released bool
}

func (s *stubHolder) AcquireSlotHold(ctx context.Context, staffID uuid.UUID, start time.Time, ttl time.Duration) (bool, error) {
	return s.acquired, nil
}

func (s *stubHolder) ReleaseSlotHold(ctx context.Context, staffID uuid.UUID, start time.Time) error {
	s.released = true
	return nil
}

func TestCreateReservationHeldSlot(t *testing.T) {
	gdb, mock := setupMockDB(t)
	holder := &stubHolder{acquired: false}
	svc := NewReservationService(gdb, holder, nil, "")

	salonID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery(`SELECT \* FROM "staffs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "duration"}).AddRow(uuid.NewString(), 45))

	_, err := svc.Create(context.Background(), salonID, uuid.New(), CreateReservationInput{
		CustomerID: uuid.New(),
		StaffID:    uuid.New(),
		ServiceID:  uuid.New(),
		StartTime:  time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.False(t, holder.released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationTerminalStatus(t *testing.T) {
	gdb, mock := setupMockDB(t)
	svc := NewReservationService(gdb, nil, nil, "")

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(id.String(), "no_show"))

	notes := "moved"
	_, err := svc.Update(context.Background(), uuid.New(), id, UpdateReservationInput{Notes: &notes})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
