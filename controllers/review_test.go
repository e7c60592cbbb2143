package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"salonbook-backend/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := config.DB
	config.DB = gdb
	t.Cleanup(func() { config.DB = prev })
	return mock
}

func reviewRequest(t *testing.T, salonID uuid.UUID, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/reviews", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("salonId", salonID.String())
	return w, c
}

// Two requests racing past the existing-review lookup end up on the
// unique index; the second insert must surface as a conflict, not a 500.
func TestCreateReviewConcurrentDuplicateIsConflict(t *testing.T) {
	mock := setupMockDB(t)

	salonID := uuid.New()
	reservationID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "customer_id", "staff_id", "status"}).
			AddRow(reservationID.String(), salonID.String(), uuid.NewString(), uuid.NewString(), "completed"))
	mock.ExpectQuery(`SELECT \* FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_reviews_reservation_id" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	body := fmt.Sprintf(`{"reservationId": %q, "rating": 5}`, reservationID)
	w, c := reviewRequest(t, salonID, body)

	CreateReview(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already has a review")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewInsertFailureIsServerError(t *testing.T) {
	mock := setupMockDB(t)

	salonID := uuid.New()
	reservationID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "customer_id", "staff_id", "status"}).
			AddRow(reservationID.String(), salonID.String(), uuid.NewString(), uuid.NewString(), "completed"))
	mock.ExpectQuery(`SELECT \* FROM "reviews"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reviews"`).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	body := fmt.Sprintf(`{"reservationId": %q, "rating": 4}`, reservationID)
	w, c := reviewRequest(t, salonID, body)

	CreateReview(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewIncompleteReservationIsConflict(t *testing.T) {
	mock := setupMockDB(t)

	salonID := uuid.New()
	reservationID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "status"}).
			AddRow(reservationID.String(), salonID.String(), "confirmed"))

	body := fmt.Sprintf(`{"reservationId": %q, "rating": 5}`, reservationID)
	w, c := reviewRequest(t, salonID, body)

	CreateReview(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "completed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
