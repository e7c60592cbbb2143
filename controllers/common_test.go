package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"salonbook-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: bad range", services.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("customer: %w", services.ErrNotFound), http.StatusNotFound},
		{"slot taken", services.ErrSlotNotAvailable, http.StatusConflict},
		{"already cancelled", services.ErrAlreadyCancelled, http.StatusConflict},
		{"invalid transition", fmt.Errorf("%w: completed -> confirmed", services.ErrInvalidTransition), http.StatusConflict},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tt.err)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireSalonID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid id in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New()
		c.Set("salonId", id.String())

		got, ok := requireSalonID(c)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("missing id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		_, ok := requireSalonID(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("salonId", "not-a-uuid")

		_, ok := requireSalonID(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New()
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		got, ok := parseIDParam(c)
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("invalid", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "42"}}

		_, ok := parseIDParam(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
