package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   ErrorCode
	}{
		{"app error passes through", ErrReviewAlreadyExists, http.StatusConflict, CodeConflict},
		{"wrapped app error", fmt.Errorf("create: %w", ErrRestaurantNotFound), http.StatusNotFound, CodeNotFound},
		{"duplicate key", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), http.StatusBadRequest, CodeDuplicateKey},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, CodeNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.err)
			assert.Equal(t, tt.status, got.HTTPCode)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestAppErrorIs(t *testing.T) {
	wrapped := ErrReservationConflict.WithError(errors.New("already confirmed"))
	assert.True(t, Is(wrapped, ErrReservationConflict))
	assert.False(t, Is(wrapped, ErrPostConflict), "same code, different domain")
	assert.Nil(t, ErrReservationConflict.Err, "WithError must not mutate the shared error")
}

func TestMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(ErrUserNotFound)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"User not found"}`, string(raw))

	raw, err = json.Marshal(ValidationError([]FieldError{{Field: "email", Message: "must be a valid email"}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"code":"VALIDATION_FAILED",
		"message":"Validation failed",
		"errors":[{"field":"email","message":"must be a valid email"}]
	}`, string(raw))
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, Wrap(errors.New("pq: connection refused"), CodeDatabaseError, "database", "Database error", http.StatusInternalServerError))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"Internal server error"}`, w.Body.String())
}
