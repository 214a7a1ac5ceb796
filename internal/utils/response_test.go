package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("wrapped: %w", &AppError{
		StatusCode: http.StatusConflict,
		Code:       ErrCodeSubmissionInFlight,
		Message:    "busy",
		Details:    map[string]bool{"submitting": true},
		Err:        errors.New("in flight"),
	})

	HandleAppError(rec, err)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, ErrCodeSubmissionInFlight, body.Code)
	require.Equal(t, "busy", body.Message)
	require.Equal(t, map[string]any{"submitting": true}, body.Details)
}

func TestHandleAppErrorFallsBackToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, errors.New("database on fire"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, ErrCodeInternal, body.Code)
	require.NotContains(t, body.Message, "database")
}
