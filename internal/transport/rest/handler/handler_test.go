package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelens/internal/service"
)

func TestWriteServiceError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"quota exhausted", service.ErrQuotaExhausted, http.StatusPaymentRequired},
		{"invalid token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"terminal interview", service.ErrInterviewTerminal, http.StatusConflict},
		{"session exists", service.ErrSessionExists, http.StatusConflict},
		{"session conflict", service.ErrSessionConflict, http.StatusConflict},
		{"submission conflict", service.ErrSubmissionConflict, http.StatusConflict},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"validation", service.ErrValidation, http.StatusBadRequest},
		{"storage failure", errors.New("connection reset"), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestWriteServiceError_WrappedErrorsStillMap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := errors.Join(errors.New("load interview"), service.ErrNotFound)
	writeServiceError(rec, wrapped)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteServiceError_NeverLeaksInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.New("dial tcp 10.0.0.5:27017: connection refused"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body["error"], "10.0.0.5")
}
