package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billingform/internal/engine/transparent"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"configuration", transparent.ErrMissingPrivateKey, http.StatusServiceUnavailable, ErrCodeMisconfigured},
		{"invalid argument", transparent.ErrUnknownAction, http.StatusBadRequest, ErrCodeInvalidInput},
		{"encoding", transparent.ErrUnsupportedValue, http.StatusUnprocessableEntity, ErrCodeUnprocessable},
		{"other", stderrors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Status(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestWriteDomainError(t *testing.T) {
	rr := httptest.NewRecorder()
	_, err := transparent.ParseAction("refund")
	WriteDomainError(rr, err)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, ErrCodeInvalidInput, body.Code)
	assert.Contains(t, body.Message, "refund")
}

func TestWriteDomainError_HidesConfigurationDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteDomainError(rr, transparent.ErrMissingPrivateKey)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, ErrCodeMisconfigured, body.Code)
	assert.NotContains(t, body.Message, "private key")
}
