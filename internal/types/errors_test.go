package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationInvalidJSON, http.StatusBadRequest},
		{ErrCodeValidationMissingKind, http.StatusBadRequest},
		{ErrCodeValidationBodyUnreadable, http.StatusBadRequest},
		{ErrCodeValidationWrongMediaType, http.StatusUnsupportedMediaType},
		{ErrCodeAuthMACMissing, http.StatusUnauthorized},
		{ErrCodeAuthMACInvalid, http.StatusUnauthorized},
		{ErrCodeInternalUnexpected, http.StatusInternalServerError},
		{ErrCodeUpstreamSlack, http.StatusBadGateway},
		{ErrorCode("something_new"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestAppErrorChain(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := NewAppError(ErrCodeUpstreamSlack, "slack unreachable", cause)

	assert.Equal(t, "upstream_slack_unavailable: slack unreachable", appErr.Error())
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus())
	assert.ErrorIs(t, appErr, cause)

	var target *AppError
	require.True(t, errors.As(fmt.Errorf("handling hook: %w", appErr), &target))
	assert.Equal(t, ErrCodeUpstreamSlack, target.Code)
}

func TestAppErrorDetails(t *testing.T) {
	appErr := NewAppErrorWithDetails(ErrCodeAuthMACInvalid, "digest mismatch", nil,
		map[string]any{"header": "X-TBA-HMAC"})

	assert.Equal(t, "X-TBA-HMAC", appErr.Details["header"])
}

func TestSecretStringRedaction(t *testing.T) {
	s := SecretString("hunter2")

	assert.Equal(t, "***REDACTED***", s.String())
	assert.Equal(t, "***REDACTED***", fmt.Sprintf("%v", s))
	assert.NotContains(t, fmt.Sprintf("%+v", struct{ Token SecretString }{s}), "hunter2")

	data, err := json.Marshal(map[string]SecretString{"secret": s})
	require.NoError(t, err)
	assert.JSONEq(t, `{"secret":"***REDACTED***"}`, string(data))

	assert.Equal(t, "hunter2", s.Unmask())
}
