package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/afland/duende-publisher/internal/platform/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := apperror.New(apperror.CodeTransient, apperror.BusinessCodeMediaUploadFailed, "media upload failed")

	assert.Equal(t, apperror.CodeTransient, err.Code)
	assert.Equal(t, apperror.BusinessCodeMediaUploadFailed, err.BusinessCode)
	assert.Equal(t, "media upload failed", err.Error())
	assert.Nil(t, err.Inner)
}

func TestWrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := apperror.Wrap(inner, apperror.CodeTransient, apperror.BusinessCodeGeneral, "store unavailable")

	require.ErrorIs(t, err, inner)
	assert.Equal(t, "store unavailable", err.Error())
}

func TestIs_MatchesByCodes(t *testing.T) {
	template := apperror.New(apperror.CodeQuotaExhausted, apperror.BusinessCodeTokenBudget, "budget exceeded")
	err := apperror.Wrap(errors.New("usage 510000/500000"),
		apperror.CodeQuotaExhausted, apperror.BusinessCodeTokenBudget, "daily token budget exceeded")

	assert.True(t, errors.Is(err, template))

	other := apperror.New(apperror.CodeTransient, apperror.BusinessCodeTokenBudget, "x")
	assert.False(t, errors.Is(err, other))
}

func TestRetryableHelpers(t *testing.T) {
	retryable := apperror.New(apperror.CodeTransient, apperror.BusinessCodeImageRenderFailed, "render failed")
	quota := apperror.New(apperror.CodeQuotaExhausted, apperror.BusinessCodeTokenBudget, "budget exceeded")
	validation := apperror.New(apperror.CodeValidationFailed, apperror.BusinessCodeIncompleteContent, "missing post body")

	assert.True(t, apperror.IsRetryable(retryable))
	assert.False(t, apperror.IsRetryable(quota))
	assert.True(t, apperror.IsQuotaExhausted(quota))
	assert.False(t, apperror.IsQuotaExhausted(validation))
	assert.True(t, apperror.IsValidationFailure(validation))
	assert.False(t, apperror.IsValidationFailure(retryable))

	// Wrapped errors keep their classification.
	wrapped := fmt.Errorf("processing event: %w", retryable)
	assert.True(t, apperror.IsRetryable(wrapped))

	// Plain errors are never retryable.
	assert.False(t, apperror.IsRetryable(errors.New("boom")))
}

func TestFormat(t *testing.T) {
	inner := errors.New("status 500")
	err := apperror.Wrap(inner, apperror.CodeFatal, apperror.BusinessCodePublishFailed, "post creation failed").
		WithDetails("response body here")

	verbose := fmt.Sprintf("%+v", err)
	assert.Contains(t, verbose, "FATAL")
	assert.Contains(t, verbose, "PUBLISH_FAILED")
	assert.Contains(t, verbose, "status 500")
	assert.Contains(t, verbose, "response body here")

	assert.Equal(t, "post creation failed", fmt.Sprintf("%s", err))
}
