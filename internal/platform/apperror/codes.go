package apperror

import "errors"

// ErrorCode is the general system-level error category.
// The pipeline's retry policy keys off this: TRANSIENT reverts the event to
// pending, QUOTA_EXHAUSTED stops the batch, VALIDATION_FAILED is terminal for
// the event, FATAL is surfaced to the operator.
type ErrorCode string

const (
	CodeTransient        ErrorCode = "TRANSIENT"
	CodeQuotaExhausted   ErrorCode = "QUOTA_EXHAUSTED"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeFatal            ErrorCode = "FATAL"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// BusinessCode identifies the specific business reason for an error.
type BusinessCode string

const (
	BusinessCodeGeneral           BusinessCode = "GENERAL"
	BusinessCodeEventNotFound     BusinessCode = "EVENT_NOT_FOUND"
	BusinessCodeImageRenderFailed BusinessCode = "IMAGE_RENDER_FAILED"
	BusinessCodeGenerationFailed  BusinessCode = "GENERATION_FAILED"
	BusinessCodeTokenBudget       BusinessCode = "TOKEN_BUDGET_EXCEEDED"
	BusinessCodeIncompleteContent BusinessCode = "INCOMPLETE_CONTENT"
	BusinessCodeInvalidSlug       BusinessCode = "INVALID_SLUG"
	BusinessCodeMediaUploadFailed BusinessCode = "MEDIA_UPLOAD_FAILED"
	BusinessCodePublishFailed     BusinessCode = "PUBLISH_FAILED"
	BusinessCodeInvalidStatus     BusinessCode = "INVALID_STATUS_TRANSITION"
)

// IsRetryable reports whether err (or any error it wraps) is a transient
// condition that should revert the event to pending for a later run.
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == CodeTransient
	}
	return false
}

// IsQuotaExhausted reports whether err is the batch-level stop condition.
func IsQuotaExhausted(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == CodeQuotaExhausted
	}
	return false
}

// IsValidationFailure reports whether err marks the event terminally failed.
func IsValidationFailure(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == CodeValidationFailed
	}
	return false
}
