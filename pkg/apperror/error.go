package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. HTTP status codes are derived from it at the
// delivery boundary only.
type Kind string

const (
	KindUnauthorized          Kind = "unauthorized"
	KindForbidden             Kind = "forbidden"
	KindValidation            Kind = "validation"
	KindEmptyFile             Kind = "empty_file"
	KindFileTooLarge          Kind = "file_too_large"
	KindInvalidFileType       Kind = "invalid_file_type"
	KindInvalidPath           Kind = "invalid_path"
	KindNotFound              Kind = "not_found"
	KindNoResumeFound         Kind = "no_resume_found"
	KindNoProfilePictureFound Kind = "no_profile_picture_found"
	KindStorage               Kind = "storage_error"
	KindEmailInUse            Kind = "email_in_use"
	KindSkillNotFound         Kind = "skill_not_found"
	KindUserNotFound          Kind = "user_not_found"
	KindInvalidCredentials    Kind = "invalid_credentials"
	KindRateLimited           Kind = "rate_limited"
	KindUnavailable           Kind = "service_unavailable"
	KindInternal              Kind = "internal"
)

type AppError struct {
	Kind    Kind              `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches a diagnostic key/value echoed back to the client
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func BadRequest(message string) *AppError {
	return New(KindValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message, nil)
}

func Storage(message string, err error) *AppError {
	return New(KindStorage, message, err)
}

func Internal(err error) *AppError {
	return New(KindInternal, "Internal Server Error", err)
}
