package common

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError. The string values double as the error code in HTTP responses.
type Kind string

const (
	KindForbidden        Kind = "FORBIDDEN"
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
	KindCategoryNotFound Kind = "CATEGORY_NOT_FOUND"
	KindBusy             Kind = "BUSY"
	KindInvalid          Kind = "INVALID"
)

// Sentinels for errors.Is. A CategoryNotFound error matches both ErrCategoryNotFound and ErrNotFound.
var (
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBusy             = errors.New("busy")
	ErrInvalid          = errors.New("invalid")
)

// AppError is the typed failure returned by the catalog core.
type AppError struct {
	Kind   Kind
	Entity string
	Key    string
	Field  string
	Reason string
	Err    error
}

func (e *AppError) Error() string {
	switch e.Kind {
	case KindForbidden:
		return fmt.Sprintf("forbidden: %s", e.Reason)
	case KindNotFound, KindCategoryNotFound:
		return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
	case KindConflict:
		return fmt.Sprintf("%s already exists", e.Field)
	case KindBusy:
		if e.Err != nil {
			return fmt.Sprintf("resource busy, retry later: %v", e.Err)
		}
		return "resource busy, retry later"
	case KindInvalid:
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Is(target error) bool {
	switch target {
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrNotFound:
		return e.Kind == KindNotFound || e.Kind == KindCategoryNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrCategoryNotFound:
		return e.Kind == KindCategoryNotFound
	case ErrBusy:
		return e.Kind == KindBusy
	case ErrInvalid:
		return e.Kind == KindInvalid
	}
	return false
}

func Forbidden(reason string) *AppError {
	return &AppError{Kind: KindForbidden, Reason: reason}
}

func NotFound(entity string, key any) *AppError {
	return &AppError{Kind: KindNotFound, Entity: entity, Key: fmt.Sprint(key)}
}

func Conflict(field string) *AppError {
	return &AppError{Kind: KindConflict, Field: field}
}

func CategoryNotFound(id int64) *AppError {
	return &AppError{Kind: KindCategoryNotFound, Entity: "category", Key: fmt.Sprint(id)}
}

// Busy wraps a contention failure on a locked row. Callers may retry with backoff.
func Busy(err error) *AppError {
	return &AppError{Kind: KindBusy, Err: err}
}

func Invalid(field, reason string) *AppError {
	return &AppError{Kind: KindInvalid, Field: field, Reason: reason}
}

// AsAppError extracts the AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsRetryable reports whether err is a transient contention failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBusy)
}
