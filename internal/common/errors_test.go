package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		matches []error
		misses  []error
	}{
		{"forbidden", Forbidden("role_mismatch"), []error{ErrForbidden}, []error{ErrNotFound, ErrBusy}},
		{"not found", NotFound("product", "phone"), []error{ErrNotFound}, []error{ErrCategoryNotFound}},
		{"category not found", CategoryNotFound(3), []error{ErrCategoryNotFound, ErrNotFound}, []error{ErrConflict}},
		{"conflict", Conflict("slug"), []error{ErrConflict}, []error{ErrInvalid}},
		{"busy", Busy(errors.New("lock timeout")), []error{ErrBusy}, []error{ErrForbidden}},
		{"invalid", Invalid("grade", "out of range"), []error{ErrInvalid}, []error{ErrNotFound}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service: %w", tt.err)
			for _, target := range tt.matches {
				assert.True(t, errors.Is(wrapped, target), "expected match with %v", target)
			}
			for _, target := range tt.misses {
				assert.False(t, errors.Is(wrapped, target), "unexpected match with %v", target)
			}
		})
	}
}

func TestAppError_Messages(t *testing.T) {
	assert.Equal(t, "forbidden: role_mismatch", Forbidden("role_mismatch").Error())
	assert.Equal(t, "product phone not found", NotFound("product", "phone").Error())
	assert.Equal(t, "category 3 not found", CategoryNotFound(3).Error())
	assert.Equal(t, "slug already exists", Conflict("slug").Error())
	assert.Equal(t, "invalid grade: out of range", Invalid("grade", "out of range").Error())
	assert.Equal(t, "resource busy, retry later", Busy(nil).Error())
}

func TestBusy_UnwrapsCause(t *testing.T) {
	cause := errors.New("lock timeout")
	err := Busy(cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRetryable(fmt.Errorf("tx: %w", err)))
	assert.False(t, IsRetryable(cause))
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", Conflict("username")))
	assert.True(t, ok)
	assert.Equal(t, KindConflict, appErr.Kind)
	assert.Equal(t, "username", appErr.Field)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
