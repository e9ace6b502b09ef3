package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"catalog/internal/models"
)

type contextKey string

const (
	ActorKey     contextKey = "actor"
	RequestIDKey contextKey = "request_id"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// WithActor stores the authenticated actor on ctx.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActorFromContext extracts the authenticated actor from the request context
func GetActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(models.Actor)
	return actor, ok
}

// GetRequestIDFromContext returns the request id set by the request logger, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// ParseID validates a positive integer path parameter
func ParseID(idStr, fieldName string) (int64, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return 0, Invalid(fieldName, "is required")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid(fieldName, "must be a positive integer")
	}
	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(fieldName, "is required")
	}
	return nil
}

// ValidateOptionalString trims an optional string and enforces a rune limit
func ValidateOptionalString(value *string, fieldName string, maxLength int) error {
	if value != nil {
		*value = strings.TrimSpace(*value)
		if n := len([]rune(*value)); n > maxLength {
			return Invalid(fieldName, fmt.Sprintf("cannot exceed %d characters", maxLength))
		}
	}
	return nil
}
