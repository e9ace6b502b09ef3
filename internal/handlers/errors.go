package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"catalog/internal/common"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// busyRetryAfterSeconds is sent in Retry-After for contention failures.
const busyRetryAfterSeconds = 1

var kindStatus = map[common.Kind]int{
	common.KindForbidden:        http.StatusForbidden,
	common.KindNotFound:         http.StatusNotFound,
	common.KindCategoryNotFound: http.StatusNotFound,
	common.KindConflict:         http.StatusConflict,
	common.KindInvalid:          http.StatusBadRequest,
	common.KindBusy:             http.StatusServiceUnavailable,
}

// NewHTTPErrorHandler renders every handler error in the standard error envelope.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
			logger.Error("unhandled error",
				zap.String("request_id", common.GetRequestIDFromContext(c.Request().Context())),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err))
		}
		if status == http.StatusServiceUnavailable {
			c.Response().Header().Set("Retry-After", strconv.Itoa(busyRetryAfterSeconds))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("writing error response failed", zap.Error(writeErr))
		}
	}
}

func errorResponse(err error) (int, *common.ErrorResponse) {
	if appErr, ok := common.AsAppError(err); ok {
		status, known := kindStatus[appErr.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		var details map[string]string
		switch appErr.Kind {
		case common.KindConflict:
			details = map[string]string{"field": appErr.Field}
		case common.KindInvalid:
			details = map[string]string{appErr.Field: appErr.Reason}
		case common.KindNotFound, common.KindCategoryNotFound:
			details = map[string]string{"entity": appErr.Entity, "key": appErr.Key}
		case common.KindForbidden:
			details = map[string]string{"reason": appErr.Reason}
		}
		return status, common.CreateErrorResponse(string(appErr.Kind), appErr.Error(), details)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			details[fe.Field()] = "failed on " + fe.Tag()
		}
		return http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details)
	}

	if errors.Is(err, services.ErrInvalidCredentials) {
		return http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", err.Error(), nil)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
		return httpErr.Code, common.CreateErrorResponse(codeForStatus(httpErr.Code), msg, nil)
	}

	return http.StatusInternalServerError, common.CreateErrorResponse("INTERNAL_ERROR", "Internal server error", nil)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return string(common.KindForbidden)
	case http.StatusNotFound:
		return string(common.KindNotFound)
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	}
	return "INTERNAL_ERROR"
}
