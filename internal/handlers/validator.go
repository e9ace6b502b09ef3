package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator plugs go-playground/validator into echo's Context.Validate.
type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
