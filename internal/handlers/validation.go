package handlers

import (
	"errors"
	"fmt"
	"strings"

	"wtwr/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// checkStruct validates a request body and converts validator failures into
// one BadRequest whose message joins every failing field.
func checkStruct(validate *validator.Validate, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.NewBadRequest("Invalid data.")
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fieldMessage(e))
	}
	return apperrors.NewBadRequest(strings.Join(messages, ", "))
}

// fieldMessage renders a single rule violation the way the store's schema
// messages read.
func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required", e.Field())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("The %s field must be at most %s characters", e.Field(), e.Param())
	case "email":
		return "Please provide a valid email address"
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL", e.Field())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s", e.Field(), strings.Join(strings.Fields(e.Param()), ", "))
	default:
		return fmt.Sprintf("The %s field is invalid", e.Field())
	}
}

// parseItemID rejects syntactically invalid item IDs before they reach the
// store, so a malformed ID is a 400 and never a store-level failure.
func parseItemID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewBadRequest("Invalid item ID.")
	}
	return id.String(), nil
}
