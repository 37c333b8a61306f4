package handlers

import (
	"net/http"
	"testing"

	"wtwr/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestCheckStruct_AggregatesFieldMessages(t *testing.T) {
	validate := validator.New()

	err := checkStruct(validate, SignupRequest{
		Name:   "J",
		Avatar: "not-a-url",
	})
	assert.Error(t, err)
	appErr := apperrors.From(err)
	assert.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)

	// One joined message covering every failing field.
	assert.Contains(t, appErr.Message, "Name")
	assert.Contains(t, appErr.Message, "Avatar")
	assert.Contains(t, appErr.Message, "Email")
	assert.Contains(t, appErr.Message, "Password")
	assert.Contains(t, appErr.Message, ", ")
}

func TestCheckStruct_EnumMessageListsValues(t *testing.T) {
	validate := validator.New()

	err := checkStruct(validate, CreateItemRequest{
		Name:     "Parka",
		Weather:  "freezing",
		ImageURL: "https://example.com/parka.png",
	})
	assert.Error(t, err)
	appErr := apperrors.From(err)
	assert.NotNil(t, appErr)
	assert.Equal(t, "The Weather field must be one of: hot, warm, cold", appErr.Message)
}

func TestCheckStruct_Valid(t *testing.T) {
	validate := validator.New()

	err := checkStruct(validate, CreateItemRequest{
		Name:     "Parka",
		Weather:  "cold",
		ImageURL: "https://example.com/parka.png",
	})
	assert.NoError(t, err)
}

func TestParseItemID(t *testing.T) {
	id, err := parseItemID("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id)

	for _, raw := range []string{"", "123", "not-a-uuid", "6ba7b810-9dad-11d1-80b4"} {
		_, err := parseItemID(raw)
		assert.Error(t, err, "raw=%q", raw)
		appErr := apperrors.From(err)
		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, "Invalid item ID.", appErr.Message)
	}
}
