package validation

import (
	"testing"

	"food-ordering-api/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type basket struct {
	Items []string `json:"items" validate:"required,min=1"`
	Count int      `json:"count" validate:"gte=0"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(signup{Name: "Ann", Email: "a@x.com", Password: "secret1"}))
}

func TestStruct_NamesFirstMissingField(t *testing.T) {
	err := Struct(signup{Password: "x"})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "name", ve.Field)
	assert.Equal(t, "name is required", ve.Message)
}

func TestStruct_MinLength(t *testing.T) {
	err := Struct(signup{Name: "Ann", Email: "a@x.com", Password: "12345"})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "password", ve.Field)
	assert.Equal(t, "password must be at least 6 characters long", ve.Message)
}

func TestStruct_EmptySlice(t *testing.T) {
	err := Struct(basket{Items: []string{}})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "items", ve.Field)
	assert.Contains(t, ve.Message, "at least 1")
}

func TestStruct_NilSlice(t *testing.T) {
	err := Struct(basket{})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "items is required", ve.Message)
}

func TestStruct_Gte(t *testing.T) {
	err := Struct(basket{Items: []string{"a"}, Count: -1})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "count must be at least 0", ve.Message)
}

func TestStructMessages_Overrides(t *testing.T) {
	messages := map[string]string{
		"name":         "All fields are required",
		"password.min": "Password must be at least 6 characters long",
	}

	ve, ok := apperrors.IsValidationError(StructMessages(signup{}, messages))
	require.True(t, ok)
	assert.Equal(t, "All fields are required", ve.Message)

	ve, ok = apperrors.IsValidationError(StructMessages(signup{Name: "Ann", Email: "a@x.com", Password: "123"}, messages))
	require.True(t, ok)
	assert.Equal(t, "Password must be at least 6 characters long", ve.Message)

	ve, ok = apperrors.IsValidationError(StructMessages(signup{Name: "Ann"}, messages))
	require.True(t, ok)
	assert.Equal(t, "email is required", ve.Message)
}
