package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestDecodeAndValidate_ValidPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth",
		strings.NewReader(`{"username":"admin","password":"long-enough"}`))

	var payload samplePayload
	require.NoError(t, DecodeAndValidate(req, &payload))
	assert.Equal(t, "admin", payload.Username)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"username":`))

	var payload samplePayload
	err := DecodeAndValidate(req, &payload)
	require.Error(t, err)

	// Decode failures are not field validation errors
	assert.Empty(t, FormatValidationErrors(err))
}

func TestDecodeAndValidate_FieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth",
		strings.NewReader(`{"username":"","password":"short"}`))

	var payload samplePayload
	err := DecodeAndValidate(req, &payload)
	require.Error(t, err)

	fieldErrors := FormatValidationErrors(err)
	require.Len(t, fieldErrors, 2)

	byField := map[string]string{}
	for _, fe := range fieldErrors {
		byField[fe.Field] = fe.Message
	}
	assert.Equal(t, "This field is required", byField["Username"])
	assert.Equal(t, "Value is too short", byField["Password"])
}
