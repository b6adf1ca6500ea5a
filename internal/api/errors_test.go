package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/foliohub/folio-api/internal/service"
	"github.com/foliohub/folio-api/internal/service/auth"
	"github.com/foliohub/folio-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "authentication error",
			err:            auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrInvalidToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid credentials",
			err:            service.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "disabled account",
			err:            service.ErrAccountDisabled,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "deleted account",
			err:            service.ErrAccountDeleted,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "post ownership error",
			err:            service.ErrPostNotOwned,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "duplicate profile",
			err:            store.ErrProfileExists,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "user not found",
			err:            store.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "wrapped entity not found",
			err:            fmt.Errorf("lookup failed: %w", store.ErrEducationNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "follow edge not found",
			err:            store.ErrFollowNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "conflict error",
			err:            store.ErrEmailExists,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "self follow",
			err:            domain.ErrSelfFollow,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate follow",
			err:            store.ErrFollowExists,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "validation error",
			err:            domain.NewValidationError("email", "has invalid format", domain.ErrInvalidEmail),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request error",
			err:            store.ErrInvalidEntity,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown error",
			err:            errors.New("unknown error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := MapErrorToStatusCode(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name:            "nil error",
			err:             nil,
			expectedMessage: "An unexpected error occurred",
		},
		{
			name:            "invalid credentials",
			err:             service.ErrInvalidCredentials,
			expectedMessage: "Invalid credentials",
		},
		{
			name:            "disabled account",
			err:             service.ErrAccountDisabled,
			expectedMessage: "Account is disabled",
		},
		{
			name:            "deleted account",
			err:             service.ErrAccountDeleted,
			expectedMessage: "Account is deleted",
		},
		{
			name:            "wrapped authentication error",
			err:             fmt.Errorf("failed due to: %w", auth.ErrInvalidToken),
			expectedMessage: "Invalid token",
		},
		{
			name:            "post not owned",
			err:             service.ErrPostNotOwned,
			expectedMessage: "You do not own this post",
		},
		{
			name:            "duplicate profile",
			err:             store.ErrProfileExists,
			expectedMessage: "Profile already exists",
		},
		{
			name:            "user not found",
			err:             store.ErrUserNotFound,
			expectedMessage: "User not found",
		},
		{
			name:            "self follow",
			err:             domain.ErrSelfFollow,
			expectedMessage: "You cannot follow yourself",
		},
		{
			name:            "unknown error hides details",
			err:             errors.New("database error: connection refused"),
			expectedMessage: "An unexpected error occurred",
		},
		{
			name: "wrapped database error hides SQL details",
			err: fmt.Errorf(
				"SQL error: %w",
				errors.New("syntax error at line 42 in SELECT * FROM users"),
			),
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expectedMessage, message)
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name: "field validation error with tag",
			err: errors.New(
				"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
			),
			expectedMessage: "Invalid Email: required field",
		},
		{
			name: "field validation error with email tag",
			err: errors.New(
				"Key: 'RegisterRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag",
			),
			expectedMessage: "Invalid Email: invalid email format",
		},
		{
			name: "field validation error with min tag",
			err: errors.New(
				"Key: 'RegisterRequest.Password' Error:Field validation for 'Password' failed on the 'min' tag",
			),
			expectedMessage: "Invalid Password: too short",
		},
		{
			name:            "generic error",
			err:             errors.New("some other error"),
			expectedMessage: "Validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := SanitizeValidationError(tt.err)
			assert.Equal(t, tt.expectedMessage, message)
		})
	}
}
