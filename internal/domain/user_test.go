package domain_test

import (
	"testing"

	"github.com/foliohub/folio-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		user, err := domain.NewUser("a@x.com", "secret1")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "a@x.com", user.Email)
		assert.Equal(t, domain.RoleStandard, user.Role)
		assert.True(t, user.IsActive)
		assert.Nil(t, user.DeletedAt)
	})

	t.Run("normalizes email", func(t *testing.T) {
		user, err := domain.NewUser("  Alice@Example.COM ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"empty email", "", "secret1", domain.ErrEmptyEmail},
		{"missing at sign", "ax.com", "secret1", domain.ErrInvalidEmail},
		{"missing domain dot", "a@xcom", "secret1", domain.ErrInvalidEmail},
		{"trailing at sign", "a@", "secret1", domain.ErrInvalidEmail},
		{"short password", "a@x.com", "pw", domain.ErrPasswordTooShort},
		{"empty password", "a@x.com", "", domain.ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewUser(tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidateHashedOnly(t *testing.T) {
	// A row loaded from the database has no plaintext password.
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "a@x.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Role:           domain.RoleAdmin,
		IsActive:       true,
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}
