package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ada/backend/internal/models"
	"github.com/pageza/ada/backend/internal/storage"
)

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("should store a hashed password", func(t *testing.T) {
		env := newTestEnv(t)

		account, err := env.accounts.Register(ctx, "  Ayşe ", "a@x.com", "p1")
		require.NoError(t, err)
		assert.Equal(t, "Ayşe", account.Name)
		assert.NotEqual(t, "p1", account.PasswordHash)

		var stored []models.Account
		found, err := env.store.Get(ctx, storage.UsersKey, &stored)
		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, stored, 1)
		assert.Equal(t, account.PasswordHash, stored[0].PasswordHash)
	})

	t.Run("should reject a duplicate email without touching the account", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Register(ctx, "Ayşe", "a@x.com", "p1")
		require.NoError(t, err)

		_, err = env.accounts.Register(ctx, "Başka", "a@x.com", "p2")
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		_, err = env.accounts.Authenticate(ctx, "a@x.com", "p1")
		assert.NoError(t, err)
		_, err = env.accounts.Authenticate(ctx, "a@x.com", "p2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("should treat emails case-sensitively", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Register(ctx, "Ayşe", "a@x.com", "p1")
		require.NoError(t, err)
		_, err = env.accounts.Register(ctx, "Ayşe", "A@x.com", "p1")
		assert.NoError(t, err)
	})

	t.Run("should match the email exactly as registered", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Register(ctx, "Ayşe", " a@x.com", "p1")
		require.NoError(t, err)

		_, err = env.accounts.Authenticate(ctx, " a@x.com", "p1")
		assert.NoError(t, err)
		_, err = env.accounts.Authenticate(ctx, "a@x.com", "p1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("should require every field", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.accounts.Register(ctx, " ", "a@x.com", "p1")
		assert.ErrorIs(t, err, ErrMissingFields)
		_, err = env.accounts.Register(ctx, "Ayşe", "", "p1")
		assert.ErrorIs(t, err, ErrMissingFields)
		_, err = env.accounts.Register(ctx, "Ayşe", "  ", "p1")
		assert.ErrorIs(t, err, ErrMissingFields)
		_, err = env.accounts.Register(ctx, "Ayşe", "a@x.com", "")
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("should surface a corrupt account list", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.SetRaw(storage.UsersKey, []byte("[{"))

		_, err := env.accounts.Register(ctx, "Ayşe", "a@x.com", "p1")
		assert.ErrorIs(t, err, storage.ErrCorruptRecord)
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	registered, err := env.accounts.Register(ctx, "Ayşe", "a@x.com", "p1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "matching credentials", email: "a@x.com", password: "p1"},
		{name: "wrong password", email: "a@x.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "b@x.com", password: "p1", wantErr: ErrInvalidCredentials},
		{name: "email differs in case", email: "A@x.com", password: "p1", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := env.accounts.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, account)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.Email, account.Email)
			assert.Equal(t, registered.Name, account.Name)
		})
	}
}
