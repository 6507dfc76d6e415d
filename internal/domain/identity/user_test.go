package identity

import (
	"strings"
	"testing"

	"github.com/greenauction/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates buyer with hashed password", func(t *testing.T) {
		user, err := NewUser("Alice", "Alice@Example.com", "password123", false)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.False(t, user.IsSeller)
		assert.False(t, user.IsApproved)
		assert.False(t, user.IsStaff)
		assert.Equal(t, 1, user.GetVersion())
		assert.True(t, user.VerifyPassword("password123"))
		assert.False(t, user.VerifyPassword("wrong-password1"))
	})

	t.Run("creates unapproved seller", func(t *testing.T) {
		user, err := NewUser("farmer", "farmer@example.com", "password123", true)
		require.NoError(t, err)
		assert.True(t, user.IsSeller)
		assert.False(t, user.CanManageProducts())
	})

	t.Run("publishes UserRegistered event", func(t *testing.T) {
		user, err := NewUser("bob", "bob@example.com", "password123", true)
		require.NoError(t, err)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*UserRegisteredEvent)
		require.True(t, ok)
		assert.Equal(t, user.ID, event.UserID)
		assert.True(t, event.IsSeller)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := []struct {
			name     string
			username string
			email    string
			password string
			msg      string
		}{
			{"short username", "ab", "ab@example.com", "password123", "at least 3"},
			{"long username", strings.Repeat("a", 151), "a@example.com", "password123", "cannot exceed 150"},
			{"bad username chars", "bad name", "b@example.com", "password123", "can only contain"},
			{"bad email", "carol", "not-an-email", "password123", "Invalid email"},
			{"short password", "carol", "carol@example.com", "abc1", "at least 8"},
			{"password without digit", "carol", "carol@example.com", "password", "letter and one number"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewUser(tc.username, tc.email, tc.password, false)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.msg)
			})
		}
	})
}

func TestUser_Approve(t *testing.T) {
	t.Run("approves seller", func(t *testing.T) {
		user, err := NewUser("farmer", "farmer@example.com", "password123", true)
		require.NoError(t, err)
		user.ClearDomainEvents()

		require.NoError(t, user.Approve())
		assert.True(t, user.IsApproved)
		assert.True(t, user.CanManageProducts())
		assert.Equal(t, 2, user.GetVersion())
		require.Len(t, user.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeSellerApproved, user.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects buyer", func(t *testing.T) {
		user, err := NewUser("buyer", "buyer@example.com", "password123", false)
		require.NoError(t, err)
		assert.ErrorIs(t, user.Approve(), shared.ErrSellerRequired)
	})

	t.Run("rejects double approval", func(t *testing.T) {
		user, err := NewUser("farmer", "farmer@example.com", "password123", true)
		require.NoError(t, err)
		require.NoError(t, user.Approve())

		err = user.Approve()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_APPROVED", domainErr.Code)
	})
}

func TestUser_SubmitBusinessLicense(t *testing.T) {
	t.Run("stores license key for seller", func(t *testing.T) {
		user, err := NewUser("farmer", "farmer@example.com", "password123", true)
		require.NoError(t, err)

		require.NoError(t, user.SubmitBusinessLicense("licenses/abc/license.pdf"))
		assert.True(t, user.HasBusinessLicense())
		assert.Equal(t, "licenses/abc/license.pdf", user.BusinessLicense)
	})

	t.Run("rejects buyer", func(t *testing.T) {
		user, err := NewUser("buyer", "buyer@example.com", "password123", false)
		require.NoError(t, err)
		assert.ErrorIs(t, user.SubmitBusinessLicense("licenses/x.pdf"), shared.ErrSellerRequired)
		assert.False(t, user.HasBusinessLicense())
	})

	t.Run("rejects empty key", func(t *testing.T) {
		user, err := NewUser("farmer", "farmer@example.com", "password123", true)
		require.NoError(t, err)
		assert.Error(t, user.SubmitBusinessLicense("  "))
	})
}
