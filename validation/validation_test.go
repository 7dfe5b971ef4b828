package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-arch1tect/taskbox/apperr"
)

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Equal(t, field, appErr.Field)
	assert.Equal(t, 422, appErr.Status)
}

func TestEmail(t *testing.T) {
	t.Run("valid addresses", func(t *testing.T) {
		for _, email := range []string{
			"user@example.com",
			"first.last@sub.example.co.uk",
			"user+tag@example.com",
		} {
			assert.NoError(t, Email(email), email)
		}
	})

	t.Run("invalid addresses", func(t *testing.T) {
		for _, email := range []string{
			"",
			"not-an-email",
			"@example.com",
			"user@",
			"Display Name <user@example.com>",
			"user@example.com ",
		} {
			err := Email(email)
			require.Error(t, err, "%q should be rejected", email)
			assertValidationError(t, err, "email")
		}
	})
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("12345678"))
	assert.NoError(t, Password("a much longer passphrase"))

	err := Password("short")
	assertValidationError(t, err, "password")

	err = Password("")
	assertValidationError(t, err, "password")
}

func TestUsername(t *testing.T) {
	t.Run("valid usernames", func(t *testing.T) {
		for _, username := range []string{"a", "alice", "user_1", "ABCD1234"} {
			assert.NoError(t, Username(username), username)
		}
	})

	t.Run("invalid usernames", func(t *testing.T) {
		for _, username := range []string{
			"",
			"toolongname",
			"has space",
			"bad-char",
			"émile",
		} {
			err := Username(username)
			require.Error(t, err, "%q should be rejected", username)
			assertValidationError(t, err, "username")
		}
	})
}

func TestUUID(t *testing.T) {
	assert.NoError(t, UUID("123e4567-e89b-12d3-a456-426614174000"))

	err := UUID("not-a-uuid")
	assertValidationError(t, err, "id")

	err = UUID("")
	assertValidationError(t, err, "id")
}

func TestTaskTitle(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		title, err := TaskTitle("  buy milk  ")

		require.NoError(t, err)
		assert.Equal(t, "buy milk", title)
	})

	t.Run("empty or whitespace-only rejected", func(t *testing.T) {
		_, err := TaskTitle("")
		assertValidationError(t, err, "title")

		_, err = TaskTitle("   \t  ")
		assertValidationError(t, err, "title")
	})

	t.Run("limit counts runes, not bytes", func(t *testing.T) {
		title, err := TaskTitle(strings.Repeat("é", TitleMaxLength))
		require.NoError(t, err)
		assert.Equal(t, TitleMaxLength, len([]rune(title)))

		_, err = TaskTitle(strings.Repeat("a", TitleMaxLength+1))
		assertValidationError(t, err, "title")
	})
}
