package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tech-arch1tect/taskbox/apperr"
)

const (
	PasswordMinLength = 8
	UsernameMaxLength = 8
	TitleMaxLength    = 100
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func Email(email string) error {
	if email == "" {
		return apperr.Validation("Email is required", "email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperr.Validation("Invalid email address", "email")
	}
	return nil
}

func Password(password string) error {
	if len(password) < PasswordMinLength {
		return apperr.Validation("Password must be at least 8 characters long", "password")
	}
	return nil
}

func Username(username string) error {
	if username == "" {
		return apperr.Validation("Username is required", "username")
	}
	if len(username) > UsernameMaxLength {
		return apperr.Validation("Username must be 8 characters or less", "username")
	}
	if !usernamePattern.MatchString(username) {
		return apperr.Validation("Username can only contain letters, numbers, and underscores", "username")
	}
	return nil
}

func UUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Validation("Invalid ID format", "id")
	}
	return nil
}

// TaskTitle trims the title and validates the trimmed form; the trimmed
// value is what gets stored.
func TaskTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", apperr.Validation("Title is required", "title")
	}
	if utf8.RuneCountInString(trimmed) > TitleMaxLength {
		return "", apperr.Validation("Title must be 100 characters or less", "title")
	}
	return trimmed, nil
}
