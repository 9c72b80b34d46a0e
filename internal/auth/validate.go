package auth

import (
	"errors"
	"regexp"
	"strings"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateUsername checks the allowed username alphabet and length.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if len(username) > 50 {
		return errors.New("username must be 50 characters or fewer")
	}
	if !usernamePattern.MatchString(username) {
		return errors.New("username may only contain letters, digits, underscore, dot and hyphen")
	}
	return nil
}

// NormalizeEmail trims and lowercases an address and checks its shape.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.New("email is required")
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return "", errors.New("invalid email address")
	}
	return email, nil
}

// ValidatePassword enforces bcrypt's input bounds.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password is required")
	}
	if len(password) > 72 {
		return errors.New("password must be 72 bytes or fewer")
	}
	return nil
}
