package domain

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const maxEmailLength = 254

var (
	ErrInvalidEmail = errors.New("invalid email address")

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type EmailAddress string

// NewEmailAddress normalizes raw input (trim, lower-case, truncate to 254
// characters) and validates the result. Truncation happens before validation,
// so an over-long address usually fails the pattern instead of being
// rejected for length alone.
func NewEmailAddress(raw string) (EmailAddress, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if len(email) > maxEmailLength {
		email = email[:maxEmailLength]
	}
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return EmailAddress(email), nil
}

func (e EmailAddress) String() string {
	return string(e)
}
