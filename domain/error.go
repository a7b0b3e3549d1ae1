package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrWaitlistNotConfigured = errors.New("waitlist is not configured")
)

// ProfileRejectedError is returned when the create profile call ends with a
// status other than 201 or 409. Error() exposes the status only; the response
// body is logged separately so it can be redacted outside of dev mode.
type ProfileRejectedError struct {
	StatusCode int
	Body       string
}

func (e ProfileRejectedError) Error() string {
	return fmt.Sprintf("create profile rejected with status %d", e.StatusCode)
}
