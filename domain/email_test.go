package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"waitlist-service/domain"
)

func TestNewEmailAddress(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	email, err := domain.NewEmailAddress("a@b.co")
	require.NoError(err)
	require.EqualValues("a@b.co", email.String())

	email, err = domain.NewEmailAddress("  USER@Example.COM ")
	require.NoError(err)
	require.EqualValues("user@example.com", email.String())
}

func TestNewEmailAddressInvalid(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	invalid := []string{
		"",
		"not-an-email",
		"missing@dot",
		"two words@example.com",
		"user@@example.com",
		strings.Repeat("a", 255) + "@example.com",
	}
	for _, value := range invalid {
		_, err := domain.NewEmailAddress(value)
		require.ErrorIs(err, domain.ErrInvalidEmail, value)
	}
}

func TestNewEmailAddressTruncation(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	// 266 characters, still matches the pattern after the 254 character cut
	long := strings.Repeat("a", 240) + "@ex.co" + strings.Repeat("m", 20)
	email, err := domain.NewEmailAddress(long)
	require.NoError(err)
	require.EqualValues(254, len(email.String()))
}
