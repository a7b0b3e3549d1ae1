package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveClientKey(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "platform header wins",
			headers:  map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2", "X-Real-IP": "3.3.3.3"},
			expected: "1.1.1.1",
		},
		{
			name:     "first forwarded for value",
			headers:  map[string]string{"X-Forwarded-For": " 2.2.2.2 , 4.4.4.4", "X-Real-IP": "3.3.3.3"},
			expected: "2.2.2.2",
		},
		{
			name:     "real ip fallback",
			headers:  map[string]string{"X-Real-IP": "3.3.3.3"},
			expected: "3.3.3.3",
		},
		{
			name:     "no headers",
			headers:  map[string]string{},
			expected: "unknown",
		},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/waitlist", nil)
		for name, value := range tt.headers {
			req.Header.Set(name, value)
		}
		require.EqualValues(tt.expected, resolveClientKey(req), tt.name)
	}
}
