package middleware

import (
	"net/http"
	"strings"

	"waitlist-service/request"
)

const (
	cfConnectingIpHeader = "CF-Connecting-IP"
	xForwardedForHeader  = "X-Forwarded-For"
	xRealIpHeader        = "X-Real-IP"

	unknownClientKey = "unknown"
)

// ClientKey resolves the identifier used to bucket rate limit state.
// Priority: the platform forwarded-IP header, then the first value of
// X-Forwarded-For, then X-Real-IP, else "unknown".
func ClientKey() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			ctx.SetClientKey(resolveClientKey(ctx.Request()))
			return next.Handle(ctx)
		})
	}
}

func resolveClientKey(req *http.Request) string {
	value := strings.TrimSpace(req.Header.Get(cfConnectingIpHeader))
	if value != "" {
		return value
	}

	forwardedFor := req.Header.Get(xForwardedForHeader)
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		first = strings.TrimSpace(first)
		if first != "" {
			return first
		}
	}

	value = strings.TrimSpace(req.Header.Get(xRealIpHeader))
	if value != "" {
		return value
	}

	return unknownClientKey
}
