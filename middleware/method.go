package middleware

import (
	"net/http"

	"github.com/pkg/errors"
	"waitlist-service/httperrors"
	"waitlist-service/request"
)

// MethodCheck rejects everything but the given method before any
// rate limit or validation work happens.
func MethodCheck(method string) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			if ctx.Request().Method != method {
				return httperrors.New(
					http.StatusMethodNotAllowed,
					"Method not allowed",
					errors.Errorf("method check: %s is not allowed on %s", ctx.Request().Method, ctx.Endpoint()),
				)
			}

			return next.Handle(ctx)
		})
	}
}
