package middleware

import (
	"net/http"

	"github.com/txix-open/isp-kit/log"
	"waitlist-service/httperrors"
	"waitlist-service/request"
)

type HttpError interface {
	WriteError(w http.ResponseWriter) error
}

// ErrorHandler converts errors into the uniform {"error": ...} response.
// Errors without an HTTP mapping become a generic 500; internal detail goes
// to the log only and never reaches the caller.
func ErrorHandler(logger log.Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			err := next.Handle(ctx)
			if err == nil {
				return nil
			}

			logger.Error(ctx.Context(), err)

			httpErr, ok := err.(HttpError)
			if ok {
				return httpErr.WriteError(ctx.ResponseWriter())
			}

			return httperrors.
				New(http.StatusInternalServerError, "Something went wrong. Please try again.", err).
				WriteError(ctx.ResponseWriter())
		})
	}
}
