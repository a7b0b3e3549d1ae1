package handler

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/json"
	"waitlist-service/domain"
	"waitlist-service/httperrors"
	"waitlist-service/request"
)

const (
	emailField = "email"

	invalidEmailMessage = "Please enter a valid email address"
)

type WaitlistService interface {
	Join(ctx context.Context, email domain.EmailAddress) (*domain.JoinResult, error)
}

type Waitlist struct {
	service WaitlistService
}

func NewWaitlist(service WaitlistService) Waitlist {
	return Waitlist{
		service: service,
	}
}

func (h Waitlist) Handle(ctx *request.Context) error {
	req := ctx.Request()
	err := req.ParseForm()
	if err != nil {
		return httperrors.New(
			http.StatusBadRequest,
			invalidEmailMessage,
			errors.WithMessage(err, "waitlist: parse form"),
		)
	}

	// the field must be present exactly once and non-empty, no coercion
	values := req.PostForm[emailField]
	if len(values) != 1 || values[0] == "" {
		return httperrors.New(
			http.StatusBadRequest,
			invalidEmailMessage,
			errors.Errorf("waitlist: expected a single non-empty email field, got %d values", len(values)),
		)
	}

	email, err := domain.NewEmailAddress(values[0])
	if err != nil {
		return httperrors.New(
			http.StatusBadRequest,
			invalidEmailMessage,
			errors.WithMessage(err, "waitlist: validate email"),
		)
	}

	_, err = h.service.Join(ctx.Context(), email)
	rejected := domain.ProfileRejectedError{}
	switch {
	case errors.Is(err, domain.ErrWaitlistNotConfigured):
		return httperrors.New(
			http.StatusInternalServerError,
			"Waitlist is temporarily unavailable",
			err,
		)
	case errors.As(err, &rejected):
		return httperrors.New(
			http.StatusInternalServerError,
			"Failed to join waitlist. Please try again.",
			err,
		)
	case err != nil:
		return errors.WithMessage(err, "waitlist: join")
	}

	writer := ctx.ResponseWriter()
	writer.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(writer).Encode(domain.JoinWaitlistResponse{
		Success: true,
		Message: "You're on the list!",
	})
}
