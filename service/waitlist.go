package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"
	"waitlist-service/conf"
	"waitlist-service/domain"
)

const redactedBody = "[redacted]"

type SubscriptionRepo interface {
	CreateProfile(ctx context.Context, email string, signedUpAt time.Time) (*domain.ProfileResult, error)
	AddToList(ctx context.Context, listId string, profileId string) error
}

type Waitlist struct {
	repo    SubscriptionRepo
	apiKey  string
	listId  string
	devMode bool
	logger  log.Logger
}

func NewWaitlist(repo SubscriptionRepo, config conf.Klaviyo, devMode bool, logger log.Logger) Waitlist {
	return Waitlist{
		repo:    repo,
		apiKey:  config.ApiKey,
		listId:  config.ListId,
		devMode: devMode,
		logger:  logger,
	}
}

// Join ensures a profile exists for the email and attaches it to the
// configured list. A pre-existing profile is a success for the caller.
// Failure of the list attachment is logged and swallowed: the profile
// already exists, which is the primary success criterion.
func (s Waitlist) Join(ctx context.Context, email domain.EmailAddress) (*domain.JoinResult, error) {
	if s.apiKey == "" || s.listId == "" {
		return nil, domain.ErrWaitlistNotConfigured
	}

	result, err := s.repo.CreateProfile(ctx, email.String(), time.Now())
	if err != nil {
		rejected := domain.ProfileRejectedError{}
		if errors.As(err, &rejected) {
			body := redactedBody
			if s.devMode {
				body = rejected.Body
			}
			s.logger.Error(ctx, "failed to create profile",
				log.Int("statusCode", rejected.StatusCode),
				log.String("response", body),
			)
		}
		return nil, errors.WithMessage(err, "create profile")
	}

	if result.Id != "" {
		err := s.repo.AddToList(ctx, s.listId, result.Id)
		if err != nil {
			s.logger.Warn(ctx, "could not add profile to list",
				log.String("profileId", result.Id),
				log.String("error", err.Error()),
			)
		}
	}

	return &domain.JoinResult{
		ProfileId: result.Id,
		Outcome:   result.Outcome,
	}, nil
}
