package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/test"
	"waitlist-service/conf"
	"waitlist-service/domain"
	"waitlist-service/service"
)

type subscriptionRepoMock struct {
	createResult *domain.ProfileResult
	createErr    error
	listErr      error

	createCalls   int
	listCalls     int
	lastListId    string
	lastProfileId string
}

func (m *subscriptionRepoMock) CreateProfile(ctx context.Context, email string, signedUpAt time.Time) (*domain.ProfileResult, error) {
	m.createCalls++
	return m.createResult, m.createErr
}

func (m *subscriptionRepoMock) AddToList(ctx context.Context, listId string, profileId string) error {
	m.listCalls++
	m.lastListId = listId
	m.lastProfileId = profileId
	return m.listErr
}

func validEmail(t *testing.T) domain.EmailAddress {
	email, err := domain.NewEmailAddress("user@example.com")
	if err != nil {
		t.Fatal(err)
	}
	return email
}

func TestJoinNotConfigured(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := &subscriptionRepoMock{}
	waitlist := service.NewWaitlist(repo, conf.Klaviyo{}, false, test.Logger())

	_, err := waitlist.Join(context.Background(), validEmail(t))
	require.ErrorIs(err, domain.ErrWaitlistNotConfigured)
	require.EqualValues(0, repo.createCalls)
	require.EqualValues(0, repo.listCalls)
}

func TestJoinCreated(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := &subscriptionRepoMock{
		createResult: &domain.ProfileResult{Id: "p1", Outcome: domain.OutcomeCreated},
	}
	config := conf.Klaviyo{ApiKey: "key", ListId: "L1"}
	waitlist := service.NewWaitlist(repo, config, false, test.Logger())

	result, err := waitlist.Join(context.Background(), validEmail(t))
	require.NoError(err)
	require.EqualValues(domain.OutcomeCreated, result.Outcome)
	require.EqualValues(1, repo.createCalls)
	require.EqualValues(1, repo.listCalls)
	require.EqualValues("L1", repo.lastListId)
	require.EqualValues("p1", repo.lastProfileId)
}

func TestJoinAlreadyExists(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := &subscriptionRepoMock{
		createResult: &domain.ProfileResult{Id: "p1", Outcome: domain.OutcomeAlreadyExists},
	}
	config := conf.Klaviyo{ApiKey: "key", ListId: "L1"}
	waitlist := service.NewWaitlist(repo, config, false, test.Logger())

	result, err := waitlist.Join(context.Background(), validEmail(t))
	require.NoError(err)
	require.EqualValues(domain.OutcomeAlreadyExists, result.Outcome)
	require.EqualValues(1, repo.listCalls)
}

func TestJoinListLinkFailureSwallowed(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := &subscriptionRepoMock{
		createResult: &domain.ProfileResult{Id: "p1", Outcome: domain.OutcomeCreated},
		listErr:      errors.New("unexpected status 500"),
	}
	config := conf.Klaviyo{ApiKey: "key", ListId: "L1"}
	waitlist := service.NewWaitlist(repo, config, false, test.Logger())

	result, err := waitlist.Join(context.Background(), validEmail(t))
	require.NoError(err)
	require.EqualValues(domain.OutcomeCreated, result.Outcome)
	require.EqualValues(1, repo.listCalls)
}

func TestJoinProfileRejected(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := &subscriptionRepoMock{
		createErr: domain.ProfileRejectedError{StatusCode: 400, Body: "bad request"},
	}
	config := conf.Klaviyo{ApiKey: "key", ListId: "L1"}
	waitlist := service.NewWaitlist(repo, config, false, test.Logger())

	_, err := waitlist.Join(context.Background(), validEmail(t))
	rejected := domain.ProfileRejectedError{}
	require.ErrorAs(err, &rejected)
	require.EqualValues(400, rejected.StatusCode)
	require.EqualValues(0, repo.listCalls)
}

func TestJoinConflictWithoutProfileId(t *testing.T) {
	t.Parallel()
	test, require := test.New(t)

	repo := &subscriptionRepoMock{
		createResult: &domain.ProfileResult{Outcome: domain.OutcomeAlreadyExists},
	}
	config := conf.Klaviyo{ApiKey: "key", ListId: "L1"}
	waitlist := service.NewWaitlist(repo, config, false, test.Logger())

	result, err := waitlist.Join(context.Background(), validEmail(t))
	require.NoError(err)
	require.EqualValues(domain.OutcomeAlreadyExists, result.Outcome)
	require.EqualValues(0, repo.listCalls)
}
