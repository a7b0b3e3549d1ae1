package domain

type SubscriptionOutcome int

const (
	OutcomeCreated SubscriptionOutcome = iota + 1
	OutcomeAlreadyExists
)

// ProfileResult is the outcome of the create profile call.
// A 409 conflict carries the id of the duplicate profile and is
// indistinguishable from a fresh 201 for the caller of the service.
type ProfileResult struct {
	Id      string
	Outcome SubscriptionOutcome
}

type JoinResult struct {
	ProfileId string
	Outcome   SubscriptionOutcome
}

type JoinWaitlistResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
