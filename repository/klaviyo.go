package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/http/httpcli"
	"waitlist-service/conf"
	"waitlist-service/domain"
)

const (
	profileType = "profile"
	apiRevision = "2024-10-15"
)

type profileRequest struct {
	Data profileData `json:"data"`
}

type profileData struct {
	Type       string            `json:"type"`
	Attributes profileAttributes `json:"attributes"`
}

type profileAttributes struct {
	Email      string            `json:"email"`
	Properties profileProperties `json:"properties"`
}

type profileProperties struct {
	Source     string `json:"source"`
	SignedUpAt string `json:"signed_up_at"`
}

type profileResponse struct {
	Data struct {
		Id string `json:"id"`
	} `json:"data"`
}

type conflictResponse struct {
	Errors []struct {
		Meta struct {
			DuplicateProfileId string `json:"duplicate_profile_id"`
		} `json:"meta"`
	} `json:"errors"`
}

type listMembersRequest struct {
	Data []listMember `json:"data"`
}

type listMember struct {
	Type string `json:"type"`
	Id   string `json:"id"`
}

func unmarshalJsonBody(resp *httpcli.Response, ptr any) error {
	body, err := resp.UnsafeBody()
	if err != nil {
		return err
	}
	return json.Unmarshal(body, ptr)
}

type Klaviyo struct {
	cli     *httpcli.Client
	baseUrl string
	apiKey  string
	source  string
	timeout time.Duration
}

func NewKlaviyo(cli *httpcli.Client, config conf.Klaviyo) Klaviyo {
	return Klaviyo{
		cli:     cli,
		baseUrl: config.BaseUrl(),
		apiKey:  config.ApiKey,
		source:  config.SourceName(),
		timeout: config.RequestTimeout(),
	}
}

// CreateProfile upserts a subscriber profile. 201 yields OutcomeCreated,
// 409 yields OutcomeAlreadyExists with the duplicate profile id; any other
// status is returned as domain.ProfileRejectedError.
func (r Klaviyo) CreateProfile(ctx context.Context, email string, signedUpAt time.Time) (*domain.ProfileResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	body := profileRequest{
		Data: profileData{
			Type: profileType,
			Attributes: profileAttributes{
				Email: email,
				Properties: profileProperties{
					Source:     r.source,
					SignedUpAt: signedUpAt.UTC().Format(time.RFC3339),
				},
			},
		},
	}
	resp, err := r.cli.Post(fmt.Sprintf("%s/api/profiles/", r.baseUrl)).
		Header("Authorization", fmt.Sprintf("Klaviyo-API-Key %s", r.apiKey)).
		Header("accept", "application/json").
		Header("revision", apiRevision).
		JsonRequestBody(body).
		Do(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "create profile")
	}
	defer resp.Close()

	switch resp.StatusCode() {
	case http.StatusCreated:
		created := profileResponse{}
		err := unmarshalJsonBody(resp, &created)
		if err != nil {
			return nil, errors.WithMessage(err, "unmarshal create profile response")
		}
		return &domain.ProfileResult{
			Id:      created.Data.Id,
			Outcome: domain.OutcomeCreated,
		}, nil
	case http.StatusConflict:
		conflict := conflictResponse{}
		err := unmarshalJsonBody(resp, &conflict)
		if err != nil {
			return nil, errors.WithMessage(err, "unmarshal conflict response")
		}
		result := &domain.ProfileResult{
			Outcome: domain.OutcomeAlreadyExists,
		}
		if len(conflict.Errors) > 0 {
			result.Id = conflict.Errors[0].Meta.DuplicateProfileId
		}
		return result, nil
	default:
		body, err := resp.UnsafeBody()
		if err != nil {
			return nil, errors.WithMessage(err, "read rejection body")
		}
		return nil, domain.ProfileRejectedError{
			StatusCode: resp.StatusCode(),
			Body:       string(body),
		}
	}
}

// AddToList attaches the profile to the waitlist list. Any non-success
// status becomes an error; the caller decides whether to surface it.
func (r Klaviyo) AddToList(ctx context.Context, listId string, profileId string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	body := listMembersRequest{
		Data: []listMember{{
			Type: profileType,
			Id:   profileId,
		}},
	}
	url := fmt.Sprintf("%s/api/lists/%s/relationships/profiles/", r.baseUrl, listId)
	resp, err := r.cli.Post(url).
		Header("Authorization", fmt.Sprintf("Klaviyo-API-Key %s", r.apiKey)).
		Header("accept", "application/json").
		Header("revision", apiRevision).
		JsonRequestBody(body).
		Do(ctx)
	if err != nil {
		return errors.WithMessage(err, "add profile to list")
	}
	defer resp.Close()

	if !resp.IsSuccess() {
		return errors.Errorf("add profile to list: unexpected status %d", resp.StatusCode())
	}
	return nil
}
