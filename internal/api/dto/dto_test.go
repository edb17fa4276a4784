package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/civic-issues/internal/domain"
)

func TestIssueResponseLinks(t *testing.T) {
	issue := &domain.Issue{
		ID:          "0de48b0a-bec8-4f4f-9b8c-6f3bd31d53ab",
		Status:      domain.IssueStatusNew,
		Geolocation: domain.GeoPoint{Type: "Point", Coordinates: []float64{6.64, 46.78}},
		UserID:      "7f8a1c5e-2a14-4b65-9f0a-cc61a54b2a11",
	}
	resp := NewIssueResponse(issue)

	assert.Equal(t, []Link{
		{Rel: "self", Href: "/issues/0de48b0a-bec8-4f4f-9b8c-6f3bd31d53ab"},
		{Rel: "user", Href: "/users/7f8a1c5e-2a14-4b65-9f0a-cc61a54b2a11"},
	}, resp.Links)
}

func TestIssueResponseHidesIdentifiers(t *testing.T) {
	issue := &domain.Issue{
		ID:          "0de48b0a-bec8-4f4f-9b8c-6f3bd31d53ab",
		Status:      domain.IssueStatusNew,
		Geolocation: domain.GeoPoint{Type: "Point", Coordinates: []float64{6.64, 46.78}},
		UserID:      "7f8a1c5e-2a14-4b65-9f0a-cc61a54b2a11",
	}

	raw, err := json.Marshal(NewIssueResponse(issue))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "userId")
	assert.NotContains(t, fields, "id")
	assert.Contains(t, fields, "links")
}

func TestIssueResponseTagsAlwaysArray(t *testing.T) {
	issue := &domain.Issue{
		Status:      domain.IssueStatusNew,
		Geolocation: domain.GeoPoint{Type: "Point", Coordinates: []float64{6.64, 46.78}},
	}

	raw, err := json.Marshal(NewIssueResponse(issue))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tags":[]`)
}

func TestIssueResponseTimestampsAreISO8601(t *testing.T) {
	created := time.Date(2018, 3, 19, 8, 21, 50, 0, time.UTC)
	issue := &domain.Issue{
		Status:      domain.IssueStatusNew,
		Geolocation: domain.GeoPoint{Type: "Point", Coordinates: []float64{6.64, 46.78}},
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	raw, err := json.Marshal(NewIssueResponse(issue))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"createdAt":"2018-03-19T08:21:50Z"`)
}

func TestUserResponseWithoutIssuesOmitsCountAndLink(t *testing.T) {
	user := &domain.User{
		ID:        "7f8a1c5e-2a14-4b65-9f0a-cc61a54b2a11",
		FirstName: "Marie",
		LastName:  "Rochat",
		Role:      domain.UserRoleCitizen,
	}

	raw, err := json.Marshal(NewUserResponse(user, 0))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "issuesCount")

	resp := NewUserResponse(user, 0)
	assert.Equal(t, []Link{{Rel: "self", Href: "/users/7f8a1c5e-2a14-4b65-9f0a-cc61a54b2a11"}}, resp.Links)
}

func TestUserResponseWithIssuesIncludesCountAndLink(t *testing.T) {
	user := &domain.User{
		ID:        "7f8a1c5e-2a14-4b65-9f0a-cc61a54b2a11",
		FirstName: "Marie",
		LastName:  "Rochat",
		Role:      domain.UserRoleCitizen,
	}

	resp := NewUserResponse(user, 3)
	assert.Equal(t, 3, resp.IssuesCount)
	assert.Equal(t, []Link{
		{Rel: "self", Href: "/users/7f8a1c5e-2a14-4b65-9f0a-cc61a54b2a11"},
		{Rel: "issues", Href: "/issues/?user=7f8a1c5e-2a14-4b65-9f0a-cc61a54b2a11"},
	}, resp.Links)
}

func TestNewUserResponsesMergesCounts(t *testing.T) {
	users := []domain.User{
		{ID: "a0a0a0a0-0000-4000-8000-000000000001", LastName: "Aubert"},
		{ID: "a0a0a0a0-0000-4000-8000-000000000002", LastName: "Blanc"},
	}
	counts := map[string]int{"a0a0a0a0-0000-4000-8000-000000000002": 2}

	resps := NewUserResponses(users, counts)
	assert.Len(t, resps, 2)
	assert.Equal(t, 0, resps[0].IssuesCount)
	assert.Len(t, resps[0].Links, 1)
	assert.Equal(t, 2, resps[1].IssuesCount)
	assert.Len(t, resps[1].Links, 2)
}

func TestUpdateIssueRequestWhitelist(t *testing.T) {
	// extra fields are dropped silently; recognized ones are kept
	body := []byte(`{"status":"inProgress","rogue":"value","createdAt":"2020-01-01T00:00:00Z"}`)

	var req UpdateIssueRequest
	require.NoError(t, json.Unmarshal(body, &req))

	patch := req.Patch()
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.IssueStatusInProgress, *patch.Status)
	assert.Nil(t, patch.Description)
	assert.Nil(t, patch.Geolocation)
	assert.Nil(t, patch.Tags)
	assert.Nil(t, patch.UserID)
}
