package dto

import (
	"time"

	"github.com/spec-kit/civic-issues/internal/domain"
)

// CreateIssueRequest payload. Fields outside this struct are dropped from the
// request body without error.
type CreateIssueRequest struct {
	Status      *domain.IssueStatus `json:"status"`
	Description string              `json:"description"`
	ImageURL    string              `json:"imageUrl"`
	Geolocation *domain.GeoPoint    `json:"geolocation"`
	Tags        []string            `json:"tags"`
	UserID      string              `json:"userId"`
}

// UpdateIssueRequest payload for partial updates. Nil means the field was
// absent from the request.
type UpdateIssueRequest struct {
	Status      *domain.IssueStatus `json:"status"`
	Description *string             `json:"description"`
	ImageURL    *string             `json:"imageUrl"`
	Geolocation *domain.GeoPoint    `json:"geolocation"`
	Tags        *[]string           `json:"tags"`
	UserID      *string             `json:"userId"`
}

// Patch converts the request into a domain patch.
func (r UpdateIssueRequest) Patch() domain.IssuePatch {
	return domain.IssuePatch{
		Status:      r.Status,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Geolocation: r.Geolocation,
		Tags:        r.Tags,
		UserID:      r.UserID,
	}
}

// IssueResponse is the public shape of an issue. The issue and reporter ids
// are exposed only through the links array.
type IssueResponse struct {
	Status      domain.IssueStatus `json:"status"`
	Description string             `json:"description,omitempty"`
	ImageURL    string             `json:"imageUrl,omitempty"`
	Geolocation domain.GeoPoint    `json:"geolocation"`
	Tags        []string           `json:"tags"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Links       []Link             `json:"links"`
}

// NewIssueResponse shapes a stored issue for responses.
func NewIssueResponse(issue *domain.Issue) IssueResponse {
	tags := issue.Tags
	if tags == nil {
		tags = []string{}
	}
	return IssueResponse{
		Status:      issue.Status,
		Description: issue.Description,
		ImageURL:    issue.ImageURL,
		Geolocation: issue.Geolocation,
		Tags:        tags,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
		Links: []Link{
			{Rel: "self", Href: "/issues/" + issue.ID},
			{Rel: "user", Href: "/users/" + issue.UserID},
		},
	}
}

// NewIssueResponses shapes a list of issues.
func NewIssueResponses(issues []domain.Issue) []IssueResponse {
	items := make([]IssueResponse, 0, len(issues))
	for i := range issues {
		items = append(items, NewIssueResponse(&issues[i]))
	}
	return items
}
