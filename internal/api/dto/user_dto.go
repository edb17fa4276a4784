package dto

import (
	"fmt"
	"time"

	"github.com/spec-kit/civic-issues/internal/domain"
)

// CreateUserRequest payload. Fields outside this struct are dropped from the
// request body without error.
type CreateUserRequest struct {
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Role      *domain.UserRole `json:"role"`
}

// UpdateUserRequest payload for partial updates. Nil means the field was
// absent from the request.
type UpdateUserRequest struct {
	FirstName *string          `json:"firstName"`
	LastName  *string          `json:"lastName"`
	Role      *domain.UserRole `json:"role"`
}

// Patch converts the request into a domain patch.
func (r UpdateUserRequest) Patch() domain.UserPatch {
	return domain.UserPatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
	}
}

// UserResponse is the public shape of a user. When the user has reported at
// least one issue the response additionally carries issuesCount and an
// issues link; otherwise both are absent.
type UserResponse struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Role        domain.UserRole `json:"role"`
	IssuesCount int             `json:"issuesCount,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Links       []Link          `json:"links"`
}

// NewUserResponse shapes a stored user for responses.
func NewUserResponse(user *domain.User, issuesCount int) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Links: []Link{
			{Rel: "self", Href: "/users/" + user.ID},
		},
	}
	if issuesCount > 0 {
		resp.IssuesCount = issuesCount
		resp.Links = append(resp.Links, Link{
			Rel:  "issues",
			Href: fmt.Sprintf("/issues/?user=%s", user.ID),
		})
	}
	return resp
}

// NewUserResponses shapes a list of users, merging in per-user issue counts.
func NewUserResponses(users []domain.User, issueCounts map[string]int) []UserResponse {
	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, NewUserResponse(&users[i], issueCounts[users[i].ID]))
	}
	return items
}
