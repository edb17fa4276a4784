package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// IssueStatus enumerates lifecycle states for reported issues.
type IssueStatus string

const (
	IssueStatusNew        IssueStatus = "new"
	IssueStatusInProgress IssueStatus = "inProgress"
	IssueStatusCanceled   IssueStatus = "canceled"
	IssueStatusCompleted  IssueStatus = "completed"
)

// Valid reports whether the status is a known enum value.
func (s IssueStatus) Valid() bool {
	switch s {
	case IssueStatusNew, IssueStatusInProgress, IssueStatusCanceled, IssueStatusCompleted:
		return true
	}
	return false
}

// allowedTransitions defines the status workflow. canceled and completed are
// terminal.
var allowedTransitions = map[IssueStatus][]IssueStatus{
	IssueStatusNew:        {IssueStatusInProgress, IssueStatusCanceled},
	IssueStatusInProgress: {IssueStatusCanceled, IssueStatusCompleted},
	IssueStatusCanceled:   {},
	IssueStatusCompleted:  {},
}

// CanTransition decides whether an issue may move from current to next.
// Re-asserting the current status is always an allowed no-op.
func CanTransition(current, next IssueStatus) bool {
	if current == next {
		return true
	}
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// GeoPoint is a GeoJSON point locating an issue.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Valid checks the GeoJSON point shape and coordinate ranges.
func (g GeoPoint) Valid() bool {
	if g.Type != "Point" || len(g.Coordinates) != 2 {
		return false
	}
	lng, lat := g.Coordinates[0], g.Coordinates[1]
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

// Issue is the aggregate for citizen-reported problems.
type Issue struct {
	ID          string
	Status      IssueStatus
	Description string
	ImageURL    string
	Geolocation GeoPoint
	Tags        []string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IssuePatch carries the mutable issue fields of a partial update. Nil fields
// were absent from the request and leave the current value untouched.
type IssuePatch struct {
	Status      *IssueStatus
	Description *string
	ImageURL    *string
	Geolocation *GeoPoint
	Tags        *[]string
	UserID      *string
}

// Apply merges the patch onto the issue.
func (i *Issue) Apply(p IssuePatch) {
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.ImageURL != nil {
		i.ImageURL = *p.ImageURL
	}
	if p.Geolocation != nil {
		i.Geolocation = *p.Geolocation
	}
	if p.Tags != nil {
		i.Tags = *p.Tags
	}
	if p.UserID != nil {
		i.UserID = *p.UserID
	}
}

// Validate checks field constraints, returning one error per offending field.
func (i *Issue) Validate() []FieldError {
	var errs []FieldError
	if !i.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: fmt.Sprintf("%q is not a valid status", i.Status)})
	}
	if utf8.RuneCountInString(i.Description) > 1000 {
		errs = append(errs, FieldError{Field: "description", Message: "must be at most 1000 characters"})
	}
	if utf8.RuneCountInString(i.ImageURL) > 500 {
		errs = append(errs, FieldError{Field: "imageUrl", Message: "must be at most 500 characters"})
	}
	if !i.Geolocation.Valid() {
		errs = append(errs, FieldError{Field: "geolocation", Message: "must be a GeoJSON point with coordinates [longitude, latitude]"})
	}
	for _, tag := range i.Tags {
		if utf8.RuneCountInString(tag) > 50 {
			errs = append(errs, FieldError{Field: "tags", Message: fmt.Sprintf("tag %q must be at most 50 characters", tag)})
			break
		}
	}
	if i.UserID == "" {
		errs = append(errs, FieldError{Field: "userId", Message: "is required"})
	}
	return errs
}
