package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/civic-issues/internal/domain"
	"github.com/spec-kit/civic-issues/internal/events"
	"github.com/spec-kit/civic-issues/internal/repository"
	apperrors "github.com/spec-kit/civic-issues/pkg/util"
)

// IssueService coordinates the issue lifecycle.
type IssueService struct {
	issues     repository.IssueRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	IssueRepo  repository.IssueRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// IssueCreateInput describes issue creation payload. Optional fields that
// were absent from the request are nil.
type IssueCreateInput struct {
	Status      *domain.IssueStatus
	Description string
	ImageURL    string
	Geolocation *domain.GeoPoint
	Tags        []string
	UserID      string
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:     deps.IssueRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and persists a new issue. The reporter must be an
// existing user; the reference is checked here, immediately before the save.
func (s *IssueService) Create(ctx context.Context, input IssueCreateInput) (*domain.Issue, error) {
	issue := &domain.Issue{
		Status:      domain.IssueStatusNew,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Tags:        input.Tags,
		UserID:      input.UserID,
	}
	if input.Status != nil {
		issue.Status = *input.Status
	}
	if input.Geolocation != nil {
		issue.Geolocation = *input.Geolocation
	}
	if issue.Tags == nil {
		issue.Tags = []string{}
	}

	if errs := issue.Validate(); len(errs) > 0 {
		return nil, apperrors.NewUnprocessable(domain.JoinFieldErrors("issue", errs), domain.FieldErrorDetails(errs))
	}
	if !domain.IsValidID(issue.UserID) {
		return nil, apperrors.NewUnprocessable(fmt.Sprintf("issue validation failed: userId: %q is not a valid user ID", issue.UserID), nil)
	}
	if err := s.ensureUserExists(ctx, issue.UserID); err != nil {
		return nil, err
	}

	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueCreated,
		IssueID: issue.ID,
		Payload: events.IssueCreatedPayload{
			UserID:      issue.UserID,
			Status:      issue.Status,
			Geolocation: issue.Geolocation,
			Tags:        issue.Tags,
		},
	})
	return issue, nil
}

// Get fetches an issue by id, rejecting malformed identifiers before the
// store is consulted.
func (s *IssueService) Get(ctx context.Context, id string) (*domain.Issue, error) {
	if !domain.IsValidID(id) {
		return nil, apperrors.NewUnprocessable(fmt.Sprintf("%q is not a valid issue ID", id), nil)
	}
	issue, err := s.issues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", id)
		}
		return nil, err
	}
	return issue, nil
}

// Update applies a partial update onto an existing issue. A requested status
// change must satisfy the transition rules; re-asserting the current status
// is a no-op.
func (s *IssueService) Update(ctx context.Context, id string, patch domain.IssuePatch) (*domain.Issue, error) {
	issue, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := issue.Status
	if patch.Status != nil && !domain.CanTransition(issue.Status, *patch.Status) {
		return nil, apperrors.NewUnprocessable(
			fmt.Sprintf("cannot transition issue from %q to %q", issue.Status, *patch.Status), nil)
	}
	if patch.UserID != nil {
		if !domain.IsValidID(*patch.UserID) {
			return nil, apperrors.NewUnprocessable(fmt.Sprintf("issue validation failed: userId: %q is not a valid user ID", *patch.UserID), nil)
		}
		if err := s.ensureUserExists(ctx, *patch.UserID); err != nil {
			return nil, err
		}
	}

	issue.Apply(patch)
	if errs := issue.Validate(); len(errs) > 0 {
		return nil, apperrors.NewUnprocessable(domain.JoinFieldErrors("issue", errs), domain.FieldErrorDetails(errs))
	}

	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}
	if issue.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventIssueStatusChanged,
			IssueID: issue.ID,
			Payload: events.IssueStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: issue.Status,
			},
		})
	}
	return issue, nil
}

// Delete removes an issue by id.
func (s *IssueService) Delete(ctx context.Context, id string) error {
	issue, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.issues.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("issue", id)
		}
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventIssueDeleted,
		IssueID: issue.ID,
		Payload: events.IssueDeletedPayload{
			UserID: issue.UserID,
			Status: issue.Status,
		},
	})
	return nil
}

// List returns a page of issues matching the filter, newest first.
func (s *IssueService) List(ctx context.Context, filter repository.IssueFilter) ([]domain.Issue, error) {
	return s.issues.ListWithFilter(ctx, filter)
}

// Count returns how many issues match the filter.
func (s *IssueService) Count(ctx context.Context, filter repository.IssueFilter) (int, error) {
	return s.issues.CountWithFilter(ctx, filter)
}

func (s *IssueService) ensureUserExists(ctx context.Context, userID string) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewUnprocessable(fmt.Sprintf("issue validation failed: userId: no user found with ID %s", userID), nil)
	}
	return nil
}

func (s *IssueService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
