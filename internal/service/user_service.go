package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/civic-issues/internal/domain"
	"github.com/spec-kit/civic-issues/internal/repository"
	apperrors "github.com/spec-kit/civic-issues/pkg/util"
)

// UserService coordinates citizen account management.
type UserService struct {
	users  repository.UserRepository
	issues repository.IssueRepository
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo  repository.UserRepository
	IssueRepo repository.IssueRepository
}

// UserCreateInput describes user creation payload.
type UserCreateInput struct {
	FirstName string
	LastName  string
	Role      *domain.UserRole
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:  deps.UserRepo,
		issues: deps.IssueRepo,
	}
}

// Create validates and persists a new user. The (firstName, lastName) unique
// index surfaces duplicates as a conflict at the error boundary.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	user := &domain.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      domain.UserRoleCitizen,
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if errs := user.Validate(); len(errs) > 0 {
		return nil, apperrors.NewUnprocessable(domain.JoinFieldErrors("user", errs), domain.FieldErrorDetails(errs))
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get fetches a user by id along with the number of issues they reported.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, int, error) {
	if !domain.IsValidID(id) {
		return nil, 0, apperrors.NewUnprocessable(fmt.Sprintf("%q is not a valid user ID", id), nil)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, apperrors.NewNotFound("user", id)
		}
		return nil, 0, err
	}
	counts, err := s.issues.CountByUser(ctx, []string{user.ID})
	if err != nil {
		return nil, 0, err
	}
	return user, counts[user.ID], nil
}

// List returns all users ordered by last name, with issue counts aggregated
// per user across the returned set.
func (s *UserService) List(ctx context.Context) ([]domain.User, map[string]int, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}
	counts, err := s.issues.CountByUser(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return users, counts, nil
}

// Update applies a partial update onto an existing user.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, int, error) {
	user, count, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	user.Apply(patch)
	if errs := user.Validate(); len(errs) > 0 {
		return nil, 0, apperrors.NewUnprocessable(domain.JoinFieldErrors("user", errs), domain.FieldErrorDetails(errs))
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, 0, err
	}
	return user, count, nil
}

// Delete removes a user by id. Issues referencing the user keep their
// reference; the orphaning is accepted behavior.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if !domain.IsValidID(id) {
		return apperrors.NewUnprocessable(fmt.Sprintf("%q is not a valid user ID", id), nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", id)
		}
		return err
	}
	return nil
}
