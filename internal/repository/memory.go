package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/civic-issues/internal/domain"
)

// memoryUserRepository is an in-memory UserRepository used in tests and
// local development without a database.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository returns an in-memory implementation.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.FirstName == user.FirstName && existing.LastName == user.LastName {
			// emulates the unique index the SQL schema enforces
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_first_last_name_key"}
		}
	}
	now := time.Now()
	user.ID = domain.NewID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for _, existing := range r.users {
		if existing.ID != user.ID && existing.FirstName == user.FirstName && existing.LastName == user.LastName {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_first_last_name_key"}
		}
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result, nil
}

func (r *memoryUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type memoryIssue struct {
	issue domain.Issue
	seq   int
}

// memoryIssueRepository is an in-memory IssueRepository used in tests and
// local development without a database.
type memoryIssueRepository struct {
	mu      sync.RWMutex
	issues  map[string]memoryIssue
	nextSeq int
}

// NewMemoryIssueRepository returns an in-memory implementation.
func NewMemoryIssueRepository() IssueRepository {
	return &memoryIssueRepository{issues: make(map[string]memoryIssue)}
}

func (r *memoryIssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	issue.ID = domain.NewID()
	issue.CreatedAt = now
	issue.UpdatedAt = now
	r.nextSeq++
	r.issues[issue.ID] = memoryIssue{issue: *issue, seq: r.nextSeq}
	return nil
}

func (r *memoryIssueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.issues[issue.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	issue.UpdatedAt = time.Now()
	stored.issue = *issue
	r.issues[issue.ID] = stored
	return nil
}

func (r *memoryIssueRepository) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	issue := stored.issue
	return &issue, nil
}

func (r *memoryIssueRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.issues[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.issues, id)
	return nil
}

func (r *memoryIssueRepository) ListWithFilter(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	matched := r.matching(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []domain.Issue{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]domain.Issue, 0, end-offset)
	for _, stored := range matched[offset:end] {
		result = append(result, stored.issue)
	}
	return result, nil
}

func (r *memoryIssueRepository) CountWithFilter(ctx context.Context, filter IssueFilter) (int, error) {
	return len(r.matching(filter)), nil
}

func (r *memoryIssueRepository) CountByUser(ctx context.Context, userIDs []string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	counts := make(map[string]int, len(userIDs))
	for _, stored := range r.issues {
		if wanted[stored.issue.UserID] {
			counts[stored.issue.UserID]++
		}
	}
	return counts, nil
}

// matching returns the filtered issues newest first.
func (r *memoryIssueRepository) matching(filter IssueFilter) []memoryIssue {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userIDs := make(map[string]bool, len(filter.UserIDs))
	for _, id := range filter.UserIDs {
		userIDs[id] = true
	}
	statuses := make(map[domain.IssueStatus]bool, len(filter.Statuses))
	for _, status := range filter.Statuses {
		statuses[status] = true
	}

	matched := make([]memoryIssue, 0, len(r.issues))
	for _, stored := range r.issues {
		if len(userIDs) > 0 && !userIDs[stored.issue.UserID] {
			continue
		}
		if len(statuses) > 0 && !statuses[stored.issue.Status] {
			continue
		}
		matched = append(matched, stored)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].seq > matched[j].seq
	})
	return matched
}
