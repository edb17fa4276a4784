package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/civic-issues/internal/domain"
	"github.com/spec-kit/civic-issues/internal/events"
	"github.com/spec-kit/civic-issues/internal/repository"
	apperrors "github.com/spec-kit/civic-issues/pkg/util"
)

// captureDispatcher records published events for assertions.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *captureDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

type issueServiceFixture struct {
	svc        *IssueService
	users      repository.UserRepository
	issues     repository.IssueRepository
	dispatcher *captureDispatcher
	reporter   *domain.User
}

func newIssueServiceFixture(t *testing.T) *issueServiceFixture {
	t.Helper()
	userRepo := repository.NewMemoryUserRepository()
	issueRepo := repository.NewMemoryIssueRepository()
	dispatcher := &captureDispatcher{}

	reporter := &domain.User{FirstName: "Marie", LastName: "Rochat", Role: domain.UserRoleCitizen}
	require.NoError(t, userRepo.Create(context.Background(), reporter))

	return &issueServiceFixture{
		svc: NewIssueService(IssueDependencies{
			IssueRepo:  issueRepo,
			UserRepo:   userRepo,
			Dispatcher: dispatcher,
		}),
		users:      userRepo,
		issues:     issueRepo,
		dispatcher: dispatcher,
		reporter:   reporter,
	}
}

func validCreateInput(userID string) IssueCreateInput {
	return IssueCreateInput{
		Description: "broken streetlight",
		Geolocation: &domain.GeoPoint{Type: "Point", Coordinates: []float64{6.64, 46.78}},
		Tags:        []string{"light"},
		UserID:      userID,
	}
}

func httpStatus(err error) int {
	return apperrors.ToDomainError(err).HTTPStatus
}

func TestCreateDefaultsStatusAndTags(t *testing.T) {
	f := newIssueServiceFixture(t)

	input := validCreateInput(f.reporter.ID)
	input.Tags = nil
	issue, err := f.svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.IssueStatusNew, issue.Status)
	assert.NotNil(t, issue.Tags)
	assert.Empty(t, issue.Tags)
	assert.NotEmpty(t, issue.ID)
	assert.Equal(t, []events.EventType{events.EventIssueCreated}, f.dispatcher.types())
}

func TestCreateRejectsMalformedUserID(t *testing.T) {
	f := newIssueServiceFixture(t)

	_, err := f.svc.Create(context.Background(), validCreateInput("not-a-valid-id"))
	require.Error(t, err)
	assert.Equal(t, 422, httpStatus(err))
}

func TestCreateRejectsUnknownUser(t *testing.T) {
	f := newIssueServiceFixture(t)

	_, err := f.svc.Create(context.Background(), validCreateInput(domain.NewID()))
	require.Error(t, err)
	assert.Equal(t, 422, httpStatus(err))
	assert.Empty(t, f.dispatcher.types())
}

func TestCreateRejectsMissingGeolocation(t *testing.T) {
	f := newIssueServiceFixture(t)

	input := validCreateInput(f.reporter.ID)
	input.Geolocation = nil
	_, err := f.svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 422, httpStatus(err))
}

func TestUpdateAllowedTransitionPublishesEvent(t *testing.T) {
	f := newIssueServiceFixture(t)
	issue, err := f.svc.Create(context.Background(), validCreateInput(f.reporter.ID))
	require.NoError(t, err)

	next := domain.IssueStatusInProgress
	updated, err := f.svc.Update(context.Background(), issue.ID, domain.IssuePatch{Status: &next})
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusInProgress, updated.Status)
	assert.Equal(t, []events.EventType{events.EventIssueCreated, events.EventIssueStatusChanged}, f.dispatcher.types())
}

func TestUpdateDisallowedTransitionFailsBeforePersist(t *testing.T) {
	f := newIssueServiceFixture(t)
	issue, err := f.svc.Create(context.Background(), validCreateInput(f.reporter.ID))
	require.NoError(t, err)

	next := domain.IssueStatusCompleted
	_, err = f.svc.Update(context.Background(), issue.ID, domain.IssuePatch{Status: &next})
	require.Error(t, err)
	assert.Equal(t, 422, httpStatus(err))

	stored, err := f.issues.GetByID(context.Background(), issue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusNew, stored.Status)
}

func TestUpdateSameStatusIsIdempotent(t *testing.T) {
	f := newIssueServiceFixture(t)
	issue, err := f.svc.Create(context.Background(), validCreateInput(f.reporter.ID))
	require.NoError(t, err)

	same := domain.IssueStatusNew
	updated, err := f.svc.Update(context.Background(), issue.ID, domain.IssuePatch{Status: &same})
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusNew, updated.Status)
	// no status change, so no status_changed event
	assert.Equal(t, []events.EventType{events.EventIssueCreated}, f.dispatcher.types())
}

func TestUpdateWithoutStatusLeavesStatusAlone(t *testing.T) {
	f := newIssueServiceFixture(t)
	issue, err := f.svc.Create(context.Background(), validCreateInput(f.reporter.ID))
	require.NoError(t, err)

	desc := "two ugly graffiti on the castle wall"
	updated, err := f.svc.Update(context.Background(), issue.ID, domain.IssuePatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, domain.IssueStatusNew, updated.Status)
	assert.Equal(t, issue.Geolocation, updated.Geolocation)
}

func TestGetRejectsMalformedID(t *testing.T) {
	f := newIssueServiceFixture(t)

	_, err := f.svc.Get(context.Background(), "not-a-valid-id")
	require.Error(t, err)
	assert.Equal(t, 422, httpStatus(err))
}

func TestGetMissingIssueIsNotFound(t *testing.T) {
	f := newIssueServiceFixture(t)

	_, err := f.svc.Get(context.Background(), domain.NewID())
	require.Error(t, err)
	assert.Equal(t, 404, httpStatus(err))
}

func TestDeletePublishesEvent(t *testing.T) {
	f := newIssueServiceFixture(t)
	issue, err := f.svc.Create(context.Background(), validCreateInput(f.reporter.ID))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), issue.ID))
	assert.Equal(t, []events.EventType{events.EventIssueCreated, events.EventIssueDeleted}, f.dispatcher.types())

	err = f.svc.Delete(context.Background(), issue.ID)
	require.Error(t, err)
	assert.Equal(t, 404, httpStatus(err))
}
