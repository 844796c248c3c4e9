package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"example.com/schoolactivities/internal/directory"
	"example.com/schoolactivities/internal/domain"
	"example.com/schoolactivities/internal/events"
)

func TestSignupAppendsAndPublishes(t *testing.T) {
	ctx := context.Background()
	repo := directory.NewMemory(directory.DefaultSeed())
	publisher := &recordingPublisher{}
	service := domain.NewService(repo, domain.WithPublisher(publisher))

	msg, err := service.Signup(ctx, "Programming Class", "newstudent@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, "Signed up newstudent@mergington.edu for Programming Class", msg)

	listed, err := service.ListActivities(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"emma@mergington.edu", "sophia@mergington.edu", "newstudent@mergington.edu"}, listed["Programming Class"].Participants)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	require.Equal(t, events.TypeSignedUp, event.EventType)
	require.Equal(t, "Programming Class", event.Activity)
	require.Equal(t, "newstudent@mergington.edu", event.Email)
	require.Equal(t, 3, event.ParticipantCount)
	require.NotEmpty(t, event.EventID)
	require.False(t, event.OccurredAt.IsZero())
}

func TestSignupRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := directory.NewMemory(directory.DefaultSeed())
	publisher := &recordingPublisher{}
	service := domain.NewService(repo, domain.WithPublisher(publisher))

	_, err := service.Signup(ctx, "Programming Class", "emma@mergington.edu")
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	require.Empty(t, publisher.events)

	listed, err := service.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, listed["Programming Class"].Participants, 2)
}

func TestSignupUnknownActivity(t *testing.T) {
	service := domain.NewService(directory.NewMemory(directory.DefaultSeed()))

	_, err := service.Signup(context.Background(), "Underwater Basket Weaving", "a@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
	require.NotErrorIs(t, err, domain.ErrInvalidState)
}

func TestUnregisterRemovesAndPublishes(t *testing.T) {
	ctx := context.Background()
	repo := directory.NewMemory(directory.DefaultSeed())
	publisher := &recordingPublisher{}
	service := domain.NewService(repo, domain.WithPublisher(publisher))

	msg, err := service.Unregister(ctx, "Programming Class", "emma@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, "Unregistered emma@mergington.edu from Programming Class", msg)

	listed, err := service.ListActivities(ctx)
	require.NoError(t, err)
	require.NotContains(t, listed["Programming Class"].Participants, "emma@mergington.edu")

	require.Len(t, publisher.events, 1)
	require.Equal(t, events.TypeUnregistered, publisher.events[0].EventType)
	require.Equal(t, 1, publisher.events[0].ParticipantCount)
}

func TestUnregisterAbsentEmail(t *testing.T) {
	ctx := context.Background()
	service := domain.NewService(directory.NewMemory(directory.DefaultSeed()))

	_, err := service.Unregister(ctx, "Programming Class", "notregistered@mergington.edu")
	require.ErrorIs(t, err, domain.ErrNotRegistered)
	require.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = service.Unregister(ctx, "Nonexistent Activity", "emma@mergington.edu")
	require.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestPublisherFailureDoesNotFailSignup(t *testing.T) {
	service := domain.NewService(
		directory.NewMemory(directory.DefaultSeed()),
		domain.WithPublisher(&recordingPublisher{err: errors.New("buffer full")}),
	)

	_, err := service.Signup(context.Background(), "Chess Club", "late@mergington.edu")
	require.NoError(t, err)
}

func TestSignupBeyondCapacitySucceeds(t *testing.T) {
	ctx := context.Background()
	service := domain.NewService(directory.NewMemory(domain.Directory{
		"Full Club": {
			Description:     "Already at capacity",
			Schedule:        "Never",
			MaxParticipants: 2,
			Participants:    []string{"a@mergington.edu", "b@mergington.edu"},
		},
	}))

	_, err := service.Signup(ctx, "Full Club", "c@mergington.edu")
	require.NoError(t, err)

	listed, err := service.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, listed["Full Club"].Participants, 3)
}

func TestRejectionsAreCounted(t *testing.T) {
	service := domain.NewService(directory.NewMemory(directory.DefaultSeed()))

	before := gatherCounter(t, "activity_signup_registrations_rejected_total")
	_, err := service.Signup(context.Background(), "Chess Club", "michael@mergington.edu")
	require.Error(t, err)
	after := gatherCounter(t, "activity_signup_registrations_rejected_total")

	require.InDelta(t, before+1, after, 0.0001)
}

func gatherCounter(t *testing.T, name string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

type recordingPublisher struct {
	events []events.Registration
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Registration) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
