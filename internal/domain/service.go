// Package domain defines the business logic for activity signups.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"example.com/schoolactivities/internal/events"
	"example.com/schoolactivities/internal/observability"
)

var (
	// ErrActivityNotFound is returned when no activity has the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidState groups requests that conflict with the current roster.
	ErrInvalidState = errors.New("invalid registration state")
	// ErrAlreadyRegistered is returned when the email is already on the roster.
	ErrAlreadyRegistered = fmt.Errorf("%w: student already signed up", ErrInvalidState)
	// ErrNotRegistered is returned when the email is not on the roster.
	ErrNotRegistered = fmt.Errorf("%w: student not registered", ErrInvalidState)
)

// Repository captures the directory operations the service depends on.
// AddParticipant and RemoveParticipant check and mutate atomically and
// return the activity as it looks after the change.
type Repository interface {
	List(ctx context.Context) (Directory, error)
	AddParticipant(ctx context.Context, name, email string) (Activity, error)
	RemoveParticipant(ctx context.Context, name, email string) (Activity, error)
}

// Service orchestrates signup workflows.
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithPublisher routes registration events to publisher.
func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs a Service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: events.NoopPublisher{},
		logger:    zap.NewNop(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListActivities returns every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (Directory, error) {
	return s.repo.List(ctx)
}

// Signup registers email for the named activity and returns a confirmation message.
func (s *Service) Signup(ctx context.Context, name, email string) (string, error) {
	activity, err := s.repo.AddParticipant(ctx, name, email)
	if err != nil {
		observability.RecordRegistrationRejected(events.TypeSignedUp, reason(err))
		return "", err
	}

	s.emit(ctx, events.TypeSignedUp, name, email, len(activity.Participants))
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Unregister removes email from the named activity and returns a confirmation message.
func (s *Service) Unregister(ctx context.Context, name, email string) (string, error) {
	activity, err := s.repo.RemoveParticipant(ctx, name, email)
	if err != nil {
		observability.RecordRegistrationRejected(events.TypeUnregistered, reason(err))
		return "", err
	}

	s.emit(ctx, events.TypeUnregistered, name, email, len(activity.Participants))
	return fmt.Sprintf("Unregistered %s from %s", email, name), nil
}

// emit publishes a registration event. Delivery problems never fail the request.
func (s *Service) emit(ctx context.Context, eventType, name, email string, count int) {
	observability.RecordRegistration(eventType, name)

	event := events.Registration{
		EventID:          uuid.NewString(),
		EventType:        eventType,
		Activity:         name,
		Email:            email,
		ParticipantCount: count,
		OccurredAt:       s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("registration event not published",
			zap.String("event_type", eventType),
			zap.String("activity", name),
			zap.Error(err),
		)
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrNotRegistered):
		return "not_registered"
	default:
		return "error"
	}
}
