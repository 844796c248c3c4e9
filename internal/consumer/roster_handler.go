package consumer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"example.com/schoolactivities/internal/events"
)

// RosterHandler projects registration events into per-activity participant counts.
type RosterHandler struct {
	logger *zap.Logger

	mu     sync.RWMutex
	counts map[string]int
}

// NewRosterHandler constructs an empty projection.
func NewRosterHandler(logger *zap.Logger) *RosterHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterHandler{logger: logger, counts: make(map[string]int)}
}

// Handle records the participant count carried by the event.
func (h *RosterHandler) Handle(_ context.Context, msg Message) error {
	switch msg.EventType {
	case events.TypeSignedUp, events.TypeUnregistered:
	default:
		return fmt.Errorf("unsupported event type %q", msg.EventType)
	}
	if msg.Event.ParticipantCount < 0 {
		return fmt.Errorf("negative participant count for %s", msg.Event.Activity)
	}

	h.mu.Lock()
	h.counts[msg.Event.Activity] = msg.Event.ParticipantCount
	h.mu.Unlock()

	h.logger.Info("registration event",
		zap.String("event_type", msg.EventType),
		zap.String("activity", msg.Event.Activity),
		zap.String("email", msg.Event.Email),
		zap.Int("participant_count", msg.Event.ParticipantCount),
		zap.Time("occurred_at", msg.Event.OccurredAt),
	)
	return nil
}

// Count returns the last known participant count for an activity.
func (h *RosterHandler) Count(activity string) (int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count, ok := h.counts[activity]
	return count, ok
}
