// Package directory stores the activity directory in process memory.
package directory

import (
	"context"
	"slices"
	"sync"

	"example.com/schoolactivities/internal/domain"
	"example.com/schoolactivities/internal/observability"
)

// Memory is a mutex-guarded activity directory. The zero value is not usable; call NewMemory.
type Memory struct {
	mu         sync.RWMutex
	activities domain.Directory
}

// NewMemory constructs a directory populated with a copy of seed.
func NewMemory(seed domain.Directory) *Memory {
	m := &Memory{}
	m.Restore(seed)
	return m
}

// List implements domain.Repository.
func (m *Memory) List(ctx context.Context) (domain.Directory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activities.Clone(), nil
}

// AddParticipant implements domain.Repository. Capacity is not checked.
func (m *Memory) AddParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity, ok := m.activities[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	if activity.HasParticipant(email) {
		return domain.Activity{}, domain.ErrAlreadyRegistered
	}

	activity.Participants = append(activity.Participants, email)
	m.activities[name] = activity
	observability.SetRosterSize(name, len(activity.Participants))
	return activity.Clone(), nil
}

// RemoveParticipant implements domain.Repository.
func (m *Memory) RemoveParticipant(ctx context.Context, name, email string) (domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity, ok := m.activities[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	idx := slices.Index(activity.Participants, email)
	if idx < 0 {
		return domain.Activity{}, domain.ErrNotRegistered
	}

	activity.Participants = slices.Delete(activity.Participants, idx, idx+1)
	m.activities[name] = activity
	observability.SetRosterSize(name, len(activity.Participants))
	return activity.Clone(), nil
}

// Snapshot returns a deep copy of the current directory, suitable for Restore.
func (m *Memory) Snapshot() domain.Directory {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activities.Clone()
}

// Restore replaces the directory contents with a copy of snapshot.
func (m *Memory) Restore(snapshot domain.Directory) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.activities = snapshot.Clone()
	observability.ResetRosterSizes()
	for name, activity := range m.activities {
		observability.SetRosterSize(name, len(activity.Participants))
	}
}
