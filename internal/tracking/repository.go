package tracking

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("tracking log not found")

type Repository interface {
	Append(l TrackingLog) (TrackingLog, error)
	// ListByTrackingID returns the logs oldest first.
	ListByTrackingID(trackingID string) []TrackingLog
}

// InMemoryRepository backs tests and local runs without postgres.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []TrackingLog
	nextID  int
}

func NewInMemoryRepository(seed []TrackingLog) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]TrackingLog, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, l := range seed {
		r.storage = append(r.storage, l)
		if l.ID > maxID {
			maxID = l.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Append(l TrackingLog) (TrackingLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == 0 {
		l.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, l)
	return l, nil
}

func (r *InMemoryRepository) ListByTrackingID(trackingID string) []TrackingLog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TrackingLog, 0)
	for _, l := range r.storage {
		if l.TrackingID == trackingID {
			out = append(out, l)
		}
	}
	return out
}
