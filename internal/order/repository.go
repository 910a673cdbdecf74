package order

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(o Order) (Order, error)
	List() []Order
	ListByEmail(email string) []Order
	GetByID(id int) (Order, error)
	// UpdateStatus applies a transition and reports the number of rows
	// modified, which is the acknowledgment the client checks.
	UpdateStatus(id int, to Status, updatedAt string) (int, error)
}

// InMemoryRepository backs tests and local runs without postgres.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Order
	nextID  int
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Order, 0, len(seed)),
		nextID:  1,
	}

	maxID := 0
	for _, o := range seed {
		r.storage = append(r.storage, o)
		if o.ID > maxID {
			maxID = o.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == 0 {
		o.ID = r.nextID
		r.nextID++
	}
	r.storage = append(r.storage, o)
	return o, nil
}

func (r *InMemoryRepository) List() []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, len(r.storage))
	copy(out, r.storage)
	return out
}

func (r *InMemoryRepository) ListByEmail(email string) []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range r.storage {
		if o.UserEmail == email {
			out = append(out, o)
		}
	}
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.storage {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateStatus(id int, to Status, updatedAt string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Status = to
			r.storage[i].UpdatedAt = updatedAt
			return 1, nil
		}
	}
	return 0, ErrNotFound
}
