package order

import (
	"context"
	"fmt"
	"time"

	"github.com/mstanvir/garment-track-backend/internal/access"
	"github.com/mstanvir/garment-track-backend/internal/events"
	"github.com/mstanvir/garment-track-backend/internal/redisx"
	"github.com/mstanvir/garment-track-backend/pkg/logger"
)

type Service struct {
	repo  Repository
	pub   *events.Publisher
	cache *redisx.Cache
}

// NewService wires the repository with an optional status-change
// publisher and cache; both may be nil.
func NewService(repo Repository, pub *events.Publisher, cache *redisx.Cache) *Service {
	return &Service{repo: repo, pub: pub, cache: cache}
}

// Create stores a new order. Orders only ever start in the pending
// state; callers fill in the product snapshot and tracking id.
func (s *Service) Create(o Order) (Order, error) {
	o.Status = StatusPending
	return s.repo.Create(o)
}

func (s *Service) List() []Order {
	return s.repo.List()
}

func (s *Service) ListByEmail(email string) []Order {
	return s.repo.ListByEmail(email)
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

// TrackingIDForOrder resolves the tracking identifier attached to an
// order, for the tracking timeline lookups.
func (s *Service) TrackingIDForOrder(orderID int) (string, error) {
	o, err := s.repo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	return o.TrackingID, nil
}

// Transition moves an order to the target status on behalf of an
// actor. Permission errors come back before anything is written, so a
// refused transition leaves the stored state untouched. On success the
// modified-row count is returned and a status-change event is emitted.
func (s *Service) Transition(id int, to Status, actorRole, actorEmail string) (int, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		return 0, err
	}

	// buyers can only touch their own orders
	if actorRole != access.RoleAdmin && actorRole != access.RoleManager && o.UserEmail != actorEmail {
		return 0, ErrNotOwner
	}

	if err := AllowTransition(actorRole, o.Status, to); err != nil {
		return 0, err
	}

	modified, err := s.repo.UpdateStatus(id, to, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}

	ctx := context.Background()
	_ = s.cache.Del(ctx, fmt.Sprintf(redisx.KeyOrderStatus, id))
	if err := s.pub.PublishStatusChanged(ctx, events.StatusChanged{
		OrderID:    id,
		TrackingID: o.TrackingID,
		From:       string(o.Status),
		To:         string(to),
		Actor:      actorEmail,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		// the transition itself already succeeded; the event is best-effort
		logger.L().Warnw("status event publish failed", "orderId", id, "error", err)
	}

	return modified, nil
}
