package order

import (
	"errors"

	"github.com/mstanvir/garment-track-backend/internal/access"
)

// Status is an order's lifecycle stage.
type Status string

const (
	StatusPending      Status = "pending"
	StatusApproved     Status = "approved"
	StatusInProduction Status = "in_production"
	StatusQCChecked    Status = "qc_checked"
	StatusPacked       Status = "packed"
	StatusShipped      Status = "shipped"
	StatusDelivered    Status = "delivered"
	StatusCancelled    Status = "cancelled"
	StatusRejected     Status = "rejected"
)

// Statuses lists every lifecycle stage in display order.
var Statuses = []Status{
	StatusPending,
	StatusApproved,
	StatusInProduction,
	StatusQCChecked,
	StatusPacked,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusRejected,
}

// validNext is the production lifecycle as a directed graph. Terminal
// states have no successors.
var validNext = map[Status]map[Status]bool{
	StatusPending:      {StatusApproved: true, StatusCancelled: true, StatusRejected: true},
	StatusApproved:     {StatusInProduction: true, StatusRejected: true},
	StatusInProduction: {StatusQCChecked: true},
	StatusQCChecked:    {StatusPacked: true},
	StatusPacked:       {StatusShipped: true},
	StatusShipped:      {StatusDelivered: true},
	StatusDelivered:    {},
	StatusCancelled:    {},
	StatusRejected:     {},
}

func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// Terminal reports whether no further transition leaves the status.
func Terminal(s Status) bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotCancellable    = errors.New("only pending orders can be cancelled")
	ErrNotOwner          = errors.New("order belongs to another buyer")
)

// AllowTransition decides whether an actor may move an order from one
// status to another.
//
// Admins may set any status to any other. This preserves the
// historical override behavior on purpose: support staff regularly
// walk orders backwards after data-entry mistakes, so the graph is not
// enforced for them. Managers follow the production graph. Buyers may
// do exactly one thing: cancel their own order while it is still
// pending.
func AllowTransition(actorRole string, from, to Status) error {
	if !ValidStatus(to) {
		return ErrUnknownStatus
	}

	switch actorRole {
	case access.RoleAdmin:
		return nil
	case access.RoleManager:
		if !CanTransition(from, to) {
			return ErrIllegalTransition
		}
		return nil
	default:
		if to != StatusCancelled {
			return ErrIllegalTransition
		}
		if from != StatusPending {
			return ErrNotCancellable
		}
		return nil
	}
}
