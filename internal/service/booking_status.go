package service

import (
	"fmt"
	"time"

	"fleetbooking/internal/db"
)

// Status is a booking lifecycle state, persisted as a string.
type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusStarted        Status = "started"
	StatusInProgress     Status = "in_progress"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

// allowTransition is the directed graph of legal status moves. Cancelled is
// reachable from every non-terminal state; completed and cancelled are final.
var allowTransition = map[Status][]Status{
	StatusPendingPayment: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusStarted, StatusCancelled},
	StatusStarted:        {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress:     {StatusCompleted, StatusCancelled},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	allowed, ok := allowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves the booking to the target status and stamps the
// matching timestamp field. Call only after CanTransition.
func ApplyTransition(b *db.Booking, to Status, now time.Time) error {
	if b == nil {
		return fmt.Errorf("booking is nil")
	}
	from := Status(b.Status)
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid booking status transition: %s -> %s", from, to)
	}

	b.Status = string(to)

	switch to {
	case StatusStarted:
		if b.StartedAt == nil {
			t := now
			b.StartedAt = &t
		}
	case StatusCompleted:
		if b.CompletedAt == nil {
			t := now
			b.CompletedAt = &t
		}
	case StatusCancelled:
		if b.CancelledAt == nil {
			t := now
			b.CancelledAt = &t
		}
	}
	return nil
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
