package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fleetbooking/internal/db"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPendingPayment, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusStarted))
	assert.True(t, CanTransition(StatusStarted, StatusInProgress))
	assert.True(t, CanTransition(StatusStarted, StatusCompleted))
	assert.True(t, CanTransition(StatusInProgress, StatusCompleted))

	// Cancellation is allowed from every non-terminal state.
	for _, from := range []Status{StatusPendingPayment, StatusConfirmed, StatusStarted, StatusInProgress} {
		assert.True(t, CanTransition(from, StatusCancelled), "expected %s -> cancelled allowed", from)
	}

	// Terminal states stay terminal.
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusConfirmed))
	assert.False(t, CanTransition(StatusCompleted, StatusStarted))

	// No shortcuts.
	assert.False(t, CanTransition(StatusPendingPayment, StatusStarted))
	assert.False(t, CanTransition(StatusConfirmed, StatusCompleted))
}

func TestApplyTransitionStampsTimestamps(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	b := &db.Booking{Status: string(StatusConfirmed)}
	assert.NoError(t, ApplyTransition(b, StatusStarted, now))
	assert.Equal(t, string(StatusStarted), b.Status)
	assert.NotNil(t, b.StartedAt)
	assert.Equal(t, now, *b.StartedAt)

	assert.NoError(t, ApplyTransition(b, StatusInProgress, now))
	assert.NoError(t, ApplyTransition(b, StatusCompleted, now.Add(time.Hour)))
	assert.NotNil(t, b.CompletedAt)
	assert.Equal(t, now.Add(time.Hour), *b.CompletedAt)
}

func TestApplyTransitionRejectsInvalidMove(t *testing.T) {
	b := &db.Booking{Status: string(StatusCompleted)}
	err := ApplyTransition(b, StatusCancelled, time.Now())
	assert.Error(t, err)
	assert.Equal(t, string(StatusCompleted), b.Status)
	assert.Nil(t, b.CancelledAt)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPendingPayment.Terminal())
	assert.False(t, StatusInProgress.Terminal())
}
