package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusPersistable(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, s.Persistable(), "%s should be persistable", s)
	}
	assert.False(t, StatusAvailable.Persistable(), "available is a display sentinel only")
	assert.False(t, AppointmentStatus("scheduled").Persistable())
	assert.False(t, AppointmentStatus("").Persistable())
}

func TestStatusLive(t *testing.T) {
	assert.True(t, StatusPending.Live())
	assert.True(t, StatusConfirmed.Live())
	assert.False(t, StatusCompleted.Live())
	assert.False(t, StatusCancelled.Live())
	assert.False(t, StatusNoShow.Live())
	assert.False(t, StatusAvailable.Live())
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusNoShow, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusNoShow, StatusConfirmed, false},
		{StatusAvailable, StatusPending, false},
		{StatusPending, StatusAvailable, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
