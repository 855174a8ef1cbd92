package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusCanTransition(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingRefused, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingRefused, false},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingRefused, BookingPending, false},
		{BookingCompleted, BookingCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingConfirmed.Terminal())
	assert.True(t, BookingCancelled.Terminal())
	assert.True(t, BookingRefused.Terminal())
	assert.True(t, BookingCompleted.Terminal())
}

func TestBookingEffectiveStatus(t *testing.T) {
	end := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("confirmed before end stays confirmed", func(t *testing.T) {
		b := &Booking{Status: BookingConfirmed, EndAt: end}
		assert.Equal(t, BookingConfirmed, b.EffectiveStatus(end.Add(-time.Minute)))
	})

	t.Run("confirmed at end is completed", func(t *testing.T) {
		b := &Booking{Status: BookingConfirmed, EndAt: end}
		assert.Equal(t, BookingCompleted, b.EffectiveStatus(end))
	})

	t.Run("confirmed after end is completed", func(t *testing.T) {
		b := &Booking{Status: BookingConfirmed, EndAt: end}
		assert.Equal(t, BookingCompleted, b.EffectiveStatus(end.Add(time.Hour)))
	})

	t.Run("pending never derives completed", func(t *testing.T) {
		b := &Booking{Status: BookingPending, EndAt: end}
		assert.Equal(t, BookingPending, b.EffectiveStatus(end.Add(time.Hour)))
	})

	t.Run("cancelled is unchanged", func(t *testing.T) {
		b := &Booking{Status: BookingCancelled, EndAt: end}
		assert.Equal(t, BookingCancelled, b.EffectiveStatus(end.Add(time.Hour)))
	})
}
