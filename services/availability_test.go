package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rental-backend/models"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"identical ranges", day(1), day(5), day(1), day(5), true},
		{"partial overlap", day(1), day(5), day(3), day(8), true},
		{"b inside a", day(1), day(10), day(3), day(5), true},
		{"a inside b", day(3), day(5), day(1), day(10), true},
		{"disjoint", day(1), day(3), day(5), day(8), false},
		{"checkout meets checkin", day(1), day(5), day(5), day(8), false},
		{"checkin meets checkout", day(5), day(8), day(1), day(5), false},
		{"one night shared", day(1), day(6), day(5), day(8), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestRangeAvailable(t *testing.T) {
	bookings := []models.Booking{
		{ID: 1, CheckIn: day(1), CheckOut: day(5), Status: models.BookingStatusConfirmed},
		{ID: 2, CheckIn: day(10), CheckOut: day(15), Status: models.BookingStatusCancelled},
		{ID: 3, CheckIn: day(20), CheckOut: day(25), Status: models.BookingStatusPending},
	}

	assert.False(t, RangeAvailable(bookings, day(3), day(7), 0), "overlaps confirmed booking")
	assert.True(t, RangeAvailable(bookings, day(5), day(9), 0), "back-to-back after confirmed booking")
	assert.True(t, RangeAvailable(bookings, day(11), day(14), 0), "cancelled bookings do not block")
	assert.False(t, RangeAvailable(bookings, day(22), day(24), 0), "pending bookings block")
	assert.True(t, RangeAvailable(bookings, day(22), day(24), 3), "a booking never conflicts with itself")
}

func TestNightsBetween(t *testing.T) {
	assert.Equal(t, 4, NightsBetween(day(1), day(5)))
	assert.Equal(t, 1, NightsBetween(day(1), day(2)))

	// Partial days round up.
	checkIn := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 4, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, NightsBetween(checkIn, checkOut))
}
