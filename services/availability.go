package services

import (
	"math"
	"time"

	"rental-backend/models"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at
// least one night. Half-open intervals: a stay checking out on another
// stay's check-in day does not overlap it.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// RangeAvailable reports whether [checkIn, checkOut) is free against
// the given sibling bookings, ignoring cancelled ones and the booking
// identified by excludeID (0 to exclude nothing). The caller must have
// validated the range first.
func RangeAvailable(bookings []models.Booking, checkIn, checkOut time.Time, excludeID uint) bool {
	for _, b := range bookings {
		if b.ID == excludeID && excludeID != 0 {
			continue
		}
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		if Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return false
		}
	}
	return true
}

// NightsBetween returns the number of billable nights between check-in
// and check-out, rounding partial days up.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}
