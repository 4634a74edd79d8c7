package models

import (
	"time"
)

// Booking lifecycle states. Cancelled is terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a guest's reservation of a property for a [check_in,
// check_out) range. Bookings are looked up directly by primary key; the
// property_id index ties them back to their listing.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PropertyID    uint   `gorm:"column:property_id;index;not null" json:"propertyId"`
	ReferenceCode string `gorm:"column:reference_code;size:32;uniqueIndex" json:"referenceCode"`

	GuestID  string    `gorm:"column:guest_id;size:64;index" json:"guestId"`
	CheckIn  time.Time `gorm:"column:check_in;index" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"checkOut"`

	Guests     int     `json:"guests"`
	TotalPrice float64 `gorm:"column:total_price" json:"totalPrice"`

	Status string `gorm:"size:16;index;default:pending" json:"status"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"-"`
}
