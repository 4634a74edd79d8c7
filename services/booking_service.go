package services

import (
	"errors"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"rental-backend/events"
	"rental-backend/models"
	"rental-backend/utils"
)

// BookingService owns the booking lifecycle: availability validation,
// creation, status transitions and deletion. All timestamp comparisons
// go through Now so tests can pin the clock.
type BookingService struct {
	DB     *gorm.DB
	Events *events.Publisher
	Now    func() time.Time

	locks *propertyLocks
}

func NewBookingService(db *gorm.DB, pub *events.Publisher) *BookingService {
	return &BookingService{
		DB:     db,
		Events: pub,
		Now:    time.Now,
		locks:  newPropertyLocks(),
	}
}

// BookingFilter narrows ListBookings. Zero values mean "no filter".
type BookingFilter struct {
	GuestID string
	HostID  string
	Status  string
	Page    int
	Limit   int
}

// BookingSummary is the privacy-safe list/detail projection: booking
// fields plus a denormalized slice of the parent property.
type BookingSummary struct {
	BookingID     uint            `json:"bookingId"`
	ReferenceCode string          `json:"referenceCode"`
	PropertyID    uint            `json:"propertyId"`
	PropertyTitle string          `json:"propertyTitle"`
	PropertyImage string          `json:"propertyImage,omitempty"`
	Location      models.Location `json:"location"`
	HostID        string          `json:"hostId"`
	HostName      string          `json:"hostName"`
	GuestID       string          `json:"guestId"`
	CheckIn       time.Time       `json:"checkIn"`
	CheckOut      time.Time       `json:"checkOut"`
	Guests        int             `json:"guests"`
	TotalPrice    float64         `json:"totalPrice"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func summarize(b *models.Booking) BookingSummary {
	return BookingSummary{
		BookingID:     b.ID,
		ReferenceCode: b.ReferenceCode,
		PropertyID:    b.PropertyID,
		PropertyTitle: b.Property.Title,
		PropertyImage: b.Property.FirstImage(),
		Location:      b.Property.LocationInfo(),
		HostID:        b.Property.HostID,
		HostName:      b.Property.HostName,
		GuestID:       b.GuestID,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

func isDuplicateKey(err error) bool {
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

// CreateBooking validates and persists a new pending booking.
// Preconditions run in order, first failure wins, and nothing is
// written until all of them pass. Returns the booking and the billed
// night count.
func (s *BookingService) CreateBooking(propertyID uint, guestID string, checkIn, checkOut time.Time, guests int) (*models.Booking, int, error) {
	guestID = strings.TrimSpace(guestID)
	if guestID == "" {
		return nil, 0, validationErr("missingGuestId", "guestId is required")
	}
	if !checkOut.After(checkIn) {
		return nil, 0, validationErr("invalidDateRange", "check-out date must be after check-in date")
	}
	if !checkIn.After(s.Now()) {
		return nil, 0, validationErr("checkInNotFuture", "check-in date must be in the future")
	}
	if guests < 1 {
		return nil, 0, validationErr("invalidGuests", "number of guests must be at least 1")
	}

	// Availability depends on sibling bookings; serialize writers per
	// property so validation and insert cannot interleave.
	unlock := s.locks.acquire(propertyID)
	defer unlock()

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, notFoundErr("propertyNotFound", "property not found")
		}
		return nil, 0, storageErr(err, "failed to load property")
	}
	if !property.IsActive {
		return nil, 0, notFoundErr("propertyInactive", "property is not available for booking")
	}
	if guests > property.MaxGuests {
		return nil, 0, validationErr("guestLimitExceeded", "property can accommodate maximum %d guests", property.MaxGuests)
	}

	var overlapping int64
	err := s.DB.Model(&models.Booking{}).
		Where("property_id = ? AND status <> ? AND check_in < ? AND check_out > ?",
			propertyID, models.BookingStatusCancelled, checkOut, checkIn).
		Count(&overlapping).Error
	if err != nil {
		return nil, 0, storageErr(err, "failed to check availability")
	}
	if overlapping > 0 {
		return nil, 0, conflictErr("datesUnavailable", "property is not available for the selected dates")
	}

	nights := NightsBetween(checkIn, checkOut)
	booking := models.Booking{
		PropertyID: propertyID,
		GuestID:    guestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     guests,
		TotalPrice: float64(nights) * property.PricePerNight,
		Status:     models.BookingStatusPending,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Retry reference generation on the (rare) unique collision.
		const maxRetries = 5
		var createErr error
		for attempt := 0; attempt < maxRetries; attempt++ {
			ref, genErr := utils.GenerateBookingReference()
			if genErr != nil {
				return storageErr(genErr, "failed to generate booking reference")
			}
			booking.ID = 0
			booking.ReferenceCode = ref

			createErr = tx.Create(&booking).Error
			if createErr == nil {
				break
			}
			if isDuplicateKey(createErr) {
				continue
			}
			return storageErr(createErr, "failed to create booking")
		}
		if createErr != nil {
			return storageErr(createErr, "failed to create booking after retries")
		}

		if err := tx.Model(&models.Property{}).
			Where("id = ?", propertyID).
			Update("updated_at", s.Now()).Error; err != nil {
			return storageErr(err, "failed to touch property")
		}
		return nil
	})
	if txErr != nil {
		return nil, 0, txErr
	}

	booking.Property = property
	s.Events.PublishPropertyChange(events.ActionUpdate, propertyID)
	return &booking, nights, nil
}

// GetBooking loads a booking with its parent property.
func (s *BookingService) GetBooking(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Property").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("bookingNotFound", "booking not found")
		}
		return nil, storageErr(err, "failed to load booking")
	}
	return &booking, nil
}

// UpdateStatus moves a booking to newStatus, enforcing the transition
// rules: pending→confirmed re-validates availability against current
// siblings, cancelled is terminal, a confirmed stay that has started
// cannot be cancelled, and a same-status request is an idempotent
// no-op. The write is conditional on the status the rules were checked
// against, so a lost race surfaces as a conflict, never as a silent
// overwrite.
func (s *BookingService) UpdateStatus(id uint, newStatus string) (*models.Booking, error) {
	if !models.IsValidBookingStatus(newStatus) {
		return nil, validationErr("invalidStatus", "status must be one of: %s, %s, %s",
			models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled)
	}

	var booking models.Booking
	if err := s.DB.Preload("Property").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("bookingNotFound", "booking not found")
		}
		return nil, storageErr(err, "failed to load booking")
	}

	if booking.Status == newStatus {
		return &booking, nil
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, conflictErr("bookingCancelled", "cannot update a cancelled booking")
	}

	switch newStatus {
	case models.BookingStatusConfirmed:
		unlock := s.locks.acquire(booking.PropertyID)
		defer unlock()

		var siblings []models.Booking
		err := s.DB.
			Where("property_id = ? AND id <> ? AND status <> ?",
				booking.PropertyID, booking.ID, models.BookingStatusCancelled).
			Find(&siblings).Error
		if err != nil {
			return nil, storageErr(err, "failed to load sibling bookings")
		}
		if !RangeAvailable(siblings, booking.CheckIn, booking.CheckOut, booking.ID) {
			return nil, conflictErr("datesUnavailable", "property is no longer available for the selected dates")
		}

	case models.BookingStatusCancelled:
		if booking.Status == models.BookingStatusConfirmed && !booking.CheckIn.After(s.Now()) {
			return nil, conflictErr("bookingStarted", "cannot cancel a booking that has already started")
		}

	case models.BookingStatusPending:
		// The state machine has no way back to pending.
		return nil, conflictErr("invalidTransition", "cannot move a %s booking back to pending", booking.Status)
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", id, booking.Status).
			Update("status", newStatus)
		if res.Error != nil {
			return storageErr(res.Error, "failed to update booking status")
		}
		if res.RowsAffected == 0 {
			return conflictErr("transitionConflict", "booking was modified concurrently, please retry")
		}

		if err := tx.Model(&models.Property{}).
			Where("id = ?", booking.PropertyID).
			Update("updated_at", s.Now()).Error; err != nil {
			return storageErr(err, "failed to touch property")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	booking.Status = newStatus
	s.Events.PublishPropertyChange(events.ActionUpdate, booking.PropertyID)
	return &booking, nil
}

// DeleteBooking permanently removes a booking while it is still
// pending. Anything else reports not-found, matching the combined
// "not found or cannot be deleted" contract.
func (s *BookingService) DeleteBooking(id uint) error {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("bookingNotFound", "booking not found")
		}
		return storageErr(err, "failed to load booking")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND status = ?", id, models.BookingStatusPending).
			Delete(&models.Booking{})
		if res.Error != nil {
			return storageErr(res.Error, "failed to delete booking")
		}
		if res.RowsAffected == 0 {
			return notFoundErr("bookingNotDeletable",
				"booking not found or cannot be deleted (only pending bookings can be deleted)")
		}

		if err := tx.Model(&models.Property{}).
			Where("id = ?", booking.PropertyID).
			Update("updated_at", s.Now()).Error; err != nil {
			return storageErr(err, "failed to touch property")
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.Events.PublishPropertyChange(events.ActionUpdate, booking.PropertyID)
	return nil
}

// ListBookings returns a page of booking summaries filtered by guest,
// host and/or status, newest first. An empty result is not an error.
func (s *BookingService) ListBookings(filter BookingFilter) ([]BookingSummary, utils.Pagination, error) {
	page, limit := utils.ClampPage(filter.Page, filter.Limit, 10, 100)

	query := s.DB.Model(&models.Booking{}).
		Joins("JOIN properties ON properties.id = bookings.property_id")

	if filter.GuestID != "" {
		query = query.Where("bookings.guest_id = ?", filter.GuestID)
	}
	if filter.HostID != "" {
		query = query.Where("properties.host_id = ?", filter.HostID)
	}
	if filter.Status != "" {
		query = query.Where("bookings.status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.Pagination{}, storageErr(err, "failed to count bookings")
	}

	var bookings []models.Booking
	err := query.
		Preload("Property").
		Order("bookings.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, utils.Pagination{}, storageErr(err, "failed to list bookings")
	}

	summaries := make([]BookingSummary, 0, len(bookings))
	for i := range bookings {
		summaries = append(summaries, summarize(&bookings[i]))
	}
	return summaries, utils.NewPagination(page, limit, total), nil
}
