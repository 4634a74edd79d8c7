package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
	"rental-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

// CreateBookingRequest carries a guest's stay request. PropertyID stays
// a string so a malformed id is reported as a format error rather than
// a binding failure.
type CreateBookingRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
	GuestID    string `json:"guestId" binding:"required"`
	CheckIn    string `json:"checkIn" binding:"required"`
	CheckOut   string `json:"checkOut" binding:"required"`
	Guests     int    `json:"guests" binding:"required"`
}

type UpdateBookingStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	UpdatedBy string `json:"updatedBy"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// CreateBooking handles POST /api/bookings.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "missingFields",
			"missing required fields: propertyId, guestId, checkIn, checkOut, guests")
		return
	}

	propertyID, err := strconv.ParseUint(req.PropertyID, 10, 64)
	if err != nil || propertyID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalidPropertyId", "invalid property ID format")
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidDate", "invalid check-in date format")
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidDate", "invalid check-out date format")
		return
	}

	booking, nights, err := ctrl.BookingSvc.CreateBooking(uint(propertyID), req.GuestID, checkIn, checkOut, req.Guests)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"bookingId":     booking.ID,
		"referenceCode": booking.ReferenceCode,
		"propertyId":    booking.PropertyID,
		"propertyTitle": booking.Property.Title,
		"guestId":       booking.GuestID,
		"checkIn":       booking.CheckIn,
		"checkOut":      booking.CheckOut,
		"guests":        booking.Guests,
		"nights":        nights,
		"pricePerNight": booking.Property.PricePerNight,
		"totalPrice":    booking.TotalPrice,
		"status":        booking.Status,
		"createdAt":     booking.CreatedAt,
	})
}

// GetBookingDetails handles GET /api/bookings/:id.
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalidBookingId", "invalid booking ID format")
		return
	}

	booking, err := ctrl.BookingSvc.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookingId":      booking.ID,
		"referenceCode":  booking.ReferenceCode,
		"propertyId":     booking.PropertyID,
		"propertyTitle":  booking.Property.Title,
		"propertyImages": booking.Property.ImageList(),
		"location":       booking.Property.LocationInfo(),
		"hostId":         booking.Property.HostID,
		"hostName":       booking.Property.HostName,
		"hostAvatar":     booking.Property.HostAvatar,
		"guestId":        booking.GuestID,
		"checkIn":        booking.CheckIn,
		"checkOut":       booking.CheckOut,
		"guests":         booking.Guests,
		"totalPrice":     booking.TotalPrice,
		"status":         booking.Status,
		"createdAt":      booking.CreatedAt,
	})
}

// UpdateBookingStatus handles PATCH /api/bookings/:id.
func (ctrl *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalidBookingId", "invalid booking ID format")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "missingFields", "status is required")
		return
	}

	booking, err := ctrl.BookingSvc.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookingId":     booking.ID,
		"propertyId":    booking.PropertyID,
		"propertyTitle": booking.Property.Title,
		"status":        booking.Status,
		"message":       "booking " + booking.Status,
	})
}

// DeleteBooking handles DELETE /api/bookings/:id. Only pending
// bookings may be removed.
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalidBookingId", "invalid booking ID format")
		return
	}

	if err := ctrl.BookingSvc.DeleteBooking(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"id":      id,
		"message": "booking deleted successfully",
	})
}

// GetBookings handles GET /api/bookings with optional guestId, hostId
// and status filters.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := services.BookingFilter{
		GuestID: c.Query("guestId"),
		HostID:  c.Query("hostId"),
		Status:  c.Query("status"),
		Page:    page,
		Limit:   limit,
	}

	bookings, pagination, err := ctrl.BookingSvc.ListBookings(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": pagination,
	})
}
