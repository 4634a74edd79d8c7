package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreatePropertyRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Images        []string        `json:"images" binding:"required"`
	PricePerNight float64         `json:"pricePerNight" binding:"required"`
	Location      models.Location `json:"location" binding:"required"`
	HostID        string          `json:"hostId" binding:"required"`
	HostName      string          `json:"hostName" binding:"required"`
	HostAvatar    string          `json:"hostAvatar"`
	Amenities     []string        `json:"amenities" binding:"required"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	MaxGuests     int             `json:"maxGuests" binding:"required"`
	PropertyType  string          `json:"propertyType" binding:"required"`
	Rating        float64         `json:"rating"`
	ReviewCount   int             `json:"reviewCount"`
}

type UpdatePropertyRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Images        []string         `json:"images"`
	PricePerNight *float64         `json:"pricePerNight"`
	Location      *models.Location `json:"location"`
	Amenities     []string         `json:"amenities"`
	Bedrooms      *int             `json:"bedrooms"`
	Bathrooms     *int             `json:"bathrooms"`
	MaxGuests     *int             `json:"maxGuests"`
	PropertyType  *string          `json:"propertyType"`
	IsActive      *bool            `json:"isActive"`
}

// ---------------------------
// Controller
// ---------------------------

type PropertyController struct {
	PropertySvc *services.PropertyService
}

func NewPropertyController(svc *services.PropertyService) *PropertyController {
	return &PropertyController{PropertySvc: svc}
}

// GetProperties handles GET /api/properties: search, filter, sort,
// paginate. Bookings never appear in this payload.
func (ctrl *PropertyController) GetProperties(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	filter := services.SearchFilter{
		City:         c.Query("city"),
		State:        c.Query("state"),
		PropertyType: c.Query("propertyType"),
		SortBy:       c.DefaultQuery("sortBy", "createdAt"),
		SortOrder:    c.DefaultQuery("sortOrder", "desc"),
		Page:         page,
		Limit:        limit,
	}

	if raw := c.Query("guests"); raw != "" {
		if guests, err := strconv.Atoi(raw); err == nil {
			filter.Guests = guests
		}
	}
	if raw := c.Query("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	if raw := c.Query("checkIn"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalidDate", "invalid check-in date format")
			return
		}
		filter.CheckIn = &t
	}
	if raw := c.Query("checkOut"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalidDate", "invalid check-out date format")
			return
		}
		filter.CheckOut = &t
	}

	properties, pagination, err := ctrl.PropertySvc.Search(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"properties": properties,
		"pagination": pagination,
	})
}

// GetPropertyByID handles GET /api/properties/:id. Bookings are
// reduced to their date range and status; guest identity is never
// exposed here.
func (ctrl *PropertyController) GetPropertyByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalidPropertyId", "invalid property ID format")
		return
	}

	property, err := ctrl.PropertySvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	bookings := make([]gin.H, 0, len(property.Bookings))
	for _, b := range property.Bookings {
		bookings = append(bookings, gin.H{
			"checkIn":  b.CheckIn,
			"checkOut": b.CheckOut,
			"status":   b.Status,
		})
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"id":            property.ID,
		"title":         property.Title,
		"description":   property.Description,
		"images":        property.ImageList(),
		"pricePerNight": property.PricePerNight,
		"location":      property.LocationInfo(),
		"hostId":        property.HostID,
		"hostName":      property.HostName,
		"hostAvatar":    property.HostAvatar,
		"amenities":     property.AmenityList(),
		"bedrooms":      property.Bedrooms,
		"bathrooms":     property.Bathrooms,
		"maxGuests":     property.MaxGuests,
		"propertyType":  property.PropertyType,
		"rating":        property.Rating,
		"reviewCount":   property.ReviewCount,
		"isActive":      property.IsActive,
		"createdAt":     property.CreatedAt,
		"updatedAt":     property.UpdatedAt,
		"bookings":      bookings,
	})
}

// CreateProperty handles POST /api/properties.
func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "missingFields",
			"missing required fields: title, description, images, pricePerNight, location, hostId, hostName, amenities, maxGuests, propertyType")
		return
	}

	property, err := ctrl.PropertySvc.Create(services.PropertyInput{
		Title:         req.Title,
		Description:   req.Description,
		Images:        req.Images,
		PricePerNight: req.PricePerNight,
		Location:      req.Location,
		HostID:        req.HostID,
		HostName:      req.HostName,
		HostAvatar:    req.HostAvatar,
		Amenities:     req.Amenities,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		PropertyType:  req.PropertyType,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, property)
}

// UpdateProperty handles PUT /api/properties/:id. Identity, bookings
// and review aggregates cannot be changed through this route.
func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalidPropertyId", "invalid property ID format")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalidPayload", "invalid update payload")
		return
	}

	property, err := ctrl.PropertySvc.Update(id, services.PropertyUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Images:        req.Images,
		PricePerNight: req.PricePerNight,
		Location:      req.Location,
		Amenities:     req.Amenities,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		PropertyType:  req.PropertyType,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, property)
}

// DeleteProperty handles DELETE /api/properties/:id as a soft
// deactivate.
func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalidPropertyId", "invalid property ID format")
		return
	}

	if err := ctrl.PropertySvc.Deactivate(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"id":      id,
		"message": "property deactivated successfully",
	})
}
