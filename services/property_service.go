package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rental-backend/events"
	"rental-backend/models"
	"rental-backend/storage"
	"rental-backend/utils"
)

// PropertyService owns listing CRUD and the search/filter surface.
type PropertyService struct {
	DB     *gorm.DB
	Cache  *storage.SearchCache
	Events *events.Publisher
	Now    func() time.Time
}

func NewPropertyService(db *gorm.DB, cache *storage.SearchCache, pub *events.Publisher) *PropertyService {
	return &PropertyService{DB: db, Cache: cache, Events: pub, Now: time.Now}
}

// SearchFilter holds the property search parameters. Nil/zero fields
// are not applied.
type SearchFilter struct {
	City         string
	State        string
	CheckIn      *time.Time
	CheckOut     *time.Time
	Guests       int
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType string
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

// sortColumns whitelists the sortable fields; anything else falls back
// to creation time.
var sortColumns = map[string]string{
	"pricePerNight": "price_per_night",
	"rating":        "rating",
	"reviewCount":   "review_count",
	"maxGuests":     "max_guests",
	"createdAt":     "created_at",
}

func (f *SearchFilter) cacheKey(page, limit int) string {
	minP, maxP := "", ""
	if f.MinPrice != nil {
		minP = fmt.Sprintf("%g", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		maxP = fmt.Sprintf("%g", *f.MaxPrice)
	}
	return fmt.Sprintf("search:%s|%s|%d|%s|%s|%s|%s|%s|%d|%d",
		strings.ToLower(f.City), strings.ToLower(f.State), f.Guests,
		minP, maxP, f.PropertyType, f.SortBy, f.SortOrder, page, limit)
}

// Search returns a page of active properties matching the filter.
// Bookings are never loaded here. Date-filtered searches bypass the
// cache: availability must reflect the current booking set, not a
// snapshot.
func (s *PropertyService) Search(filter SearchFilter) ([]models.Property, utils.Pagination, error) {
	page, limit := utils.ClampPage(filter.Page, filter.Limit, 12, 100)
	dateFiltered := filter.CheckIn != nil && filter.CheckOut != nil

	if !dateFiltered {
		if props, total, ok := s.Cache.Get(filter.cacheKey(page, limit)); ok {
			return props, utils.NewPagination(page, limit, total), nil
		}
	}

	query := s.DB.Model(&models.Property{}).Where("is_active = ?", true)

	if filter.City != "" {
		query = query.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(filter.City)+"%")
	}
	if filter.State != "" {
		query = query.Where("LOWER(state) LIKE ?", "%"+strings.ToLower(filter.State)+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price_per_night >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_per_night <= ?", *filter.MaxPrice)
	}
	if filter.Guests > 0 {
		query = query.Where("max_guests >= ?", filter.Guests)
	}
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}
	if dateFiltered {
		// Same half-open overlap predicate as the availability checker,
		// pushed into SQL: drop any property with a non-cancelled
		// booking overlapping the requested range.
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM bookings b WHERE b.property_id = properties.id AND b.status <> ? AND b.check_in < ? AND b.check_out > ?)",
			models.BookingStatusCancelled, *filter.CheckOut, *filter.CheckIn)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.Pagination{}, storageErr(err, "failed to count properties")
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	var properties []models.Property
	err := query.
		Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&properties).Error
	if err != nil {
		return nil, utils.Pagination{}, storageErr(err, "failed to list properties")
	}

	if !dateFiltered {
		s.Cache.Set(filter.cacheKey(page, limit), properties, total)
	}
	return properties, utils.NewPagination(page, limit, total), nil
}

// GetByID loads an active property with its bookings. Callers must
// reduce the bookings to {checkIn, checkOut, status} before rendering;
// guest identity never leaves the service boundary via this path.
func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	if err := s.DB.Preload("Bookings").First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("propertyNotFound", "property not found")
		}
		return nil, storageErr(err, "failed to load property")
	}
	if !property.IsActive {
		return nil, notFoundErr("propertyInactive", "property is not available")
	}
	return &property, nil
}

// PropertyInput carries the host-supplied fields for creating a
// listing.
type PropertyInput struct {
	Title         string
	Description   string
	Images        []string
	PricePerNight float64
	Location      models.Location
	HostID        string
	HostName      string
	HostAvatar    string
	Amenities     []string
	Bedrooms      int
	Bathrooms     int
	MaxGuests     int
	PropertyType  string
	Rating        float64
	ReviewCount   int
}

func (in *PropertyInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return validationErr("missingFields", "title is required")
	case strings.TrimSpace(in.Description) == "":
		return validationErr("missingFields", "description is required")
	case len(in.Images) == 0:
		return validationErr("missingFields", "at least one image is required")
	case strings.TrimSpace(in.HostID) == "" || strings.TrimSpace(in.HostName) == "":
		return validationErr("missingFields", "hostId and hostName are required")
	case len(in.Amenities) == 0:
		return validationErr("missingFields", "at least one amenity is required")
	}

	loc := in.Location
	if loc.City == "" || loc.State == "" || loc.Country == "" || loc.Address == "" {
		return validationErr("invalidLocation", "location must include city, state, country and address")
	}
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return validationErr("invalidLocation", "latitude must be in [-90,90] and longitude in [-180,180]")
	}

	if !models.IsValidPropertyType(in.PropertyType) {
		return validationErr("invalidPropertyType", "property type must be one of: apartment, house, villa, condo, cabin, loft, townhouse, studio")
	}
	if in.PricePerNight <= 0 {
		return validationErr("invalidPrice", "price per night must be positive")
	}
	if in.Bedrooms < 0 || in.Bathrooms < 0 {
		return validationErr("invalidRooms", "bedrooms and bathrooms must be non-negative")
	}
	if in.MaxGuests < 1 {
		return validationErr("invalidMaxGuests", "max guests must be at least 1")
	}
	if in.Rating < 0 || in.Rating > 5 || in.ReviewCount < 0 {
		return validationErr("invalidRating", "rating must be in [0,5] and review count non-negative")
	}
	return nil
}

// Create validates and persists a new listing.
func (s *PropertyService) Create(in PropertyInput) (*models.Property, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	images, err := json.Marshal(in.Images)
	if err != nil {
		return nil, storageErr(err, "failed to encode images")
	}
	amenities, err := json.Marshal(in.Amenities)
	if err != nil {
		return nil, storageErr(err, "failed to encode amenities")
	}

	property := models.Property{
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Images:        datatypes.JSON(images),
		PricePerNight: in.PricePerNight,
		City:          in.Location.City,
		State:         in.Location.State,
		Country:       in.Location.Country,
		Address:       in.Location.Address,
		Latitude:      in.Location.Latitude,
		Longitude:     in.Location.Longitude,
		HostID:        in.HostID,
		HostName:      in.HostName,
		HostAvatar:    in.HostAvatar,
		Amenities:     datatypes.JSON(amenities),
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		MaxGuests:     in.MaxGuests,
		PropertyType:  in.PropertyType,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		IsActive:      true,
	}

	if err := s.DB.Create(&property).Error; err != nil {
		return nil, storageErr(err, "failed to create property")
	}

	s.Events.PublishPropertyChange(events.ActionCreate, property.ID)
	return &property, nil
}

// PropertyUpdate holds the fields a host may change on an existing
// listing. Identity, timestamps, bookings and review aggregates are
// deliberately absent.
type PropertyUpdate struct {
	Title         *string
	Description   *string
	Images        []string
	PricePerNight *float64
	Location      *models.Location
	Amenities     []string
	Bedrooms      *int
	Bathrooms     *int
	MaxGuests     *int
	PropertyType  *string
	IsActive      *bool
}

// Update applies the supplied fields after validating them.
func (s *PropertyService) Update(id uint, upd PropertyUpdate) (*models.Property, error) {
	var property models.Property
	if err := s.DB.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("propertyNotFound", "property not found")
		}
		return nil, storageErr(err, "failed to load property")
	}

	changes := map[string]interface{}{}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, validationErr("missingFields", "title cannot be empty")
		}
		changes["title"] = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		changes["description"] = *upd.Description
	}
	if upd.Images != nil {
		images, err := json.Marshal(upd.Images)
		if err != nil {
			return nil, storageErr(err, "failed to encode images")
		}
		changes["images"] = datatypes.JSON(images)
	}
	if upd.PricePerNight != nil {
		if *upd.PricePerNight <= 0 {
			return nil, validationErr("invalidPrice", "price per night must be positive")
		}
		changes["price_per_night"] = *upd.PricePerNight
	}
	if upd.Location != nil {
		loc := *upd.Location
		if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
			return nil, validationErr("invalidLocation", "latitude must be in [-90,90] and longitude in [-180,180]")
		}
		changes["city"] = loc.City
		changes["state"] = loc.State
		changes["country"] = loc.Country
		changes["address"] = loc.Address
		changes["latitude"] = loc.Latitude
		changes["longitude"] = loc.Longitude
	}
	if upd.Amenities != nil {
		amenities, err := json.Marshal(upd.Amenities)
		if err != nil {
			return nil, storageErr(err, "failed to encode amenities")
		}
		changes["amenities"] = datatypes.JSON(amenities)
	}
	if upd.Bedrooms != nil {
		if *upd.Bedrooms < 0 {
			return nil, validationErr("invalidRooms", "bedrooms must be non-negative")
		}
		changes["bedrooms"] = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		if *upd.Bathrooms < 0 {
			return nil, validationErr("invalidRooms", "bathrooms must be non-negative")
		}
		changes["bathrooms"] = *upd.Bathrooms
	}
	if upd.MaxGuests != nil {
		if *upd.MaxGuests < 1 {
			return nil, validationErr("invalidMaxGuests", "max guests must be at least 1")
		}
		changes["max_guests"] = *upd.MaxGuests
	}
	if upd.PropertyType != nil {
		if !models.IsValidPropertyType(*upd.PropertyType) {
			return nil, validationErr("invalidPropertyType", "property type must be one of: apartment, house, villa, condo, cabin, loft, townhouse, studio")
		}
		changes["property_type"] = *upd.PropertyType
	}
	if upd.IsActive != nil {
		changes["is_active"] = *upd.IsActive
	}

	if len(changes) == 0 {
		return &property, nil
	}
	changes["updated_at"] = s.Now()

	if err := s.DB.Model(&property).Updates(changes).Error; err != nil {
		return nil, storageErr(err, "failed to update property")
	}

	s.Events.PublishPropertyChange(events.ActionUpdate, property.ID)
	return &property, nil
}

// Deactivate soft-deletes a listing by flipping is_active. It is
// refused while any confirmed booking still has nights ahead; past
// bookings are kept.
func (s *PropertyService) Deactivate(id uint) error {
	var property models.Property
	if err := s.DB.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("propertyNotFound", "property not found")
		}
		return storageErr(err, "failed to load property")
	}

	var activeFuture int64
	err := s.DB.Model(&models.Booking{}).
		Where("property_id = ? AND status = ? AND check_out > ?",
			id, models.BookingStatusConfirmed, s.Now()).
		Count(&activeFuture).Error
	if err != nil {
		return storageErr(err, "failed to check future bookings")
	}
	if activeFuture > 0 {
		return conflictErr("activeBookings",
			"cannot deactivate property with active future bookings, cancel them first")
	}

	err = s.DB.Model(&property).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": s.Now(),
	}).Error
	if err != nil {
		return storageErr(err, "failed to deactivate property")
	}

	s.Events.PublishPropertyChange(events.ActionDelete, property.ID)
	return nil
}
