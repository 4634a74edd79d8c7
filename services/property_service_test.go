package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rental-backend/models"
	"rental-backend/storage"
)

func newPropertyService(db *gorm.DB) *PropertyService {
	svc := NewPropertyService(db, nil, nil)
	svc.Now = func() time.Time { return testNow }
	return svc
}

func float(v float64) *float64 { return &v }
func str(v string) *string     { return &v }

func seedSearchProperties(t *testing.T, db *gorm.DB) (models.Property, models.Property, models.Property) {
	t.Helper()

	miami := createTestProperty(t, db, func(p *models.Property) {
		p.Title = "Miami Villa"
		p.PropertyType = models.PropertyTypeVilla
		p.PricePerNight = 350
		p.MaxGuests = 8
	})
	denver := createTestProperty(t, db, func(p *models.Property) {
		p.Title = "Denver Cabin"
		p.City = "Denver"
		p.State = "Colorado"
		p.PropertyType = models.PropertyTypeCabin
		p.PricePerNight = 120
		p.MaxGuests = 4
	})
	inactive := createTestProperty(t, db, func(p *models.Property) {
		p.Title = "Retired Listing"
		p.City = "Denver"
		p.State = "Colorado"
		p.IsActive = false
	})
	return miami, denver, inactive
}

func TestSearchFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)
	miami, denver, _ := seedSearchProperties(t, db)

	all, pagination, err := svc.Search(SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2, "inactive listings never appear")
	assert.Equal(t, int64(2), pagination.Total)

	byCity, _, err := svc.Search(SearchFilter{City: "denver"})
	require.NoError(t, err)
	require.Len(t, byCity, 1)
	assert.Equal(t, denver.ID, byCity[0].ID)

	byGuests, _, err := svc.Search(SearchFilter{Guests: 6})
	require.NoError(t, err)
	require.Len(t, byGuests, 1)
	assert.Equal(t, miami.ID, byGuests[0].ID)

	byPrice, _, err := svc.Search(SearchFilter{MinPrice: float(100), MaxPrice: float(200)})
	require.NoError(t, err)
	require.Len(t, byPrice, 1)
	assert.Equal(t, denver.ID, byPrice[0].ID)

	byType, _, err := svc.Search(SearchFilter{PropertyType: models.PropertyTypeVilla})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, miami.ID, byType[0].ID)

	nothing, pagination, err := svc.Search(SearchFilter{City: "Tokyo"})
	require.NoError(t, err)
	assert.Empty(t, nothing)
	assert.Equal(t, int64(0), pagination.Total)
}

func TestSearchDateAvailability(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)
	bookings := newBookingService(db)
	miami, denver, _ := seedSearchProperties(t, db)

	booked, _, err := bookings.CreateBooking(miami.ID, "guest_1", futureDay(10), futureDay(15), 2)
	require.NoError(t, err)

	checkIn, checkOut := futureDay(12), futureDay(14)
	available, _, err := svc.Search(SearchFilter{CheckIn: &checkIn, CheckOut: &checkOut})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, denver.ID, available[0].ID)

	// Back-to-back with the existing stay, both listings are free.
	checkIn, checkOut = futureDay(15), futureDay(18)
	available, _, err = svc.Search(SearchFilter{CheckIn: &checkIn, CheckOut: &checkOut})
	require.NoError(t, err)
	assert.Len(t, available, 2)

	// A cancelled booking stops blocking the dates.
	_, err = bookings.UpdateStatus(booked.ID, models.BookingStatusCancelled)
	require.NoError(t, err)
	checkIn, checkOut = futureDay(12), futureDay(14)
	available, _, err = svc.Search(SearchFilter{CheckIn: &checkIn, CheckOut: &checkOut})
	require.NoError(t, err)
	assert.Len(t, available, 2)
}

func TestSearchSortFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)
	seedSearchProperties(t, db)

	asc, _, err := svc.Search(SearchFilter{SortBy: "pricePerNight", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.True(t, asc[0].PricePerNight <= asc[1].PricePerNight)

	// Unknown sort fields fall back instead of reaching the database.
	results, _, err := svc.Search(SearchFilter{SortBy: "title; DROP TABLE properties"})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchCaching(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)
	svc.Cache = storage.NewSearchCache("")
	seedSearchProperties(t, db)

	first, _, err := svc.Search(SearchFilter{City: "Denver"})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Flip the row under the cache; the cached page is served as-is.
	require.NoError(t, db.Model(&models.Property{}).
		Where("id = ?", first[0].ID).
		Update("is_active", false).Error)

	cached, _, err := svc.Search(SearchFilter{City: "Denver"})
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	// Date-filtered searches always hit the database.
	checkIn, checkOut := futureDay(10), futureDay(12)
	fresh, _, err := svc.Search(SearchFilter{City: "Denver", CheckIn: &checkIn, CheckOut: &checkOut})
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)
	bookings := newBookingService(db)
	property := createTestProperty(t, db)

	_, _, err := bookings.CreateBooking(property.ID, "guest_1", futureDay(10), futureDay(12), 2)
	require.NoError(t, err)

	loaded, err := svc.GetByID(property.ID)
	require.NoError(t, err)
	assert.Equal(t, property.Title, loaded.Title)
	assert.Len(t, loaded.Bookings, 1)

	_, err = svc.GetByID(9999)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestInactivePropertyInsertsInactive(t *testing.T) {
	db := setupTestDB(t)
	property := createTestProperty(t, db, func(p *models.Property) { p.IsActive = false })

	// A false flag must survive the struct insert; a column default
	// would silently flip it back to active.
	var stored models.Property
	require.NoError(t, db.First(&stored, property.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestGetByIDInactive(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)
	property := createTestProperty(t, db, func(p *models.Property) { p.IsActive = false })

	_, err := svc.GetByID(property.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "propertyInactive", AsServiceError(err).Code)
}

func validInput() PropertyInput {
	return PropertyInput{
		Title:         "New Listing",
		Description:   "Freshly created",
		Images:        []string{"https://example.com/a.jpg"},
		PricePerNight: 150,
		Location: models.Location{
			City: "Austin", State: "Texas", Country: "United States",
			Address: "42 Main St", Latitude: 30.26, Longitude: -97.74,
		},
		HostID:       "host_9",
		HostName:     "Host Nine",
		Amenities:    []string{"WiFi", "Kitchen"},
		Bedrooms:     2,
		Bathrooms:    2,
		MaxGuests:    4,
		PropertyType: models.PropertyTypeHouse,
	}
}

func TestCreateProperty(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)

	property, err := svc.Create(validInput())
	require.NoError(t, err)
	assert.NotZero(t, property.ID)
	assert.True(t, property.IsActive)
	assert.Equal(t, []string{"WiFi", "Kitchen"}, property.AmenityList())
	assert.Equal(t, "Austin", property.City)
}

func TestCreatePropertyValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)

	cases := []struct {
		name   string
		mutate func(*PropertyInput)
	}{
		{"empty title", func(in *PropertyInput) { in.Title = "  " }},
		{"no images", func(in *PropertyInput) { in.Images = nil }},
		{"no amenities", func(in *PropertyInput) { in.Amenities = nil }},
		{"bad property type", func(in *PropertyInput) { in.PropertyType = "castle" }},
		{"zero price", func(in *PropertyInput) { in.PricePerNight = 0 }},
		{"zero max guests", func(in *PropertyInput) { in.MaxGuests = 0 }},
		{"latitude out of range", func(in *PropertyInput) { in.Location.Latitude = 91 }},
		{"longitude out of range", func(in *PropertyInput) { in.Location.Longitude = -181 }},
		{"missing location city", func(in *PropertyInput) { in.Location.City = "" }},
		{"rating above five", func(in *PropertyInput) { in.Rating = 5.1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(in)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestUpdateProperty(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)
	property := createTestProperty(t, db)

	updated, err := svc.Update(property.ID, PropertyUpdate{
		Title:         str("Renamed House"),
		PricePerNight: float(175),
	})
	require.NoError(t, err)

	var stored models.Property
	require.NoError(t, db.First(&stored, updated.ID).Error)
	assert.Equal(t, "Renamed House", stored.Title)
	assert.Equal(t, 175.0, stored.PricePerNight)

	_, err = svc.Update(property.ID, PropertyUpdate{Title: str("  ")})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Update(property.ID, PropertyUpdate{PricePerNight: float(-5)})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Update(9999, PropertyUpdate{Title: str("Ghost")})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDeactivateProperty(t *testing.T) {
	db := setupTestDB(t)
	svc := newPropertyService(db)
	bookings := newBookingService(db)
	property := createTestProperty(t, db)

	booking, _, err := bookings.CreateBooking(property.ID, "guest_1", futureDay(10), futureDay(15), 2)
	require.NoError(t, err)
	_, err = bookings.UpdateStatus(booking.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)

	// A confirmed future stay blocks deactivation.
	err = svc.Deactivate(property.ID)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "activeBookings", AsServiceError(err).Code)

	_, err = bookings.UpdateStatus(booking.ID, models.BookingStatusCancelled)
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(property.ID))

	_, err = svc.GetByID(property.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = svc.Deactivate(9999)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
