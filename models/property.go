package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Valid property types, mirrored in the listing form on the frontend.
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeHouse     = "house"
	PropertyTypeVilla     = "villa"
	PropertyTypeCondo     = "condo"
	PropertyTypeCabin     = "cabin"
	PropertyTypeLoft      = "loft"
	PropertyTypeTownhouse = "townhouse"
	PropertyTypeStudio    = "studio"
)

var propertyTypes = map[string]bool{
	PropertyTypeApartment: true,
	PropertyTypeHouse:     true,
	PropertyTypeVilla:     true,
	PropertyTypeCondo:     true,
	PropertyTypeCabin:     true,
	PropertyTypeLoft:      true,
	PropertyTypeTownhouse: true,
	PropertyTypeStudio:    true,
}

func IsValidPropertyType(t string) bool {
	return propertyTypes[t]
}

// Property is a rentable listing. Bookings live in their own table and
// hang off the property via PropertyID; list/search queries must never
// preload them (guest ids are private).
type Property struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string `gorm:"size:200" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Ordered image URL list, stored as a JSON column.
	Images datatypes.JSON `gorm:"column:images" json:"images"`

	PricePerNight float64 `gorm:"column:price_per_night" json:"pricePerNight"`

	City      string  `gorm:"size:100;index:idx_properties_city_state" json:"city"`
	State     string  `gorm:"size:100;index:idx_properties_city_state" json:"state"`
	Country   string  `gorm:"size:100" json:"country"`
	Address   string  `gorm:"size:255" json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	HostID     string `gorm:"column:host_id;size:64;index" json:"hostId"`
	HostName   string `gorm:"column:host_name;size:120" json:"hostName"`
	HostAvatar string `gorm:"column:host_avatar;size:255" json:"hostAvatar"`

	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities"`

	Bedrooms  int `json:"bedrooms"`
	Bathrooms int `json:"bathrooms"`
	MaxGuests int `gorm:"column:max_guests;index" json:"maxGuests"`

	PropertyType string `gorm:"column:property_type;size:32;index" json:"propertyType"`

	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"column:review_count;default:0" json:"reviewCount"`

	// No column default on purpose: a default would make gorm drop a
	// false value from struct inserts. Writers set the flag explicitly.
	IsActive bool `gorm:"column:is_active" json:"isActive"`

	Bookings []Booking `gorm:"foreignKey:PropertyID" json:"bookings,omitempty"`
}

// ImageList decodes the JSON images column. Bad or empty payloads come
// back as an empty slice so callers never have to nil-check.
func (p *Property) ImageList() []string {
	var out []string
	if len(p.Images) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(p.Images, &out); err != nil {
		return []string{}
	}
	return out
}

// FirstImage returns the cover image URL, or "" when none is set.
func (p *Property) FirstImage() string {
	imgs := p.ImageList()
	if len(imgs) == 0 {
		return ""
	}
	return imgs[0]
}

// AmenityList decodes the JSON amenities column.
func (p *Property) AmenityList() []string {
	var out []string
	if len(p.Amenities) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(p.Amenities, &out); err != nil {
		return []string{}
	}
	return out
}

// Location is the denormalized location block used in API payloads.
type Location struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *Property) LocationInfo() Location {
	return Location{
		City:      p.City,
		State:     p.State,
		Country:   p.Country,
		Address:   p.Address,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}
