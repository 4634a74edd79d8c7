package config

import (
	"encoding/json"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rental-backend/models"
)

func jsonList(items ...string) datatypes.JSON {
	payload, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(payload)
}

// SeedDatabase inserts sample listings when the properties table is
// empty. Safe to run on every start.
func SeedDatabase(db *gorm.DB) {
	var count int64
	db.Model(&models.Property{}).Count(&count)
	if count > 0 {
		log.Println("properties already seeded")
		return
	}

	properties := []models.Property{
		{
			Title:       "Cozy Downtown Loft with Skyline Views",
			Description: "Beautiful modern loft in the heart of downtown with stunning city skyline views. Features exposed brick walls, high ceilings, and floor-to-ceiling windows. Walking distance to restaurants, shopping, and public transportation.",
			Images: jsonList(
				"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800",
				"https://images.unsplash.com/photo-1502672023488-70e25813eb80?w=800",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800",
			),
			PricePerNight: 125,
			City:          "New York",
			State:         "New York",
			Country:       "United States",
			Address:       "456 Broadway St, New York, NY 10013",
			Latitude:      40.7128,
			Longitude:     -74.0060,
			HostID:        "host_001",
			HostName:      "Sarah Johnson",
			HostAvatar:    "https://images.unsplash.com/photo-1494790108755-2616b9593a9c?w=150",
			Amenities:     jsonList("WiFi", "Kitchen", "Washer", "Dryer", "TV", "Air conditioning", "Elevator", "Gym"),
			Bedrooms:      1,
			Bathrooms:     1,
			MaxGuests:     2,
			PropertyType:  models.PropertyTypeLoft,
			Rating:        4.8,
			ReviewCount:   127,
			IsActive:      true,
		},
		{
			Title:       "Beachfront Villa with Private Pool",
			Description: "Stunning oceanfront villa with private pool and direct beach access. This luxurious 4-bedroom property features panoramic ocean views, a fully equipped gourmet kitchen, and spacious outdoor entertaining areas.",
			Images: jsonList(
				"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800",
				"https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800",
				"https://images.unsplash.com/photo-1564013799919-ab600027ffc6?w=800",
			),
			PricePerNight: 350,
			City:          "Miami Beach",
			State:         "Florida",
			Country:       "United States",
			Address:       "789 Ocean Drive, Miami Beach, FL 33139",
			Latitude:      25.7617,
			Longitude:     -80.1918,
			HostID:        "host_002",
			HostName:      "Carlos Rodriguez",
			HostAvatar:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150",
			Amenities:     jsonList("WiFi", "Kitchen", "Pool", "Beach access", "Parking", "TV", "Air conditioning", "BBQ grill", "Hot tub"),
			Bedrooms:      4,
			Bathrooms:     3,
			MaxGuests:     8,
			PropertyType:  models.PropertyTypeVilla,
			Rating:        4.9,
			ReviewCount:   89,
			IsActive:      true,
		},
		{
			Title:       "Mountain Cabin Retreat",
			Description: "Rustic mountain cabin surrounded by towering pines and hiking trails. Features a stone fireplace, wraparound deck, and hot tub with mountain views. Close to skiing in winter and hiking in summer.",
			Images: jsonList(
				"https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=800",
				"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800",
			),
			PricePerNight: 180,
			City:          "Aspen",
			State:         "Colorado",
			Country:       "United States",
			Address:       "123 Pine Ridge Road, Aspen, CO 81611",
			Latitude:      39.1911,
			Longitude:     -106.8175,
			HostID:        "host_003",
			HostName:      "Emily Chen",
			HostAvatar:    "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150",
			Amenities:     jsonList("WiFi", "Kitchen", "Fireplace", "Hot tub", "Parking", "TV", "Heating", "Deck"),
			Bedrooms:      3,
			Bathrooms:     2,
			MaxGuests:     6,
			PropertyType:  models.PropertyTypeCabin,
			Rating:        4.7,
			ReviewCount:   203,
			IsActive:      true,
		},
		{
			Title:       "Historic Brownstone Apartment",
			Description: "Charming 2-bedroom apartment in a beautifully restored 19th-century brownstone. Original hardwood floors, ornate moldings, and period details combined with modern amenities.",
			Images: jsonList(
				"https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800",
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=800",
			),
			PricePerNight: 95,
			City:          "Boston",
			State:         "Massachusetts",
			Country:       "United States",
			Address:       "321 Commonwealth Ave, Boston, MA 02115",
			Latitude:      42.3601,
			Longitude:     -71.0589,
			HostID:        "host_004",
			HostName:      "Michael O'Brien",
			HostAvatar:    "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150",
			Amenities:     jsonList("WiFi", "Kitchen", "Washer", "TV", "Heating", "Workspace", "Coffee maker"),
			Bedrooms:      2,
			Bathrooms:     1,
			MaxGuests:     4,
			PropertyType:  models.PropertyTypeApartment,
			Rating:        4.6,
			ReviewCount:   156,
			IsActive:      true,
		},
		{
			Title:       "Modern Studio in Arts District",
			Description: "Sleek and stylish studio apartment in the vibrant Arts District. Contemporary furnishings, a murphy bed, and an efficient kitchen. Galleries, theaters, and trendy restaurants nearby.",
			Images: jsonList(
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800",
				"https://images.unsplash.com/photo-1536376072261-38c75010e6c9?w=800",
			),
			PricePerNight: 85,
			City:          "Los Angeles",
			State:         "California",
			Country:       "United States",
			Address:       "555 Arts District Blvd, Los Angeles, CA 90013",
			Latitude:      34.0522,
			Longitude:     -118.2437,
			HostID:        "host_005",
			HostName:      "Jessica Park",
			HostAvatar:    "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=150",
			Amenities:     jsonList("WiFi", "Kitchen", "TV", "Air conditioning", "Workspace"),
			Bedrooms:      0,
			Bathrooms:     1,
			MaxGuests:     2,
			PropertyType:  models.PropertyTypeStudio,
			Rating:        4.5,
			ReviewCount:   74,
			IsActive:      true,
		},
	}

	if err := db.Create(&properties).Error; err != nil {
		log.Printf("warning: failed to seed properties: %v", err)
		return
	}
	log.Printf("seeded %d properties", len(properties))
}
