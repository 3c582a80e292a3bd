package model

import "time"

// Venue is a rentable space offered by a provider host.
type Venue struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"`
	ProviderID   string    `json:"providerId"`
	Capacity     int       `json:"capacity"`
	PricePerHour float64   `json:"pricePerHour"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VenueCreateRequest is the API request body for listing a venue.
type VenueCreateRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Location     string  `json:"location,omitempty"`
	ProviderID   string  `json:"providerId"`
	Capacity     int     `json:"capacity"`
	PricePerHour float64 `json:"pricePerHour"`
}
