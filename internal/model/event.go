package model

import "time"

// Event is a scheduled happening organized by a host, optionally bound to a venue.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OrganizerID string    `json:"organizerId"`
	VenueID     *string   `json:"venueId,omitempty"`
	Date        time.Time `json:"date"`
	Capacity    int       `json:"capacity"`
	TicketPrice float64   `json:"ticketPrice"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventCreateRequest is the API request body for publishing an event.
type EventCreateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	OrganizerID string  `json:"organizerId"`
	VenueID     *string `json:"venueId,omitempty"`
	Date        string  `json:"date"`
	Capacity    int     `json:"capacity"`
	TicketPrice float64 `json:"ticketPrice"`
}
