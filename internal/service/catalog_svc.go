package service

import (
	"context"
	"errors"
	"time"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

// ErrWrongRole is returned when an event names a provider as organizer or
// a venue names an organizer as provider.
var ErrWrongRole = errors.New("service: host has the wrong role for this resource")

// CatalogService handles event and venue creation.
type CatalogService struct {
	store store.Store
}

func NewCatalogService(st store.Store) *CatalogService {
	return &CatalogService{store: st}
}

// CreateEvent publishes an event after checking the organizer exists and
// actually is an organizer.
func (s *CatalogService) CreateEvent(ctx context.Context, req model.EventCreateRequest) (model.Event, error) {
	organizer, err := s.store.HostByID(ctx, req.OrganizerID)
	if err != nil {
		return model.Event{}, err
	}
	if organizer.Role != model.RoleOrganizer {
		return model.Event{}, ErrWrongRole
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return model.Event{}, err
	}

	return s.store.CreateEvent(ctx, model.Event{
		Title:       req.Title,
		Description: req.Description,
		OrganizerID: req.OrganizerID,
		VenueID:     req.VenueID,
		Date:        date,
		Capacity:    req.Capacity,
		TicketPrice: req.TicketPrice,
	})
}

// CreateVenue lists a venue after checking the provider's role.
func (s *CatalogService) CreateVenue(ctx context.Context, req model.VenueCreateRequest) (model.Venue, error) {
	provider, err := s.store.HostByID(ctx, req.ProviderID)
	if err != nil {
		return model.Venue{}, err
	}
	if provider.Role != model.RoleProvider {
		return model.Venue{}, ErrWrongRole
	}

	return s.store.CreateVenue(ctx, model.Venue{
		Name:         req.Name,
		Description:  req.Description,
		Location:     req.Location,
		ProviderID:   req.ProviderID,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
	})
}

// ErrBadDate is returned for event dates that are neither a calendar date
// nor an RFC 3339 timestamp.
var ErrBadDate = errors.New("service: event date must be YYYY-MM-DD or RFC 3339")

func parseEventDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadDate
}
