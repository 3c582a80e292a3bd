package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/middleware"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/service"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

type EventHandler struct {
	listing *service.ListingService
	catalog *service.CatalogService
}

func NewEventHandler(listing *service.ListingService, catalog *service.CatalogService) *EventHandler {
	return &EventHandler{listing: listing, catalog: catalog}
}

// List handles GET /api/events
func (h *EventHandler) List(c fiber.Ctx) error {
	page, err := h.listing.ListEvents(c.Context(), listParams(c,
		"search", "min_date", "max_date", "min_capacity", "max_capacity",
		"max_price", "organizer_id", "ordering", "page", "page_size"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list events")
	}

	recordList("events", len(page.IgnoredFilters))
	return c.JSON(page)
}

// Create handles POST /api/events
func (h *EventHandler) Create(c fiber.Ctx) error {
	var req model.EventCreateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	title, errMsg := middleware.ValidateName(req.Title, "title")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Title = title

	organizerID, errMsg := middleware.ValidateEntityID(req.OrganizerID, "organizerId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.OrganizerID = organizerID

	event, err := h.catalog.CreateEvent(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTargetNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Organizer not found")
		case errors.Is(err, service.ErrWrongRole):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "WRONG_ROLE", "organizerId must reference an organizer host")
		case errors.Is(err, service.ErrBadDate):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "date must be YYYY-MM-DD or RFC 3339")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create event")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// listParams collects the raw values of the named query parameters for the
// query normalizer. Keys with blank values are included as-is; the
// normalizer treats them as absent.
func listParams(c fiber.Ctx, keys ...string) map[string]string {
	raw := make(map[string]string, len(keys))
	for _, k := range keys {
		raw[k] = fiber.Query[string](c, k)
	}
	return raw
}
