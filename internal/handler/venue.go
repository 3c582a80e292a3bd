package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/middleware"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/service"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

type VenueHandler struct {
	listing *service.ListingService
	catalog *service.CatalogService
}

func NewVenueHandler(listing *service.ListingService, catalog *service.CatalogService) *VenueHandler {
	return &VenueHandler{listing: listing, catalog: catalog}
}

// List handles GET /api/venues
func (h *VenueHandler) List(c fiber.Ctx) error {
	page, err := h.listing.ListVenues(c.Context(), listParams(c,
		"search", "min_capacity", "max_capacity", "min_price", "max_price",
		"provider_id", "ordering", "page", "page_size"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list venues")
	}

	recordList("venues", len(page.IgnoredFilters))
	return c.JSON(page)
}

// Create handles POST /api/venues
func (h *VenueHandler) Create(c fiber.Ctx) error {
	var req model.VenueCreateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	name, errMsg := middleware.ValidateName(req.Name, "name")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Name = name

	providerID, errMsg := middleware.ValidateEntityID(req.ProviderID, "providerId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.ProviderID = providerID

	venue, err := h.catalog.CreateVenue(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTargetNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Provider not found")
		case errors.Is(err, service.ErrWrongRole):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "WRONG_ROLE", "providerId must reference a provider host")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create venue")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(venue)
}
