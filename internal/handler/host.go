package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/middleware"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/service"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

type HostHandler struct {
	listing *service.ListingService
	hosts   *service.HostService
}

func NewHostHandler(listing *service.ListingService, hosts *service.HostService) *HostHandler {
	return &HostHandler{listing: listing, hosts: hosts}
}

// List handles GET /api/hosts
func (h *HostHandler) List(c fiber.Ctx) error {
	page, err := h.listing.ListHosts(c.Context(), listParams(c,
		"search", "role", "min_score", "min_votes", "ordering", "page", "page_size"))
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list hosts")
	}

	recordList("hosts", len(page.IgnoredFilters))
	return c.JSON(page)
}

// GetByID handles GET /api/hosts/:hostId
func (h *HostHandler) GetByID(c fiber.Ctx) error {
	hostID, errMsg := middleware.ValidateEntityID(c.Params("hostId"), "hostId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.hosts.Lookup(c.Context(), hostID)
	if err != nil {
		if errors.Is(err, store.ErrTargetNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Host not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup host")
	}

	return c.JSON(resp)
}

// Create handles POST /api/hosts
func (h *HostHandler) Create(c fiber.Ctx) error {
	var req model.HostCreateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	fullName, errMsg := middleware.ValidateName(req.FullName, "fullName")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.FullName = fullName

	email, errMsg := middleware.ValidateEmail(req.Email)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Email = email

	role, errMsg := middleware.ValidateRole(req.Role)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Role = role

	host, err := h.hosts.Create(c.Context(), req)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create host")
	}

	return c.Status(fiber.StatusCreated).JSON(host)
}
