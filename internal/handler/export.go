package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/middleware"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/service"
)

type ExportHandler struct {
	svc *service.HostService
}

func NewExportHandler(svc *service.HostService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export handles GET /api/directory/export
// Serves a full snapshot of the host directory for bulk consumers.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	dump, err := h.svc.Export(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export directory")
	}

	c.Set("Content-Disposition", `attachment; filename=hosts-directory.json`)
	return c.JSON(dump)
}
