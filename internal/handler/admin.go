package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/middleware"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/service"
)

type AdminHandler struct {
	auditor *service.LedgerAuditor
}

func NewAdminHandler(auditor *service.LedgerAuditor) *AdminHandler {
	return &AdminHandler{auditor: auditor}
}

// Audit handles POST /api/admin/audit. It runs a full consistency sweep of
// the vote ledger on demand and reports how many hosts needed repair.
func (h *AdminHandler) Audit(c fiber.Ctx) error {
	repaired, err := h.auditor.Sweep(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Audit sweep failed")
	}

	return c.JSON(fiber.Map{"repaired": repaired})
}
