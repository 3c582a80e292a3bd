package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mulham-salem/Event-Management-System-sub000/internal/middleware"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/model"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/service"
	"github.com/mulham-salem/Event-Management-System-sub000/internal/store"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Cast handles POST /api/votes
func (h *VoteHandler) Cast(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	voterID, errMsg := middleware.ValidateVoterID(req.VoterID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VoterID = voterID

	targetID, errMsg := middleware.ValidateEntityID(req.TargetID, "targetId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.TargetID = targetID

	if errMsg := middleware.ValidateVoteValue(req.Value); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Cast(c.Context(), req)
	if err != nil {
		if errors.Is(err, store.ErrTargetNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Vote target not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cast vote")
	}

	recordVote(resp.Transition)
	return c.JSON(resp)
}

// Retract handles DELETE /api/votes/:voteId
func (h *VoteHandler) Retract(c fiber.Ctx) error {
	voteID, errMsg := middleware.ValidateEntityID(c.Params("voteId"), "voteId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Retract(c.Context(), voteID); err != nil {
		if errors.Is(err, store.ErrVoteNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "VOTE_NOT_FOUND", "Vote not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retract vote")
	}

	recordVote("retracted")
	return c.JSON(fiber.Map{"success": true})
}

// GetOwn handles GET /api/votes?voterId=X&targetId=Y, letting a client
// restore its current vote state for a host profile.
func (h *VoteHandler) GetOwn(c fiber.Ctx) error {
	voterID, errMsg := middleware.ValidateVoterID(fiber.Query[string](c, "voterId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	targetID, errMsg := middleware.ValidateEntityID(fiber.Query[string](c, "targetId"), "targetId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	vote, err := h.svc.Lookup(c.Context(), voterID, targetID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup vote")
	}
	if vote == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "VOTE_NOT_FOUND", "No active vote for this voter and target")
	}

	return c.JSON(vote)
}
