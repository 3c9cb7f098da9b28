package handlers

import (
	"errors"
	"log/slog"

	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/middleware"
	"github.com/geotracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler(votes *services.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

func (h *VoteHandler) Cast(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	reportID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.votes.Cast(reportID, user.ID, &req, c.IP()); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("vote failed", "error", err, "report_id", reportID)
		return fail(c, fiber.StatusInternalServerError, "Failed to record vote")
	}
	return c.JSON(dto.MessageResponse{Message: "Vote recorded"})
}

func (h *VoteHandler) List(c *fiber.Ctx) error {
	reportID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report id")
	}

	resp, err := h.votes.List(reportID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("vote list failed", "error", err, "report_id", reportID)
		return fail(c, fiber.StatusInternalServerError, "Failed to load votes")
	}
	return c.JSON(resp)
}

func (h *VoteHandler) Summary(c *fiber.Ctx) error {
	rows, err := h.votes.Summary()
	if err != nil {
		slog.Error("voting summary failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to load voting summary")
	}
	if rows == nil {
		rows = []dto.ReportVoteSummary{}
	}
	return c.JSON(dto.VotingSummaryResponse{Summary: rows})
}

func (h *VoteHandler) Remove(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	voteID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid vote id")
	}

	if err := h.votes.Remove(voteID, user.ID, c.IP()); err != nil {
		if errors.Is(err, services.ErrVoteNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("vote removal failed", "error", err, "vote_id", voteID)
		return fail(c, fiber.StatusInternalServerError, "Failed to remove vote")
	}
	return c.JSON(dto.MessageResponse{Message: "Vote removed"})
}
