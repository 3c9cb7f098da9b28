package handlers

import (
	"log/slog"

	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/middleware"
	"github.com/geotracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Homepage(c *fiber.Ctx) error {
	stats, err := h.stats.Homepage()
	if err != nil {
		slog.Error("homepage stats failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to load statistics")
	}
	return c.JSON(dto.HomepageStatsResponse{Success: true, Stats: *stats})
}

func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	stats, err := h.stats.Dashboard(user.ID)
	if err != nil {
		slog.Error("dashboard stats failed", "error", err, "user_id", user.ID)
		return fail(c, fiber.StatusInternalServerError, "Failed to load statistics")
	}
	return c.JSON(dto.DashboardStatsResponse{Success: true, Stats: *stats})
}
