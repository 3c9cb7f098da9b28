package handlers

import (
	"errors"
	"log/slog"

	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/middleware"
	"github.com/geotracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List()
	if err != nil {
		slog.Error("user list failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to list users")
	}
	return c.JSON(users)
}

func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.users.UpdateStatus(id, *req.IsActive, admin.ID, c.IP()); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("user status update failed", "error", err, "user_id", id)
		return fail(c, fiber.StatusInternalServerError, "Failed to update user status")
	}
	return c.JSON(dto.MessageResponse{Message: "User status updated"})
}

func (h *UserHandler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.users.Leaderboard(c.QueryInt("limit", 10))
	if err != nil {
		slog.Error("leaderboard query failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to load leaderboard")
	}
	if entries == nil {
		entries = []dto.LeaderboardEntry{}
	}
	return c.JSON(dto.LeaderboardResponse{Success: true, Leaderboard: entries})
}
