package handlers

import (
	"errors"
	"log/slog"

	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/middleware"
	"github.com/geotracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.auth.Register(&req, c.IP())
	if err != nil {
		if errors.Is(err, services.ErrUserTaken) {
			return fail(c, fiber.StatusConflict, err.Error())
		}
		slog.Error("registration failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Registration failed")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.auth.Login(&req, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return fail(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, services.ErrAccountDeactivated):
			return fail(c, fiber.StatusForbidden, err.Error())
		}
		slog.Error("login failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Login failed")
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	resp, err := h.auth.Profile(user.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("profile lookup failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	return c.JSON(resp)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.auth.UpdateProfile(user.ID, &req, c.IP()); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return fail(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("profile update failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return c.JSON(dto.MessageResponse{Message: "Profile updated"})
}
