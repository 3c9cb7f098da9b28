package handlers

import (
	"errors"
	"log/slog"

	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/middleware"
	"github.com/geotracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) Add(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	reportID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Add(reportID, user.ID, &req, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrParentNotFound), errors.Is(err, services.ErrEmptyContent):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("comment creation failed", "error", err, "report_id", reportID)
		return fail(c, fiber.StatusInternalServerError, "Failed to add comment")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateCommentResponse{
		Message:   "Comment added",
		CommentID: comment.ID,
	})
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	reportID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report id")
	}

	comments, err := h.comments.List(reportID)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("comment list failed", "error", err, "report_id", reportID)
		return fail(c, fiber.StatusInternalServerError, "Failed to load comments")
	}
	if comments == nil {
		comments = []dto.CommentInfo{}
	}
	return c.JSON(comments)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	commentID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid comment id")
	}

	var req dto.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.comments.Update(commentID, user.ID, &req, c.IP()); err != nil {
		switch {
		case errors.Is(err, services.ErrCommentNotFound):
			return fail(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrEmptyContent):
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("comment update failed", "error", err, "comment_id", commentID)
		return fail(c, fiber.StatusInternalServerError, "Failed to update comment")
	}
	return c.JSON(dto.MessageResponse{Message: "Comment updated"})
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	commentID, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid comment id")
	}

	if err := h.comments.Delete(commentID, user.ID, c.IP()); err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("comment deletion failed", "error", err, "comment_id", commentID)
		return fail(c, fiber.StatusInternalServerError, "Failed to delete comment")
	}
	return c.JSON(dto.MessageResponse{Message: "Comment deleted"})
}
