package handlers

import (
	"errors"
	"log/slog"
	"math"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/middleware"
	"github.com/geotracker/backend/internal/services"
	"github.com/geotracker/backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// parseReportQuery validates the bounding-box query string. All four
// coordinates are mandatory finite floats; time is a mandatory unix
// integer unless show_all=1. Malformed input is rejected, never
// defaulted.
func parseReportQuery(c *fiber.Ctx) (services.ReportQuery, error) {
	var q services.ReportQuery

	coords := []struct {
		name string
		dst  *float64
	}{
		{"latmin", &q.LatMin},
		{"lonmin", &q.LonMin},
		{"latmax", &q.LatMax},
		{"lonmax", &q.LonMax},
	}
	for _, coord := range coords {
		raw := c.Query(coord.name)
		if raw == "" {
			return q, errors.New("missing required parameter: " + coord.name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return q, errors.New("invalid value for parameter: " + coord.name)
		}
		*coord.dst = v
	}

	q.ShowAll = c.Query("show_all") == "1"
	if !q.ShowAll {
		raw := c.Query("time")
		if raw == "" {
			return q, errors.New("missing required parameter: time")
		}
		unix, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, errors.New("invalid value for parameter: time")
		}
		q.Time = time.Unix(unix, 0).UTC()
	}

	q.Status = c.Query("status")

	if raw := c.Query("type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return q, errors.New("invalid value for parameter: type_id")
		}
		q.TypeID = &id
	}

	return q, nil
}

func (h *ReportHandler) Query(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	rows, err := h.reports.Query(q)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		slog.Error("report query failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to query reports")
	}
	if rows == nil {
		rows = []dto.ReportRow{}
	}
	return c.JSON(rows)
}

func (h *ReportHandler) ListMine(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	rows, err := h.reports.ListMine(user.ID)
	if err != nil {
		slog.Error("my-reports query failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to query reports")
	}
	if rows == nil {
		rows = []dto.ReportRow{}
	}
	return c.JSON(rows)
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report id")
	}

	detail, err := h.reports.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return fail(c, fiber.StatusNotFound, err.Error())
		}
		slog.Error("report lookup failed", "error", err, "report_id", id)
		return fail(c, fiber.StatusInternalServerError, "Failed to load report")
	}
	return c.JSON(detail)
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var userID *uuid.UUID
	if user, ok := middleware.CurrentUser(c); ok {
		userID = &user.ID
	}

	report, err := h.reports.Create(c.Context(), userID, &req, formPhoto(c), c.IP())
	if err != nil {
		return h.mutationError(c, err, "report creation failed")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{
		Message:  "Report created successfully",
		ReportID: report.ID,
	})
}

func (h *ReportHandler) Edit(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var req dto.EditReportRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.reports.Edit(c.Context(), id, user.ID, &req, formPhoto(c), c.IP()); err != nil {
		return h.mutationError(c, err, "report edit failed")
	}
	return c.JSON(dto.MessageResponse{Message: "Report updated"})
}

func (h *ReportHandler) UpdateStatus(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.reports.UpdateStatus(id, user.ID, req.Status, c.IP()); err != nil {
		return h.mutationError(c, err, "status update failed")
	}
	return c.JSON(dto.MessageResponse{Message: "Status updated"})
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid report id")
	}

	if err := h.reports.Delete(c.Context(), id, user, c.IP()); err != nil {
		return h.mutationError(c, err, "report deletion failed")
	}
	return c.JSON(dto.MessageResponse{Message: "Report deleted"})
}

func (h *ReportHandler) mutationError(c *fiber.Ctx, err error, logMsg string) error {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidReportType),
		errors.Is(err, services.ErrInvalidLocation),
		errors.Is(err, services.ErrInvalidLatitude),
		errors.Is(err, services.ErrInvalidLongitude),
		errors.Is(err, services.ErrInvalidValidity),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, storage.ErrUnsupportedFormat):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	slog.Error(logMsg, "error", err)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}

// formPhoto returns the multipart photo part, or nil for JSON bodies
// and forms without one.
func formPhoto(c *fiber.Ctx) *multipart.FileHeader {
	photo, err := c.FormFile("mediafile")
	if err != nil {
		return nil
	}
	return photo
}
