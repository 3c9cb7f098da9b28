package handlers

import (
	"log/slog"

	"github.com/geotracker/backend/internal/dto"
	"github.com/geotracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MetadataHandler struct {
	metadata *services.MetadataService
}

func NewMetadataHandler(metadata *services.MetadataService) *MetadataHandler {
	return &MetadataHandler{metadata: metadata}
}

func (h *MetadataHandler) Metadata(c *fiber.Ctx) error {
	resp, err := h.metadata.Metadata()
	if err != nil {
		slog.Error("metadata query failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to load metadata")
	}
	return c.JSON(resp)
}

func (h *MetadataHandler) ReportTypes(c *fiber.Ctx) error {
	types, err := h.metadata.ReportTypes()
	if err != nil {
		slog.Error("report type query failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to load report types")
	}
	return c.JSON(dto.ReportTypesResponse{ReportTypes: types})
}

func (h *MetadataHandler) Locations(c *fiber.Ctx) error {
	locations, err := h.metadata.Locations()
	if err != nil {
		slog.Error("location query failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Failed to load locations")
	}
	return c.JSON(dto.LocationsResponse{Locations: locations})
}
