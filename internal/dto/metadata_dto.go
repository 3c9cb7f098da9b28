package dto

import "github.com/geotracker/backend/internal/models"

// MetadataResponse bundles everything a map frontend needs to render
// filters and summary charts.
type MetadataResponse struct {
	ReportTypes        []models.ReportType `json:"reportTypes"`
	Locations          []models.Location   `json:"locations"`
	ValidReportsInTime []TimeSeriesPoint   `json:"validReportsInTime"`
	Statistics         ReportStatistics    `json:"statistics"`
	TypeStatistics     []TypeStatistics    `json:"typeStatistics"`
}

type ReportTypesResponse struct {
	ReportTypes []models.ReportType `json:"reportTypes"`
}

type LocationsResponse struct {
	Locations []models.Location `json:"locations"`
}
