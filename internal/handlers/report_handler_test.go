package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geotracker/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryApp(t *testing.T, capture *services.ReportQuery) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Get("/reports", func(c *fiber.Ctx) error {
		q, err := parseReportQuery(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		*capture = q
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestParseReportQueryValid(t *testing.T) {
	var captured services.ReportQuery
	app := queryApp(t, &captured)

	req := httptest.NewRequest("GET",
		"/reports?latmin=47.0&lonmin=19.0&latmax=47.5&lonmax=19.5&time=1700000000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 47.0, captured.LatMin)
	assert.Equal(t, 19.0, captured.LonMin)
	assert.Equal(t, 47.5, captured.LatMax)
	assert.Equal(t, 19.5, captured.LonMax)
	assert.False(t, captured.ShowAll)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), captured.Time)
}

func TestParseReportQueryShowAllSkipsTime(t *testing.T) {
	var captured services.ReportQuery
	app := queryApp(t, &captured)

	req := httptest.NewRequest("GET",
		"/reports?latmin=0&lonmin=0&latmax=1&lonmax=1&show_all=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, captured.ShowAll)
}

func TestParseReportQueryMissingCoordinate(t *testing.T) {
	var captured services.ReportQuery
	app := queryApp(t, &captured)

	req := httptest.NewRequest("GET",
		"/reports?latmin=0&lonmin=0&latmax=1&time=1700000000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestParseReportQueryRejectsNonNumeric(t *testing.T) {
	var captured services.ReportQuery
	app := queryApp(t, &captured)

	for _, qs := range []string{
		"latmin=abc&lonmin=0&latmax=1&lonmax=1&time=1700000000",
		"latmin=NaN&lonmin=0&latmax=1&lonmax=1&time=1700000000",
		"latmin=Inf&lonmin=0&latmax=1&lonmax=1&time=1700000000",
		"latmin=0&lonmin=0&latmax=1&lonmax=1&time=soon",
		"latmin=0&lonmin=0&latmax=1&lonmax=1",
	} {
		req := httptest.NewRequest("GET", "/reports?"+qs, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, qs)
	}
}

func TestParseReportQueryOptionalFilters(t *testing.T) {
	var captured services.ReportQuery
	app := queryApp(t, &captured)

	req := httptest.NewRequest("GET",
		"/reports?latmin=0&lonmin=0&latmax=1&lonmax=1&show_all=1&status=verified&type_id=6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "verified", captured.Status)
	require.NotNil(t, captured.TypeID)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", captured.TypeID.String())
}

func TestParseReportQueryRejectsBadTypeID(t *testing.T) {
	var captured services.ReportQuery
	app := queryApp(t, &captured)

	req := httptest.NewRequest("GET",
		"/reports?latmin=0&lonmin=0&latmax=1&lonmax=1&show_all=1&type_id=42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
