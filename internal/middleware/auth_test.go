package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/geotracker/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleApp(user *models.User, roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/admin", func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals(userLocalKey, user)
		}
		return c.Next()
	}, RequireRole(roles...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	app := roleApp(user, models.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleModerator}
	app := roleApp(user, models.RoleModerator, models.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleUser}
	app := roleApp(user, models.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleRejectsAnonymous(t *testing.T) {
	app := roleApp(nil, models.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
