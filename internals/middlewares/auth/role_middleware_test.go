package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
)

// app kecil: set userRole ke Locals (seperti AuthMiddleware) lalu lewati gate
func gateApp(role string, gate fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/x",
		func(c *fiber.Ctx) error {
			if role != "" {
				c.Locals("userRole", role)
			}
			return c.Next()
		},
		gate,
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	return app
}

func gateStatus(t *testing.T, role string, gate fiber.Handler) int {
	t.Helper()
	app := gateApp(role, gate)
	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil), -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestTeacherGateAdmitsAdminAndTeacher(t *testing.T) {
	gate := OnlyRoles(constants.RoleErrorTeacher("jadwal"), constants.TeacherAndAbove...)

	assert.Equal(t, fiber.StatusOK, gateStatus(t, constants.RoleTeacher, gate))
	assert.Equal(t, fiber.StatusOK, gateStatus(t, constants.RoleAdmin, gate))
	assert.Equal(t, fiber.StatusForbidden, gateStatus(t, constants.RoleStudent, gate))
}

func TestAdminGateBlocksOtherRoles(t *testing.T) {
	gate := OnlyRoles(constants.RoleErrorAdmin("user"), constants.AdminOnly...)

	assert.Equal(t, fiber.StatusOK, gateStatus(t, constants.RoleAdmin, gate))
	assert.Equal(t, fiber.StatusForbidden, gateStatus(t, constants.RoleTeacher, gate))
	assert.Equal(t, fiber.StatusForbidden, gateStatus(t, constants.RoleStudent, gate))
}

func TestGateRejectsMissingRole(t *testing.T) {
	gate := OnlyRoles("", constants.AllRoles...)
	assert.Equal(t, fiber.StatusUnauthorized, gateStatus(t, "", gate))
}
