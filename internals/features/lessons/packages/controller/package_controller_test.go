package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockedController(t *testing.T) (*PackageController, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewPackageController(gdb), mock
}

func deleteApp(h *PackageController) *fiber.App {
	app := fiber.New()
	app.Delete("/api/packages/:id", h.Delete)
	return app
}

// Hapus paket = nonaktifkan, bukan DELETE row
func TestDeleteDeactivatesPackage(t *testing.T) {
	h, mock := newMockedController(t)
	id := uuid.NewString()

	mock.ExpectExec(`UPDATE "packages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := deleteApp(h)
	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/packages/"+id, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// cuma UPDATE yang boleh jalan, tidak ada statement DELETE
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnknownPackageReturns404(t *testing.T) {
	h, mock := newMockedController(t)

	mock.ExpectExec(`UPDATE "packages" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	app := deleteApp(h)
	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/packages/"+uuid.NewString(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
