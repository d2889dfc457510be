package controller

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	slipModel "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/model"
	slipService "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/service"
)

// store slip yang selalu error, mensimulasikan DB slip lagi bermasalah
type brokenSlipStore struct{}

func (brokenSlipStore) FindByPeriod(_ context.Context, _ uuid.UUID, _, _ int) (*slipModel.SalarySlipModel, error) {
	return nil, errors.New("slip store unavailable")
}

func (brokenSlipStore) Save(_ context.Context, _ *slipModel.SalarySlipModel) error {
	return errors.New("slip store unavailable")
}

func (brokenSlipStore) ListAll(_ context.Context) ([]slipModel.SalarySlipModel, error) {
	return nil, errors.New("slip store unavailable")
}

func newBrokenSlipController(t *testing.T) (*StudentPackageController, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return &StudentPackageController{
		DB:         gdb,
		Reconciler: slipService.NewReconciler(brokenSlipStore{}),
	}, mock
}

func scheduleRow(scheduleID, packageID, teacherID uuid.UUID, date time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"schedule_id", "schedule_package_id", "schedule_teacher_id",
		"schedule_date", "schedule_time", "schedule_attendance_status",
		"schedule_teacher_fee", "schedule_transport_fee",
	}).AddRow(scheduleID.String(), packageID.String(), teacherID.String(),
		date, "10:00", "Belum Berlangsung", int64(100000), int64(20000))
}

// Schedule sudah terhapus; slip yang gagal ditarik tidak boleh
// mengubah response jadi 500.
func TestDeleteScheduleSucceedsWhenSlipRetractFails(t *testing.T) {
	h, mock := newBrokenSlipController(t)

	scheduleID := uuid.New()
	packageID := uuid.New()
	teacherID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "schedules"`).
		WillReturnRows(scheduleRow(scheduleID, packageID, teacherID, date))
	mock.ExpectExec(`DELETE FROM "schedules"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := fiber.New()
	app.Delete("/api/student-packages/:studentPackageId/schedules/:scheduleId", h.DeleteSchedule)

	req := httptest.NewRequest("DELETE",
		"/api/student-packages/"+packageID.String()+"/schedules/"+scheduleID.String(), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Pindah periode menarik baris dari slip lama; kegagalan penarikan cuma
// dicatat karena patch schedule-nya sendiri sudah commit.
func TestUpdateScheduleSucceedsWhenSlipRetractFails(t *testing.T) {
	h, mock := newBrokenSlipController(t)

	scheduleID := uuid.New()
	packageID := uuid.New()
	teacherID := uuid.New()
	studentID := uuid.New()
	masterPackageID := uuid.New()
	oldDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "schedules"`).
		WillReturnRows(scheduleRow(scheduleID, packageID, teacherID, oldDate))
	mock.ExpectExec(`UPDATE "schedules" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .* FROM "schedules"`).
		WillReturnRows(scheduleRow(scheduleID, packageID, teacherID, newDate))
	mock.ExpectQuery(`SELECT .* FROM "student_packages"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"student_package_id", "student_package_student_id", "student_package_package_id",
		}).AddRow(packageID.String(), studentID.String(), masterPackageID.String()))
	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(studentID.String(), "Murid Piano"))
	mock.ExpectQuery(`SELECT .* FROM "packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"package_id", "package_instrument"}).
			AddRow(masterPackageID.String(), "Piano"))

	app := fiber.New()
	app.Put("/api/student-packages/:studentPackageId/schedules/:scheduleId", h.UpdateSchedule)

	body := []byte(`{"schedule_date":"` + newDate.Format(time.RFC3339) + `"}`)
	req := httptest.NewRequest("PUT",
		"/api/student-packages/"+packageID.String()+"/schedules/"+scheduleID.String(),
		bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
