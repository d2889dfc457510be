package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	model "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/model"
)

func slipWithLines(t *testing.T, n int) model.SalarySlipModel {
	t.Helper()
	details := make([]model.SalarySlipDetail, 0, n)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		details = append(details, model.SalarySlipDetail{
			ScheduleID:       uuid.New(),
			StudentName:      "Budi Santoso",
			Instrument:       "Piano",
			Date:             base.AddDate(0, 0, i%28),
			Room:             "Ruang 1",
			AttendanceStatus: constants.AttendanceSuccess,
			FeeClass:         100000,
			FeeTransport:     20000,
			TotalFee:         120000,
		})
	}
	slip := model.SalarySlipModel{
		SalarySlipTeacherID:   uuid.New(),
		SalarySlipMonth:       3,
		SalarySlipYear:        2024,
		SalarySlipTotalSalary: int64(n) * 120000,
	}
	require.NoError(t, slip.SetDetails(details))
	return slip
}

func TestRenderSlipPDFProducesDocument(t *testing.T) {
	slip := slipWithLines(t, 4)

	out, err := RenderSlipPDF(slip, "Andi Wijaya")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	// header PDF standar
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestBuildSlipPDFSinglePageForShortSlip(t *testing.T) {
	slip := slipWithLines(t, 5)

	pdf, err := buildSlipPDF(slip, "Andi Wijaya")
	require.NoError(t, err)
	assert.Equal(t, 1, pdf.PageCount())
}

func TestBuildSlipPDFPaginatesLongSlip(t *testing.T) {
	// 60 baris tidak muat di satu halaman A4 dengan tinggi baris 7mm
	slip := slipWithLines(t, 60)

	pdf, err := buildSlipPDF(slip, "Andi Wijaya")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pdf.PageCount(), 2)
}

func TestBuildSlipPDFCorruptDetails(t *testing.T) {
	slip := model.SalarySlipModel{SalarySlipMonth: 3, SalarySlipYear: 2024}
	slip.SalarySlipDetails = []byte("{not json")

	_, err := buildSlipPDF(slip, "Andi Wijaya")
	assert.Error(t, err)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Januari", MonthName(1))
	assert.Equal(t, "Desember", MonthName(12))
	assert.Equal(t, "13", MonthName(13))
}
