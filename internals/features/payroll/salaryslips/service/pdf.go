package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	model "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/model"
	helper "github.com/abdulaziz27/fermata-backend/internals/helpers"
)

var monthNames = []string{
	"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

func MonthName(m int) string {
	if m >= 1 && m <= 12 {
		return monthNames[m]
	}
	return fmt.Sprintf("%d", m)
}

// layout tabel slip: lebar kolom total 190mm (A4 dikurangi margin 2x10mm)
var slipColumns = []struct {
	title string
	width float64
}{
	{"Tanggal", 22},
	{"Murid", 30},
	{"Instrumen", 22},
	{"Ruang", 22},
	{"Status", 26},
	{"Fee Kelas", 23},
	{"Transport", 23},
	{"Total", 22},
}

const (
	slipRowHeight   = 7.0
	slipBottomBound = 270.0 // ganti halaman saat cursor lewat batas ini
	slipTopMargin   = 15.0
)

// RenderSlipPDF merender satu slip jadi dokumen PDF. Murni formatting:
// tidak ada akses store, baris dirender sesuai urutan simpan (tanpa sort).
func RenderSlipPDF(slip model.SalarySlipModel, teacherName string) ([]byte, error) {
	pdf, err := buildSlipPDF(slip, teacherName)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildSlipPDF(slip model.SalarySlipModel, teacherName string) (*gofpdf.Fpdf, error) {
	details, err := slip.DecodeDetails()
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Slip Gaji Guru", false)
	pdf.SetMargins(10, slipTopMargin, 10)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// header block
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Slip Gaji Guru - Fermata Music School", "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, "Guru: "+teacherName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Periode: %s %d", MonthName(slip.SalarySlipMonth), slip.SalarySlipYear), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Total Gaji: "+helper.FormatRupiah(slip.SalarySlipTotalSalary), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	drawSlipTableHeader(pdf)

	pdf.SetFont("Arial", "", 9)
	for _, d := range details {
		if pdf.GetY()+slipRowHeight > slipBottomBound {
			pdf.AddPage()
			pdf.SetY(slipTopMargin)
			drawSlipTableHeader(pdf)
			pdf.SetFont("Arial", "", 9)
		}
		cells := []string{
			d.Date.Format("02-01-2006"),
			d.StudentName,
			d.Instrument,
			d.Room,
			d.AttendanceStatus,
			helper.FormatRupiah(d.FeeClass),
			helper.FormatRupiah(d.FeeTransport),
			helper.FormatRupiah(d.TotalFee),
		}
		for i, col := range slipColumns {
			align := "L"
			if i >= 5 {
				align = "R"
			}
			pdf.CellFormat(col.width, slipRowHeight, cells[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf, nil
}

func drawSlipTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range slipColumns {
		pdf.CellFormat(col.width, slipRowHeight, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}
