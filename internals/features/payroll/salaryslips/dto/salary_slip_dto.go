package dto

import (
	"time"

	"github.com/google/uuid"

	m "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/model"
)

/* =============== RESPONSES =============== */

type SalarySlipDetailResponse struct {
	ScheduleID       uuid.UUID `json:"schedule_id"`
	StudentName      string    `json:"student_name"`
	Instrument       string    `json:"instrument"`
	Date             time.Time `json:"date"`
	Room             string    `json:"room"`
	AttendanceStatus string    `json:"attendance_status"`
	Note             string    `json:"note,omitempty"`
	FeeClass         int64     `json:"fee_class"`
	FeeTransport     int64     `json:"fee_transport"`
	TotalFee         int64     `json:"total_fee"`
}

type SalarySlipResponse struct {
	SalarySlipID          uuid.UUID                  `json:"salary_slip_id"`
	SalarySlipTeacherID   uuid.UUID                  `json:"salary_slip_teacher_id"`
	SalarySlipTeacherName string                     `json:"salary_slip_teacher_name,omitempty"`
	SalarySlipMonth       int                        `json:"salary_slip_month"`
	SalarySlipYear        int                        `json:"salary_slip_year"`
	SalarySlipTotalSalary int64                      `json:"salary_slip_total_salary"`
	Details               []SalarySlipDetailResponse `json:"details"`
	SalarySlipCreatedAt   time.Time                  `json:"salary_slip_created_at"`
	SalarySlipUpdatedAt   *time.Time                 `json:"salary_slip_updated_at,omitempty"`
}

/* =============== MAPPERS =============== */

func FromModel(x m.SalarySlipModel, teacherName string) (SalarySlipResponse, error) {
	details, err := x.DecodeDetails()
	if err != nil {
		return SalarySlipResponse{}, err
	}
	out := make([]SalarySlipDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, SalarySlipDetailResponse{
			ScheduleID:       d.ScheduleID,
			StudentName:      d.StudentName,
			Instrument:       d.Instrument,
			Date:             d.Date,
			Room:             d.Room,
			AttendanceStatus: d.AttendanceStatus,
			Note:             d.Note,
			FeeClass:         d.FeeClass,
			FeeTransport:     d.FeeTransport,
			TotalFee:         d.TotalFee,
		})
	}
	return SalarySlipResponse{
		SalarySlipID:          x.SalarySlipID,
		SalarySlipTeacherID:   x.SalarySlipTeacherID,
		SalarySlipTeacherName: teacherName,
		SalarySlipMonth:       x.SalarySlipMonth,
		SalarySlipYear:        x.SalarySlipYear,
		SalarySlipTotalSalary: x.SalarySlipTotalSalary,
		Details:               out,
		SalarySlipCreatedAt:   x.SalarySlipCreatedAt,
		SalarySlipUpdatedAt:   x.SalarySlipUpdatedAt,
	}, nil
}
