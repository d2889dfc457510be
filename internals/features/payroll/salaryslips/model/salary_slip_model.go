package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SalarySlipModel adalah rekap gaji guru per (teacher, month, year).
// Detail baris disimpan sebagai array JSONB, satu baris per sesi les,
// meniru dokumen embedded pada skema lama.
type SalarySlipModel struct {
	SalarySlipID        uuid.UUID `gorm:"column:salary_slip_id;type:uuid;default:gen_random_uuid();primaryKey" json:"salary_slip_id"`
	SalarySlipTeacherID uuid.UUID `gorm:"column:salary_slip_teacher_id;type:uuid;not null;uniqueIndex:uq_salary_slips_period" json:"salary_slip_teacher_id"`

	// 1..12
	SalarySlipMonth int `gorm:"column:salary_slip_month;type:smallint;not null;uniqueIndex:uq_salary_slips_period" json:"salary_slip_month"`
	SalarySlipYear  int `gorm:"column:salary_slip_year;type:smallint;not null;uniqueIndex:uq_salary_slips_period" json:"salary_slip_year"`

	// Derived: jumlah total_fee untuk baris berstatus Success saja.
	SalarySlipTotalSalary int64 `gorm:"column:salary_slip_total_salary;type:bigint;not null;default:0" json:"salary_slip_total_salary"`

	SalarySlipDetails datatypes.JSON `gorm:"column:salary_slip_details;type:jsonb;not null;default:'[]'" json:"salary_slip_details"`

	SalarySlipCreatedAt time.Time  `gorm:"column:salary_slip_created_at;autoCreateTime" json:"salary_slip_created_at"`
	SalarySlipUpdatedAt *time.Time `gorm:"column:salary_slip_updated_at;autoUpdateTime" json:"salary_slip_updated_at,omitempty"`
}

func (SalarySlipModel) TableName() string { return "salary_slips" }

// SalarySlipDetail adalah snapshot satu sesi pada saat reconcile.
// Perubahan nama murid / instrumen paket setelahnya tidak menulis ulang
// baris historis; baris hanya berubah kalau sesi tersebut di-reconcile lagi.
type SalarySlipDetail struct {
	ScheduleID       uuid.UUID `json:"schedule_id"`
	StudentName      string    `json:"student_name"`
	Instrument       string    `json:"instrument"`
	Date             time.Time `json:"date"`
	Room             string    `json:"room"`
	AttendanceStatus string    `json:"attendance_status"`
	Note             string    `json:"note"`
	FeeClass         int64     `json:"fee_class"`
	FeeTransport     int64     `json:"fee_transport"`
	TotalFee         int64     `json:"total_fee"`
}

func (m *SalarySlipModel) DecodeDetails() ([]SalarySlipDetail, error) {
	if len(m.SalarySlipDetails) == 0 {
		return nil, nil
	}
	var out []SalarySlipDetail
	if err := json.Unmarshal(m.SalarySlipDetails, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *SalarySlipModel) SetDetails(details []SalarySlipDetail) error {
	if details == nil {
		details = []SalarySlipDetail{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return err
	}
	m.SalarySlipDetails = datatypes.JSON(raw)
	return nil
}
