package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudentPackageModel adalah aggregate paket yang dibeli murid.
// Jadwal les (schedules) jadi child table, periode les disimpan JSONB.
type StudentPackageModel struct {
	StudentPackageID        uuid.UUID `gorm:"column:student_package_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_package_id"`
	StudentPackageStudentID uuid.UUID `gorm:"column:student_package_student_id;type:uuid;not null;index" json:"student_package_student_id"`
	StudentPackagePackageID uuid.UUID `gorm:"column:student_package_package_id;type:uuid;not null" json:"student_package_package_id"`

	// Belum Lunas | Lunas | Dibatalkan
	StudentPackagePaymentStatus string     `gorm:"column:student_package_payment_status;size:20;not null;default:'Belum Lunas';index" json:"student_package_payment_status"`
	StudentPackagePaymentTotal  int64      `gorm:"column:student_package_payment_total;type:bigint;not null" json:"student_package_payment_total"`
	StudentPackagePaymentDate   *time.Time `gorm:"column:student_package_payment_date;type:timestamptz" json:"student_package_payment_date,omitempty"`

	// [{"start": "...", "end": "..."}]
	StudentPackageDatePeriode datatypes.JSON `gorm:"column:student_package_date_periode;type:jsonb" json:"student_package_date_periode,omitempty"`

	Schedules []ScheduleModel `gorm:"foreignKey:SchedulePackageID;references:StudentPackageID" json:"schedules"`

	StudentPackageCreatedAt time.Time  `gorm:"column:student_package_created_at;autoCreateTime" json:"student_package_created_at"`
	StudentPackageUpdatedAt *time.Time `gorm:"column:student_package_updated_at;autoUpdateTime" json:"student_package_updated_at,omitempty"`
}

func (StudentPackageModel) TableName() string { return "student_packages" }

// DatePeriode adalah satu rentang periode les.
type DatePeriode struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
