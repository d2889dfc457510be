package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleModel adalah satu sesi les milik sebuah student package.
type ScheduleModel struct {
	ScheduleID        uuid.UUID `gorm:"column:schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"schedule_id"`
	SchedulePackageID uuid.UUID `gorm:"column:schedule_package_id;type:uuid;not null;index" json:"schedule_package_id"`
	ScheduleTeacherID uuid.UUID `gorm:"column:schedule_teacher_id;type:uuid;not null;index" json:"schedule_teacher_id"`

	ScheduleDate time.Time `gorm:"column:schedule_date;type:timestamptz;not null" json:"schedule_date"`
	// jam tampilan, mis. "14:30"
	ScheduleTime string `gorm:"column:schedule_time;size:20;not null" json:"schedule_time"`

	// Ruang 1 | Ruang 2 | Ruang 3 | Home Visit
	ScheduleRoom string `gorm:"column:schedule_room;size:20" json:"schedule_room"`

	ScheduleTeacherFee   int64 `gorm:"column:schedule_teacher_fee;type:bigint;not null" json:"schedule_teacher_fee"`
	ScheduleTransportFee int64 `gorm:"column:schedule_transport_fee;type:bigint;not null;default:0" json:"schedule_transport_fee"`

	// Belum Berlangsung | Success | Murid Izin | Guru Izin | Reschedule
	ScheduleAttendanceStatus string `gorm:"column:schedule_attendance_status;size:30;not null;default:'Belum Berlangsung'" json:"schedule_attendance_status"`

	ScheduleActivityPhoto *string `gorm:"column:schedule_activity_photo;type:text" json:"schedule_activity_photo,omitempty"`
	ScheduleNote          *string `gorm:"column:schedule_note;type:text" json:"schedule_note,omitempty"`

	ScheduleCreatedAt time.Time  `gorm:"column:schedule_created_at;autoCreateTime" json:"schedule_created_at"`
	ScheduleUpdatedAt *time.Time `gorm:"column:schedule_updated_at;autoUpdateTime" json:"schedule_updated_at,omitempty"`
}

func (ScheduleModel) TableName() string { return "schedules" }
