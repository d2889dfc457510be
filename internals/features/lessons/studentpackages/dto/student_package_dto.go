package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "github.com/abdulaziz27/fermata-backend/internals/features/lessons/studentpackages/model"
)

/* =============== REQUESTS =============== */

type ScheduleRequest struct {
	ScheduleTeacherID uuid.UUID `json:"schedule_teacher_id" validate:"required"`
	ScheduleDate      time.Time `json:"schedule_date" validate:"required"`
	ScheduleTime      string    `json:"schedule_time" validate:"required"`
	ScheduleRoom      string    `json:"schedule_room" validate:"omitempty"`

	ScheduleTeacherFee   int64 `json:"schedule_teacher_fee" validate:"required,gte=0"`
	ScheduleTransportFee int64 `json:"schedule_transport_fee" validate:"omitempty,gte=0"`

	ScheduleAttendanceStatus string  `json:"schedule_attendance_status" validate:"omitempty"`
	ScheduleNote             *string `json:"schedule_note" validate:"omitempty"`
}

func (r ScheduleRequest) ToModel() m.ScheduleModel {
	return m.ScheduleModel{
		ScheduleTeacherID:        r.ScheduleTeacherID,
		ScheduleDate:             r.ScheduleDate,
		ScheduleTime:             r.ScheduleTime,
		ScheduleRoom:             r.ScheduleRoom,
		ScheduleTeacherFee:       r.ScheduleTeacherFee,
		ScheduleTransportFee:     r.ScheduleTransportFee,
		ScheduleAttendanceStatus: r.ScheduleAttendanceStatus,
		ScheduleNote:             r.ScheduleNote,
	}
}

type CreateStudentPackageRequest struct {
	StudentPackageStudentID     uuid.UUID         `json:"student_package_student_id" validate:"required"`
	StudentPackagePackageID     uuid.UUID         `json:"student_package_package_id" validate:"required"`
	StudentPackagePaymentStatus string            `json:"student_package_payment_status" validate:"omitempty"`
	StudentPackagePaymentTotal  int64             `json:"student_package_payment_total" validate:"required,gt=0"`
	StudentPackagePaymentDate   *time.Time        `json:"student_package_payment_date" validate:"omitempty"`
	StudentPackageDatePeriode   []m.DatePeriode   `json:"student_package_date_periode" validate:"omitempty,dive"`
	Schedules                   []ScheduleRequest `json:"schedules" validate:"omitempty,dive"`
}

func (r CreateStudentPackageRequest) ToModel() (*m.StudentPackageModel, error) {
	periode := datatypes.JSON("[]")
	if len(r.StudentPackageDatePeriode) > 0 {
		raw, err := json.Marshal(r.StudentPackageDatePeriode)
		if err != nil {
			return nil, err
		}
		periode = datatypes.JSON(raw)
	}

	schedules := make([]m.ScheduleModel, 0, len(r.Schedules))
	for _, s := range r.Schedules {
		schedules = append(schedules, s.ToModel())
	}

	return &m.StudentPackageModel{
		StudentPackageStudentID:     r.StudentPackageStudentID,
		StudentPackagePackageID:     r.StudentPackagePackageID,
		StudentPackagePaymentStatus: r.StudentPackagePaymentStatus,
		StudentPackagePaymentTotal:  r.StudentPackagePaymentTotal,
		StudentPackagePaymentDate:   r.StudentPackagePaymentDate,
		StudentPackageDatePeriode:   periode,
		Schedules:                   schedules,
	}, nil
}

// Update jadwal (partial, admin)
type UpdateScheduleRequest struct {
	ScheduleTeacherID    *uuid.UUID `json:"schedule_teacher_id" validate:"omitempty"`
	ScheduleDate         *time.Time `json:"schedule_date" validate:"omitempty"`
	ScheduleTime         *string    `json:"schedule_time" validate:"omitempty"`
	ScheduleRoom         *string    `json:"schedule_room" validate:"omitempty"`
	ScheduleTeacherFee   *int64     `json:"schedule_teacher_fee" validate:"omitempty,gte=0"`
	ScheduleTransportFee *int64     `json:"schedule_transport_fee" validate:"omitempty,gte=0"`
}

// Update absensi (teacher)
type UpdateAttendanceRequest struct {
	ScheduleAttendanceStatus string  `json:"schedule_attendance_status" validate:"required"`
	ScheduleActivityPhoto    *string `json:"schedule_activity_photo" validate:"omitempty"`
	ScheduleNote             *string `json:"schedule_note" validate:"omitempty"`
}

/* =============== RESPONSES =============== */

type StudentPackageResponse struct {
	StudentPackageID            uuid.UUID         `json:"student_package_id"`
	StudentPackageStudentID     uuid.UUID         `json:"student_package_student_id"`
	StudentName                 string            `json:"student_name,omitempty"`
	StudentPackagePackageID     uuid.UUID         `json:"student_package_package_id"`
	PackageName                 string            `json:"package_name,omitempty"`
	PackageInstrument           string            `json:"package_instrument,omitempty"`
	StudentPackagePaymentStatus string            `json:"student_package_payment_status"`
	StudentPackagePaymentTotal  int64             `json:"student_package_payment_total"`
	StudentPackagePaymentDate   *time.Time        `json:"student_package_payment_date,omitempty"`
	StudentPackageDatePeriode   []m.DatePeriode   `json:"student_package_date_periode,omitempty"`
	Schedules                   []m.ScheduleModel `json:"schedules"`
	StudentPackageCreatedAt     time.Time         `json:"student_package_created_at"`
}

// SnapPaymentResponse disertakan saat paket dibuat dengan status Belum Lunas.
type SnapPaymentResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

func FromModel(x m.StudentPackageModel, studentName, packageName, instrument string) StudentPackageResponse {
	var periode []m.DatePeriode
	if len(x.StudentPackageDatePeriode) > 0 {
		_ = json.Unmarshal(x.StudentPackageDatePeriode, &periode)
	}
	schedules := x.Schedules
	if schedules == nil {
		schedules = []m.ScheduleModel{}
	}
	return StudentPackageResponse{
		StudentPackageID:            x.StudentPackageID,
		StudentPackageStudentID:     x.StudentPackageStudentID,
		StudentName:                 studentName,
		StudentPackagePackageID:     x.StudentPackagePackageID,
		PackageName:                 packageName,
		PackageInstrument:           instrument,
		StudentPackagePaymentStatus: x.StudentPackagePaymentStatus,
		StudentPackagePaymentTotal:  x.StudentPackagePaymentTotal,
		StudentPackagePaymentDate:   x.StudentPackagePaymentDate,
		StudentPackageDatePeriode:   periode,
		Schedules:                   schedules,
		StudentPackageCreatedAt:     x.StudentPackageCreatedAt,
	}
}
