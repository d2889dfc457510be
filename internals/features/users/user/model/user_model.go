package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserModel merepresentasikan tabel users di database.
// Role: admin | teacher | student. Instruments hanya terisi untuk teacher.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:255;unique;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	// Wajib untuk teacher & student, boleh kosong untuk admin
	Phone   string `gorm:"size:30" json:"phone,omitempty"`
	Address string `gorm:"type:text" json:"address,omitempty"`

	Role        string         `gorm:"type:varchar(20);not null" json:"role"`
	Instruments pq.StringArray `gorm:"type:text[]" json:"instruments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) IsAdmin() bool   { return u.Role == "admin" }
func (u *UserModel) IsTeacher() bool { return u.Role == "teacher" }
func (u *UserModel) IsStudent() bool { return u.Role == "student" }
