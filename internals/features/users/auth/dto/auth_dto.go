package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	userModel "github.com/abdulaziz27/fermata-backend/internals/features/users/user/model"
)

type TeacherData struct {
	Instruments []string `json:"instruments" validate:"omitempty,dive,required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin teacher student"`

	// wajib untuk teacher & student, opsional untuk admin
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Address string `json:"address" validate:"omitempty"`

	TeacherData *TeacherData `json:"teacher_data" validate:"omitempty"`
}

func (r RegisterRequest) ToModel(passwordHash string) userModel.UserModel {
	m := userModel.UserModel{
		Name:     r.Name,
		Email:    r.Email,
		Password: passwordHash,
		Phone:    r.Phone,
		Address:  r.Address,
		Role:     r.Role,
	}
	if r.TeacherData != nil {
		m.Instruments = pq.StringArray(r.TeacherData.Instruments)
	}
	return m
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthUserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Instruments []string  `json:"instruments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromUserModel(u userModel.UserModel) AuthUserResponse {
	return AuthUserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Phone:       u.Phone,
		Address:     u.Address,
		Instruments: u.Instruments,
		CreatedAt:   u.CreatedAt,
	}
}
