package dto

import (
	"time"

	"github.com/google/uuid"

	m "github.com/abdulaziz27/fermata-backend/internals/features/users/user/model"
)

// Update profil (partial). Instruments hanya diterapkan untuk teacher.
type UpdateProfileRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=2,max=100"`
	Phone       *string   `json:"phone" validate:"omitempty,max=30"`
	Address     *string   `json:"address" validate:"omitempty"`
	Instruments *[]string `json:"instruments" validate:"omitempty,dive,required"`
}

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Instruments []string  `json:"instruments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromModel(u m.UserModel) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Phone:       u.Phone,
		Address:     u.Address,
		Instruments: u.Instruments,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromModels(list []m.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, FromModel(u))
	}
	return out
}
