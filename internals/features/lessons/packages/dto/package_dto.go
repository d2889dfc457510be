package dto

import (
	"time"

	"github.com/google/uuid"

	m "github.com/abdulaziz27/fermata-backend/internals/features/lessons/packages/model"
)

/* =============== REQUESTS =============== */

type CreatePackageRequest struct {
	PackageName        string `json:"package_name" validate:"required,min=3,max=100"`
	PackageDescription string `json:"package_description" validate:"required"`
	PackageDuration    int    `json:"package_duration" validate:"required"`
	PackagePrice       int64  `json:"package_price" validate:"required,gt=0"`
	PackageSessionCount int   `json:"package_session_count" validate:"required,gte=1"`
	PackageInstrument  string `json:"package_instrument" validate:"required"`
}

func (r CreatePackageRequest) ToModel() *m.PackageModel {
	return &m.PackageModel{
		PackageName:         r.PackageName,
		PackageDescription:  r.PackageDescription,
		PackageDuration:     r.PackageDuration,
		PackagePrice:        r.PackagePrice,
		PackageSessionCount: r.PackageSessionCount,
		PackageInstrument:   r.PackageInstrument,
		PackageIsActive:     true,
	}
}

// Update (partial)
type UpdatePackageRequest struct {
	PackageName        *string `json:"package_name" validate:"omitempty,min=3,max=100"`
	PackageDescription *string `json:"package_description" validate:"omitempty"`
	PackageDuration    *int    `json:"package_duration" validate:"omitempty"`
	PackagePrice       *int64  `json:"package_price" validate:"omitempty,gt=0"`
	PackageSessionCount *int   `json:"package_session_count" validate:"omitempty,gte=1"`
	PackageInstrument  *string `json:"package_instrument" validate:"omitempty"`
	PackageIsActive    *bool   `json:"package_is_active" validate:"omitempty"`
}

/* =============== RESPONSES =============== */

type PackageResponse struct {
	PackageID           uuid.UUID  `json:"package_id"`
	PackageName         string     `json:"package_name"`
	PackageDescription  string     `json:"package_description"`
	PackageDuration     int        `json:"package_duration"`
	PackagePrice        int64      `json:"package_price"`
	PackageSessionCount int        `json:"package_session_count"`
	PackageInstrument   string     `json:"package_instrument"`
	PackageIsActive     bool       `json:"package_is_active"`
	PackageCreatedAt    time.Time  `json:"package_created_at"`
	PackageUpdatedAt    *time.Time `json:"package_updated_at,omitempty"`
}

func FromModel(x m.PackageModel) PackageResponse {
	return PackageResponse{
		PackageID:           x.PackageID,
		PackageName:         x.PackageName,
		PackageDescription:  x.PackageDescription,
		PackageDuration:     x.PackageDuration,
		PackagePrice:        x.PackagePrice,
		PackageSessionCount: x.PackageSessionCount,
		PackageInstrument:   x.PackageInstrument,
		PackageIsActive:     x.PackageIsActive,
		PackageCreatedAt:    x.PackageCreatedAt,
		PackageUpdatedAt:    x.PackageUpdatedAt,
	}
}

func FromModels(list []m.PackageModel) []PackageResponse {
	out := make([]PackageResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
