package model

import (
	"time"

	"github.com/google/uuid"
)

// PackageModel merepresentasikan katalog paket les.
type PackageModel struct {
	PackageID          uuid.UUID `gorm:"column:package_id;type:uuid;default:gen_random_uuid();primaryKey" json:"package_id"`
	PackageName        string    `gorm:"column:package_name;size:100;not null" json:"package_name"`
	PackageDescription string    `gorm:"column:package_description;type:text;not null" json:"package_description"`

	// Durasi sesi dalam menit: 30 | 45 | 60
	PackageDuration int `gorm:"column:package_duration;type:smallint;not null" json:"package_duration"`

	PackagePrice        int64  `gorm:"column:package_price;type:bigint;not null" json:"package_price"`
	PackageSessionCount int    `gorm:"column:package_session_count;type:smallint;not null" json:"package_session_count"`
	PackageInstrument   string `gorm:"column:package_instrument;size:20;not null" json:"package_instrument"`
	PackageIsActive     bool   `gorm:"column:package_is_active;not null;default:true" json:"package_is_active"`

	PackageCreatedAt time.Time  `gorm:"column:package_created_at;autoCreateTime" json:"package_created_at"`
	PackageUpdatedAt *time.Time `gorm:"column:package_updated_at;autoUpdateTime" json:"package_updated_at,omitempty"`
}

func (PackageModel) TableName() string { return "packages" }
