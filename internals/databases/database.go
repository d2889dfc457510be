package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/abdulaziz27/fermata-backend/internals/configs"
	authModel "github.com/abdulaziz27/fermata-backend/internals/features/users/auth/model"
	userModel "github.com/abdulaziz27/fermata-backend/internals/features/users/user/model"
	packageModel "github.com/abdulaziz27/fermata-backend/internals/features/lessons/packages/model"
	spModel "github.com/abdulaziz27/fermata-backend/internals/features/lessons/studentpackages/model"
	slipModel "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=fermata&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// MigrateModels menjalankan auto-migration seluruh model domain.
func MigrateModels() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},
		&packageModel.PackageModel{},
		&spModel.StudentPackageModel{},
		&spModel.ScheduleModel{},
		&slipModel.SalarySlipModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi model: %v", err)
	}
	log.Println("✅ Migrasi model selesai.")
}

// SeedDefaultAdmin membuat akun admin pertama kalau tabel users masih
// kosong. Kredensial diambil dari ADMIN_EMAIL / ADMIN_PASSWORD.
func SeedDefaultAdmin() {
	email := configs.GetEnv("ADMIN_EMAIL")
	password := configs.GetEnv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := DB.Model(&userModel.UserModel{}).Count(&count).Error; err != nil {
		log.Printf("seed admin: cek users gagal: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: hash gagal: %v", err)
		return
	}
	admin := userModel.UserModel{
		Name:     configs.GetEnv("ADMIN_NAME", "Admin Fermata"),
		Email:    email,
		Password: string(hash),
		Role:     "admin",
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("seed admin: create gagal: %v", err)
		return
	}
	log.Printf("✅ Admin pertama dibuat: %s", email)
}

func WarmUpQueries() {
	// jalankan ringan supaya pool keisi & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
