package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/model"
)

// ErrSlipNotFound dikembalikan FindByPeriod saat slip periode itu belum ada.
var ErrSlipNotFound = errors.New("salary slip not found")

// SlipStore adalah handle penyimpanan slip gaji. Reconciler menerima
// interface ini lewat konstruktor supaya test bisa pakai store in-memory.
type SlipStore interface {
	FindByPeriod(ctx context.Context, teacherID uuid.UUID, month, year int) (*model.SalarySlipModel, error)
	// Save adalah satu-satunya durable write per invokasi reconcile
	// (insert untuk slip baru, update untuk slip existing).
	Save(ctx context.Context, slip *model.SalarySlipModel) error
	ListAll(ctx context.Context) ([]model.SalarySlipModel, error)
}

type GormSlipStore struct {
	DB *gorm.DB
}

func NewGormSlipStore(db *gorm.DB) *GormSlipStore {
	return &GormSlipStore{DB: db}
}

func (s *GormSlipStore) FindByPeriod(ctx context.Context, teacherID uuid.UUID, month, year int) (*model.SalarySlipModel, error) {
	var row model.SalarySlipModel
	err := s.DB.WithContext(ctx).
		Where("salary_slip_teacher_id = ? AND salary_slip_month = ? AND salary_slip_year = ?", teacherID, month, year).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlipNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormSlipStore) Save(ctx context.Context, slip *model.SalarySlipModel) error {
	return s.DB.WithContext(ctx).Save(slip).Error
}

func (s *GormSlipStore) ListAll(ctx context.Context) ([]model.SalarySlipModel, error) {
	var rows []model.SalarySlipModel
	err := s.DB.WithContext(ctx).
		Order("salary_slip_year DESC, salary_slip_month DESC").
		Find(&rows).Error
	return rows, err
}
