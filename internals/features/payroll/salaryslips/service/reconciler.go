package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	model "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/model"
)

// MatchStrategy menentukan identitas baris detail di dalam slip.
//
// Skema lama mencocokkan baris lewat kesamaan timestamp persis, yang gampang
// bikin baris dobel kalau caller membulatkan tanggal beda presisi saat update
// vs create. Default di sini MatchByScheduleID (UUID sesi sebagai kunci);
// MatchByDate dipertahankan untuk paritas dengan perilaku lama.
type MatchStrategy int

const (
	MatchByScheduleID MatchStrategy = iota
	MatchByDate
)

// ScheduleInput adalah potret satu sesi les yang mau direkonsiliasi.
type ScheduleInput struct {
	ScheduleID       uuid.UUID
	Date             time.Time
	Room             string
	AttendanceStatus string
	Note             string
	TeacherFee       int64
	TransportFee     int64
}

// Reconciler menjaga slip gaji bulanan tetap konsisten dengan kondisi
// terkini tiap sesi les. Reconciler adalah satu-satunya penulis slip;
// komponen lain hanya membaca.
type Reconciler struct {
	store SlipStore
	match MatchStrategy

	// serialisasi per (teacher, month, year), menutup lost-update
	// read-modify-write antar request dalam satu proses
	locks sync.Map
}

func NewReconciler(store SlipStore) *Reconciler {
	return &Reconciler{store: store, match: MatchByScheduleID}
}

func NewReconcilerWithStrategy(store SlipStore, match MatchStrategy) *Reconciler {
	return &Reconciler{store: store, match: match}
}

func (r *Reconciler) lockPeriod(teacherID uuid.UUID, month, year int) *sync.Mutex {
	key := fmt.Sprintf("%s/%d/%d", teacherID, month, year)
	mu, _ := r.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Reconcile mencari-atau-membuat slip periode sesi tsb, menimpa/menambah
// baris detail yang cocok, menghitung ulang total, lalu menyimpan dalam
// satu durable write. Idempotent untuk input identik. Tidak ada side
// effect lintas guru atau lintas bulan.
func (r *Reconciler) Reconcile(ctx context.Context, teacherID uuid.UUID, sched ScheduleInput, studentName, instrument string) (*model.SalarySlipModel, error) {
	if sched.Date.IsZero() {
		return nil, errors.New("schedule date kosong")
	}
	month := int(sched.Date.Month())
	year := sched.Date.Year()

	mu := r.lockPeriod(teacherID, month, year)
	mu.Lock()
	defer mu.Unlock()

	slip, err := r.store.FindByPeriod(ctx, teacherID, month, year)
	if errors.Is(err, ErrSlipNotFound) {
		slip = &model.SalarySlipModel{
			SalarySlipTeacherID: teacherID,
			SalarySlipMonth:     month,
			SalarySlipYear:      year,
		}
	} else if err != nil {
		return nil, err
	}

	details, err := slip.DecodeDetails()
	if err != nil {
		return nil, err
	}

	line := model.SalarySlipDetail{
		ScheduleID:       sched.ScheduleID,
		StudentName:      studentName,
		Instrument:       instrument,
		Date:             sched.Date,
		Room:             sched.Room,
		AttendanceStatus: sched.AttendanceStatus,
		Note:             sched.Note,
		FeeClass:         sched.TeacherFee,
		FeeTransport:     sched.TransportFee,
		TotalFee:         sched.TeacherFee + sched.TransportFee,
	}

	if idx := r.findLine(details, sched.ScheduleID, sched.Date); idx >= 0 {
		// timpa penuh, tidak ada merge
		details[idx] = line
	} else {
		details = append(details, line)
	}

	slip.SalarySlipTotalSalary = sumSuccessFees(details)
	if err := slip.SetDetails(details); err != nil {
		return nil, err
	}
	if err := r.store.Save(ctx, slip); err != nil {
		return nil, err
	}
	return slip, nil
}

// Retract membuang baris detail milik sesi yang dihapus dan menghitung
// ulang total. No-op kalau slip atau barisnya memang tidak ada; slip
// kosong tetap dipertahankan, tidak ikut dihapus.
func (r *Reconciler) Retract(ctx context.Context, teacherID, scheduleID uuid.UUID, date time.Time) error {
	if date.IsZero() {
		return nil
	}
	month := int(date.Month())
	year := date.Year()

	mu := r.lockPeriod(teacherID, month, year)
	mu.Lock()
	defer mu.Unlock()

	slip, err := r.store.FindByPeriod(ctx, teacherID, month, year)
	if errors.Is(err, ErrSlipNotFound) {
		return nil
	} else if err != nil {
		return err
	}

	details, err := slip.DecodeDetails()
	if err != nil {
		return err
	}

	idx := r.findLine(details, scheduleID, date)
	if idx < 0 {
		return nil
	}
	details = append(details[:idx], details[idx+1:]...)

	slip.SalarySlipTotalSalary = sumSuccessFees(details)
	if err := slip.SetDetails(details); err != nil {
		return err
	}
	return r.store.Save(ctx, slip)
}

func (r *Reconciler) findLine(details []model.SalarySlipDetail, scheduleID uuid.UUID, date time.Time) int {
	if r.match == MatchByScheduleID && scheduleID != uuid.Nil {
		for i := range details {
			if details[i].ScheduleID == scheduleID {
				return i
			}
		}
		return -1
	}
	// paritas skema lama: kesamaan timestamp persis, bukan truncate harian
	for i := range details {
		if details[i].Date.Equal(date) {
			return i
		}
	}
	return -1
}

func sumSuccessFees(details []model.SalarySlipDetail) int64 {
	var total int64
	for _, d := range details {
		if d.AttendanceStatus == constants.AttendanceSuccess {
			total += d.TotalFee
		}
	}
	return total
}
