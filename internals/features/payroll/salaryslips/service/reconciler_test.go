package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	model "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/model"
)

/* ===== in-memory SlipStore untuk test ===== */

type memSlipStore struct {
	mu    sync.Mutex
	slips map[string]*model.SalarySlipModel
	saves int
}

func newMemSlipStore() *memSlipStore {
	return &memSlipStore{slips: map[string]*model.SalarySlipModel{}}
}

func periodKey(teacherID uuid.UUID, month, year int) string {
	return fmt.Sprintf("%s/%d/%d", teacherID, month, year)
}

func (s *memSlipStore) FindByPeriod(_ context.Context, teacherID uuid.UUID, month, year int) (*model.SalarySlipModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slip, ok := s.slips[periodKey(teacherID, month, year)]
	if !ok {
		return nil, ErrSlipNotFound
	}
	cp := *slip
	return &cp, nil
}

func (s *memSlipStore) Save(_ context.Context, slip *model.SalarySlipModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slip.SalarySlipID == uuid.Nil {
		slip.SalarySlipID = uuid.New()
	}
	cp := *slip
	s.slips[periodKey(slip.SalarySlipTeacherID, slip.SalarySlipMonth, slip.SalarySlipYear)] = &cp
	s.saves++
	return nil
}

func (s *memSlipStore) ListAll(_ context.Context) ([]model.SalarySlipModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SalarySlipModel, 0, len(s.slips))
	for _, slip := range s.slips {
		out = append(out, *slip)
	}
	return out, nil
}

func mustDetails(t *testing.T, slip *model.SalarySlipModel) []model.SalarySlipDetail {
	t.Helper()
	details, err := slip.DecodeDetails()
	require.NoError(t, err)
	return details
}

func sessionInput(id uuid.UUID, date time.Time, status string, teacherFee, transportFee int64) ScheduleInput {
	return ScheduleInput{
		ScheduleID:       id,
		Date:             date,
		Room:             "Ruang 1",
		AttendanceStatus: status,
		TeacherFee:       teacherFee,
		TransportFee:     transportFee,
	}
}

/* ===== tests ===== */

func TestReconcileCreatesSlipForNewPeriod(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()
	date := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	slip, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(uuid.New(), date, constants.AttendanceNotYet, 100000, 20000), "Budi", "Piano")
	require.NoError(t, err)

	assert.Equal(t, teacherID, slip.SalarySlipTeacherID)
	assert.Equal(t, 3, slip.SalarySlipMonth)
	assert.Equal(t, 2024, slip.SalarySlipYear)
	// sesi yang belum berlangsung tercatat di detail tapi belum dibayar
	assert.Equal(t, int64(0), slip.SalarySlipTotalSalary)

	details := mustDetails(t, slip)
	require.Len(t, details, 1)
	assert.Equal(t, "Budi", details[0].StudentName)
	assert.Equal(t, "Piano", details[0].Instrument)
	assert.Equal(t, int64(120000), details[0].TotalFee)
	assert.Equal(t, 1, store.saves)
}

func TestReconcileStatusChangeOverwritesLine(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()
	scheduleID := uuid.New()
	date := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	_, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(scheduleID, date, constants.AttendanceNotYet, 100000, 20000), "Budi", "Piano")
	require.NoError(t, err)

	slip, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(scheduleID, date, constants.AttendanceSuccess, 100000, 20000), "Budi", "Piano")
	require.NoError(t, err)

	details := mustDetails(t, slip)
	require.Len(t, details, 1)
	assert.Equal(t, constants.AttendanceSuccess, details[0].AttendanceStatus)
	assert.Equal(t, int64(120000), slip.SalarySlipTotalSalary)
}

func TestReconcileIdempotent(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()
	input := sessionInput(uuid.New(), time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC),
		constants.AttendanceSuccess, 90000, 10000)

	first, err := r.Reconcile(context.Background(), teacherID, input, "Sari", "Vokal")
	require.NoError(t, err)
	second, err := r.Reconcile(context.Background(), teacherID, input, "Sari", "Vokal")
	require.NoError(t, err)

	assert.Equal(t, first.SalarySlipTotalSalary, second.SalarySlipTotalSalary)
	assert.Len(t, mustDetails(t, second), 1)
}

func TestReconcileAppendsDistinctSessions(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()

	_, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(uuid.New(), time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
			constants.AttendanceSuccess, 100000, 0), "Budi", "Piano")
	require.NoError(t, err)

	slip, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(uuid.New(), time.Date(2024, 5, 9, 10, 0, 0, 0, time.UTC),
			constants.AttendanceSuccess, 150000, 25000), "Sari", "Drum")
	require.NoError(t, err)

	assert.Len(t, mustDetails(t, slip), 2)
	assert.Equal(t, int64(275000), slip.SalarySlipTotalSalary)
}

func TestReconcileFeeUpdateDoesNotDouble(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()
	scheduleID := uuid.New()
	date := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	_, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(scheduleID, date, constants.AttendanceSuccess, 100000, 20000), "Budi", "Gitar")
	require.NoError(t, err)

	// fee direvisi: baris lama ditimpa, bukan ditambah
	slip, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(scheduleID, date, constants.AttendanceSuccess, 120000, 30000), "Budi", "Gitar")
	require.NoError(t, err)

	details := mustDetails(t, slip)
	require.Len(t, details, 1)
	assert.Equal(t, int64(150000), details[0].TotalFee)
	assert.Equal(t, int64(150000), slip.SalarySlipTotalSalary)
}

func TestReconcileBucketsPerMonthAndTeacher(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherA := uuid.New()
	teacherB := uuid.New()

	_, err := r.Reconcile(context.Background(), teacherA,
		sessionInput(uuid.New(), time.Date(2024, 12, 30, 10, 0, 0, 0, time.UTC),
			constants.AttendanceSuccess, 100000, 0), "Budi", "Piano")
	require.NoError(t, err)
	_, err = r.Reconcile(context.Background(), teacherA,
		sessionInput(uuid.New(), time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
			constants.AttendanceSuccess, 100000, 0), "Budi", "Piano")
	require.NoError(t, err)
	_, err = r.Reconcile(context.Background(), teacherB,
		sessionInput(uuid.New(), time.Date(2024, 12, 30, 11, 0, 0, 0, time.UTC),
			constants.AttendanceSuccess, 80000, 0), "Sari", "Biola")
	require.NoError(t, err)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	// Des-2024/guru A, Jan-2025/guru A, Des-2024/guru B
	assert.Len(t, all, 3)
	for _, slip := range all {
		assert.Len(t, mustDetails(t, &slip), 1)
	}
}

func TestReconcileTotalCountsOnlySuccess(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()
	base := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	statuses := []string{
		constants.AttendanceSuccess,
		constants.AttendanceStudentLeave,
		constants.AttendanceTeacherLeave,
		constants.AttendanceReschedule,
		constants.AttendanceNotYet,
	}
	var slip *model.SalarySlipModel
	var err error
	for i, status := range statuses {
		slip, err = r.Reconcile(context.Background(), teacherID,
			sessionInput(uuid.New(), base.AddDate(0, 0, i), status, 100000, 10000), "Budi", "Bass")
		require.NoError(t, err)
	}

	assert.Len(t, mustDetails(t, slip), 5)
	assert.Equal(t, int64(110000), slip.SalarySlipTotalSalary)
}

func TestReconcileRejectsZeroDate(t *testing.T) {
	r := NewReconciler(newMemSlipStore())
	_, err := r.Reconcile(context.Background(), uuid.New(),
		sessionInput(uuid.New(), time.Time{}, constants.AttendanceSuccess, 100000, 0), "Budi", "Piano")
	assert.Error(t, err)
}

func TestRetractRemovesLineAndRecomputes(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()
	keepID := uuid.New()
	dropID := uuid.New()
	keepDate := time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC)
	dropDate := time.Date(2024, 4, 12, 10, 0, 0, 0, time.UTC)

	_, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(keepID, keepDate, constants.AttendanceSuccess, 100000, 0), "Budi", "Piano")
	require.NoError(t, err)
	_, err = r.Reconcile(context.Background(), teacherID,
		sessionInput(dropID, dropDate, constants.AttendanceSuccess, 50000, 5000), "Sari", "Drum")
	require.NoError(t, err)

	require.NoError(t, r.Retract(context.Background(), teacherID, dropID, dropDate))

	slip, err := store.FindByPeriod(context.Background(), teacherID, 4, 2024)
	require.NoError(t, err)
	details := mustDetails(t, slip)
	require.Len(t, details, 1)
	assert.Equal(t, keepID, details[0].ScheduleID)
	assert.Equal(t, int64(100000), slip.SalarySlipTotalSalary)
}

func TestRetractMissingLineIsNoop(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()
	date := time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC)

	// slip periode itu belum ada sama sekali
	require.NoError(t, r.Retract(context.Background(), teacherID, uuid.New(), date))
	assert.Equal(t, 0, store.saves)

	_, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(uuid.New(), date, constants.AttendanceSuccess, 100000, 0), "Budi", "Piano")
	require.NoError(t, err)

	// schedule lain di periode yang sama: baris existing tidak tersentuh
	require.NoError(t, r.Retract(context.Background(), teacherID, uuid.New(), date.AddDate(0, 0, 1)))
	slip, err := store.FindByPeriod(context.Background(), teacherID, 4, 2024)
	require.NoError(t, err)
	assert.Len(t, mustDetails(t, slip), 1)
}

func TestRetractLastLineKeepsEmptySlip(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()
	scheduleID := uuid.New()
	date := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(scheduleID, date, constants.AttendanceSuccess, 100000, 0), "Budi", "Piano")
	require.NoError(t, err)
	require.NoError(t, r.Retract(context.Background(), teacherID, scheduleID, date))

	slip, err := store.FindByPeriod(context.Background(), teacherID, 9, 2024)
	require.NoError(t, err)
	assert.Len(t, mustDetails(t, slip), 0)
	assert.Equal(t, int64(0), slip.SalarySlipTotalSalary)
}

func TestMatchByDateUsesExactTimestamp(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconcilerWithStrategy(store, MatchByDate)
	teacherID := uuid.New()
	date := time.Date(2024, 8, 14, 10, 0, 0, 0, time.UTC)

	_, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(uuid.Nil, date, constants.AttendanceNotYet, 100000, 0), "Budi", "Piano")
	require.NoError(t, err)

	// timestamp persis sama: timpa
	slip, err := r.Reconcile(context.Background(), teacherID,
		sessionInput(uuid.Nil, date, constants.AttendanceSuccess, 100000, 0), "Budi", "Piano")
	require.NoError(t, err)
	require.Len(t, mustDetails(t, slip), 1)

	// hari sama tapi jam beda: dianggap sesi lain
	slip, err = r.Reconcile(context.Background(), teacherID,
		sessionInput(uuid.Nil, date.Add(time.Hour), constants.AttendanceSuccess, 100000, 0), "Budi", "Piano")
	require.NoError(t, err)
	assert.Len(t, mustDetails(t, slip), 2)
}

func TestReconcileConcurrentSamePeriod(t *testing.T) {
	store := newMemSlipStore()
	r := NewReconciler(store)
	teacherID := uuid.New()
	base := time.Date(2024, 10, 1, 10, 0, 0, 0, time.UTC)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := r.Reconcile(context.Background(), teacherID,
				sessionInput(uuid.New(), base.AddDate(0, 0, i%28), constants.AttendanceSuccess, 10000, 0), "Budi", "Piano")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	slip, err := store.FindByPeriod(context.Background(), teacherID, 10, 2024)
	require.NoError(t, err)
	assert.Len(t, mustDetails(t, slip), n)
	assert.Equal(t, int64(n*10000), slip.SalarySlipTotalSalary)
}
