package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	pkgModel "github.com/abdulaziz27/fermata-backend/internals/features/lessons/packages/model"
	dto "github.com/abdulaziz27/fermata-backend/internals/features/lessons/studentpackages/dto"
	model "github.com/abdulaziz27/fermata-backend/internals/features/lessons/studentpackages/model"
	spService "github.com/abdulaziz27/fermata-backend/internals/features/lessons/studentpackages/service"
	slipService "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/service"
	userModel "github.com/abdulaziz27/fermata-backend/internals/features/users/user/model"
	helper "github.com/abdulaziz27/fermata-backend/internals/helpers"
)

type StudentPackageController struct {
	DB         *gorm.DB
	Reconciler *slipService.Reconciler
}

func NewStudentPackageController(db *gorm.DB) *StudentPackageController {
	return &StudentPackageController{
		DB:         db,
		Reconciler: slipService.NewReconciler(slipService.NewGormSlipStore(db)),
	}
}

/* ======================= CREATE (ADMIN) ======================= */
// POST /api/student-packages
func (h *StudentPackageController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentPackageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if req.StudentPackagePaymentStatus == "" {
		req.StudentPackagePaymentStatus = constants.PaymentUnpaid
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if !constants.IsValidPaymentStatus(req.StudentPackagePaymentStatus) {
		return fiber.NewError(fiber.StatusBadRequest, "Status pembayaran tidak valid")
	}
	for _, s := range req.Schedules {
		if s.ScheduleRoom != "" && !constants.IsValidRoom(s.ScheduleRoom) {
			return fiber.NewError(fiber.StatusBadRequest, "Ruang tidak valid: "+s.ScheduleRoom)
		}
		if s.ScheduleAttendanceStatus != "" && !constants.IsValidAttendanceStatus(s.ScheduleAttendanceStatus) {
			return fiber.NewError(fiber.StatusBadRequest, "Status absensi tidak valid: "+s.ScheduleAttendanceStatus)
		}
	}

	// Murid harus ada dan ber-role student
	var student userModel.UserModel
	if err := h.DB.
		Where("id = ? AND role = ?", req.StudentPackageStudentID, constants.RoleStudent).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Murid tidak ditemukan atau bukan student")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var pkg pkgModel.PackageModel
	if err := h.DB.Where("package_id = ?", req.StudentPackagePackageID).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "Paket tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	m, err := req.ToModel()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date_periode tidak valid")
	}
	// association Schedules ikut ter-create dalam satu transaksi
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat student package")
	}

	// Rekonsiliasi slip gaji per jadwal. Paket sudah tersimpan; kegagalan
	// slip hanya dicatat, tidak membatalkan response.
	for _, sched := range m.Schedules {
		h.reconcileSchedule(c, sched, student.Name, pkg.PackageInstrument)
	}

	resp := dto.FromModel(*m, student.Name, pkg.PackageName, pkg.PackageInstrument)

	// Pembayaran via Midtrans Snap untuk paket yang belum lunas
	if m.StudentPackagePaymentStatus == constants.PaymentUnpaid {
		if token, redirectURL, err := spService.GenerateSnapToken(*m, student.Name, student.Email); err != nil {
			log.Printf("[ERROR] Gagal generate Snap token untuk %s: %v", m.StudentPackageID, err)
		} else {
			return helper.JsonCreated(c, "Student package berhasil dibuat", fiber.Map{
				"student_package": resp,
				"payment":         dto.SnapPaymentResponse{Token: token, RedirectURL: redirectURL},
			})
		}
	}

	return helper.JsonCreated(c, "Student package berhasil dibuat", resp)
}

/* ======================= LIST (ADMIN) ======================= */
// GET /api/student-packages
func (h *StudentPackageController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&model.StudentPackageModel{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.StudentPackageModel
	if err := h.DB.
		Preload("Schedules").
		Order("student_package_created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out, err := h.toResponses(list)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "OK", out, &pg)
}

/* ======================= DELETE (ADMIN) ======================= */
// DELETE /api/student-packages/:studentPackageId
func (h *StudentPackageController) Delete(c *fiber.Ctx) error {
	id := c.Params("studentPackageId")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak boleh kosong")
	}

	var sp model.StudentPackageModel
	if err := h.DB.Preload("Schedules").
		Where("student_package_id = ?", id).
		First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student package tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_package_id = ?", sp.StudentPackageID).
			Delete(&model.ScheduleModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sp).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus student package")
	}

	// tarik kembali baris slip milik jadwal-jadwal yang ikut terhapus
	for _, sched := range sp.Schedules {
		if err := h.Reconciler.Retract(c.UserContext(), sched.ScheduleTeacherID, sched.ScheduleID, sched.ScheduleDate); err != nil {
			log.Printf("[ERROR] Retract slip gagal untuk schedule %s: %v", sched.ScheduleID, err)
		}
	}

	return helper.JsonDeleted(c, "Student package berhasil dihapus", fiber.Map{"id": id})
}

/* ======================= shared helpers ======================= */

// reconcileSchedule memanggil engine slip gaji untuk satu jadwal.
// Kegagalan tidak menggagalkan operasi utama, hanya dicatat.
func (h *StudentPackageController) reconcileSchedule(c *fiber.Ctx, sched model.ScheduleModel, studentName, instrument string) {
	status := sched.ScheduleAttendanceStatus
	if status == "" {
		status = constants.AttendanceNotYet
	}
	note := ""
	if sched.ScheduleNote != nil {
		note = *sched.ScheduleNote
	}
	input := slipService.ScheduleInput{
		ScheduleID:       sched.ScheduleID,
		Date:             sched.ScheduleDate,
		Room:             sched.ScheduleRoom,
		AttendanceStatus: status,
		Note:             note,
		TeacherFee:       sched.ScheduleTeacherFee,
		TransportFee:     sched.ScheduleTransportFee,
	}
	if _, err := h.Reconciler.Reconcile(c.UserContext(), sched.ScheduleTeacherID, input, studentName, instrument); err != nil {
		log.Printf("[ERROR] Reconcile slip gagal untuk schedule %s: %v", sched.ScheduleID, err)
	}
}

func (h *StudentPackageController) toResponses(list []model.StudentPackageModel) ([]dto.StudentPackageResponse, error) {
	studentIDs := make([]uuid.UUID, 0, len(list))
	packageIDs := make([]uuid.UUID, 0, len(list))
	for _, sp := range list {
		studentIDs = append(studentIDs, sp.StudentPackageStudentID)
		packageIDs = append(packageIDs, sp.StudentPackagePackageID)
	}

	studentNames := map[uuid.UUID]string{}
	if len(studentIDs) > 0 {
		var users []userModel.UserModel
		if err := h.DB.Select("id", "name").Where("id IN ?", studentIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			studentNames[u.ID] = u.Name
		}
	}

	type pkgInfo struct {
		Name       string
		Instrument string
	}
	pkgInfos := map[uuid.UUID]pkgInfo{}
	if len(packageIDs) > 0 {
		var pkgs []pkgModel.PackageModel
		if err := h.DB.Select("package_id", "package_name", "package_instrument").
			Where("package_id IN ?", packageIDs).Find(&pkgs).Error; err != nil {
			return nil, err
		}
		for _, p := range pkgs {
			pkgInfos[p.PackageID] = pkgInfo{Name: p.PackageName, Instrument: p.PackageInstrument}
		}
	}

	out := make([]dto.StudentPackageResponse, 0, len(list))
	for _, sp := range list {
		info := pkgInfos[sp.StudentPackagePackageID]
		out = append(out, dto.FromModel(sp, studentNames[sp.StudentPackageStudentID], info.Name, info.Instrument))
	}
	return out, nil
}
