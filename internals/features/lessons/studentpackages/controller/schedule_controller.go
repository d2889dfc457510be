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
	userModel "github.com/abdulaziz27/fermata-backend/internals/features/users/user/model"
	helper "github.com/abdulaziz27/fermata-backend/internals/helpers"
)

/* ======================= UPDATE SCHEDULE (ADMIN) ======================= */
// PUT /api/student-packages/:studentPackageId/schedules/:scheduleId
func (h *StudentPackageController) UpdateSchedule(c *fiber.Ctx) error {
	sched, err := h.findSchedule(c)
	if err != nil {
		return err
	}

	var req dto.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.ScheduleRoom != nil && *req.ScheduleRoom != "" && !constants.IsValidRoom(*req.ScheduleRoom) {
		return fiber.NewError(fiber.StatusBadRequest, "Ruang tidak valid: "+*req.ScheduleRoom)
	}
	if req.ScheduleTeacherID != nil {
		var n int64
		if err := h.DB.Model(&userModel.UserModel{}).
			Where("id = ? AND role = ?", *req.ScheduleTeacherID, constants.RoleTeacher).
			Count(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Guru tidak ditemukan")
		}
	}

	oldTeacherID := sched.ScheduleTeacherID
	oldDate := sched.ScheduleDate

	patch := map[string]interface{}{}
	if req.ScheduleTeacherID != nil {
		patch["schedule_teacher_id"] = *req.ScheduleTeacherID
	}
	if req.ScheduleDate != nil {
		patch["schedule_date"] = *req.ScheduleDate
	}
	if req.ScheduleTime != nil {
		patch["schedule_time"] = *req.ScheduleTime
	}
	if req.ScheduleRoom != nil {
		patch["schedule_room"] = *req.ScheduleRoom
	}
	if req.ScheduleTeacherFee != nil {
		patch["schedule_teacher_fee"] = *req.ScheduleTeacherFee
	}
	if req.ScheduleTransportFee != nil {
		patch["schedule_transport_fee"] = *req.ScheduleTransportFee
	}
	if len(patch) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	if err := h.DB.Model(&model.ScheduleModel{}).
		Where("schedule_id = ?", sched.ScheduleID).
		Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal update schedule")
	}

	var updated model.ScheduleModel
	if err := h.DB.Where("schedule_id = ?", sched.ScheduleID).First(&updated).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// Pindah guru atau pindah periode berarti baris lama harus ditarik
	// dari slip lama sebelum baris baru masuk ke slip tujuan.
	// Schedule sudah tersimpan; kegagalan sisi slip hanya dicatat supaya
	// caller tetap melihat hasil operasi utamanya.
	movedTeacher := updated.ScheduleTeacherID != oldTeacherID
	movedPeriod := updated.ScheduleDate.Month() != oldDate.Month() || updated.ScheduleDate.Year() != oldDate.Year()
	if movedTeacher || movedPeriod {
		if err := h.Reconciler.Retract(c.UserContext(), oldTeacherID, sched.ScheduleID, oldDate); err != nil {
			log.Printf("[ERROR] Retract slip lama gagal untuk schedule %s: %v", sched.ScheduleID, err)
		}
	}

	studentName, instrument, err := h.scheduleContext(updated)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	h.reconcileSchedule(c, updated, studentName, instrument)

	return helper.JsonUpdated(c, "Schedule berhasil diupdate", updated)
}

/* ======================= UPDATE ATTENDANCE (TEACHER) ======================= */
// PUT /api/student-packages/:studentPackageId/schedules/:scheduleId/attendance
func (h *StudentPackageController) UpdateAttendance(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	sched, err := h.findSchedule(c)
	if err != nil {
		return err
	}
	if sched.ScheduleTeacherID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengubah absensi jadwal guru lain")
	}

	var req dto.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if !constants.IsValidAttendanceStatus(req.ScheduleAttendanceStatus) {
		return fiber.NewError(fiber.StatusBadRequest, "Status absensi tidak valid")
	}

	patch := map[string]interface{}{
		"schedule_attendance_status": req.ScheduleAttendanceStatus,
	}
	if req.ScheduleActivityPhoto != nil {
		patch["schedule_activity_photo"] = *req.ScheduleActivityPhoto
	}
	if req.ScheduleNote != nil {
		patch["schedule_note"] = *req.ScheduleNote
	}

	if err := h.DB.Model(&model.ScheduleModel{}).
		Where("schedule_id = ?", sched.ScheduleID).
		Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal update absensi")
	}

	var updated model.ScheduleModel
	if err := h.DB.Where("schedule_id = ?", sched.ScheduleID).First(&updated).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	studentName, instrument, err := h.scheduleContext(updated)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	h.reconcileSchedule(c, updated, studentName, instrument)

	return helper.JsonUpdated(c, "Absensi berhasil diupdate", updated)
}

/* ======================= DELETE SCHEDULE (ADMIN) ======================= */
// DELETE /api/student-packages/:studentPackageId/schedules/:scheduleId
func (h *StudentPackageController) DeleteSchedule(c *fiber.Ctx) error {
	sched, err := h.findSchedule(c)
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&model.ScheduleModel{}, "schedule_id = ?", sched.ScheduleID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus schedule")
	}

	// schedule sudah terhapus, kegagalan slip tidak membatalkan response
	if err := h.Reconciler.Retract(c.UserContext(), sched.ScheduleTeacherID, sched.ScheduleID, sched.ScheduleDate); err != nil {
		log.Printf("[ERROR] Retract slip gagal untuk schedule %s: %v", sched.ScheduleID, err)
	}

	return helper.JsonDeleted(c, "Schedule berhasil dihapus", fiber.Map{"id": sched.ScheduleID})
}

/* ======================= LIST SCHEDULES ======================= */

// GET /api/student-packages/schedules/teacher, jadwal milik guru yang login
func (h *StudentPackageController) GetTeacherSchedules(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var schedules []model.ScheduleModel
	if err := h.DB.
		Where("schedule_teacher_id = ?", userID).
		Order("schedule_date ASC").
		Find(&schedules).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", h.decorateSchedules(schedules))
}

// GET /api/student-packages/schedules/student, jadwal murid yang login
func (h *StudentPackageController) GetStudentSchedules(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var packageIDs []uuid.UUID
	if err := h.DB.Model(&model.StudentPackageModel{}).
		Where("student_package_student_id = ?", userID).
		Pluck("student_package_id", &packageIDs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if len(packageIDs) == 0 {
		return helper.JsonOK(c, "OK", []fiber.Map{})
	}

	var schedules []model.ScheduleModel
	if err := h.DB.
		Where("schedule_package_id IN ?", packageIDs).
		Order("schedule_date ASC").
		Find(&schedules).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", h.decorateSchedules(schedules))
}

/* ======================= helpers ======================= */

func (h *StudentPackageController) findSchedule(c *fiber.Ctx) (*model.ScheduleModel, error) {
	spID := c.Params("studentPackageId")
	schedID := c.Params("scheduleId")
	if spID == "" || schedID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID tidak boleh kosong")
	}

	var sched model.ScheduleModel
	if err := h.DB.
		Where("schedule_id = ? AND schedule_package_id = ?", schedID, spID).
		First(&sched).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Schedule tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &sched, nil
}

// scheduleContext mengambil nama murid & instrumen paket untuk baris slip.
func (h *StudentPackageController) scheduleContext(sched model.ScheduleModel) (studentName, instrument string, err error) {
	var sp model.StudentPackageModel
	if err = h.DB.Where("student_package_id = ?", sched.SchedulePackageID).First(&sp).Error; err != nil {
		return "", "", err
	}
	var student userModel.UserModel
	if err = h.DB.Select("id", "name").Where("id = ?", sp.StudentPackageStudentID).First(&student).Error; err != nil {
		return "", "", err
	}
	var pkg pkgModel.PackageModel
	if err = h.DB.Select("package_id", "package_instrument").
		Where("package_id = ?", sp.StudentPackagePackageID).First(&pkg).Error; err != nil {
		return "", "", err
	}
	return student.Name, pkg.PackageInstrument, nil
}

type scheduleWithContext struct {
	model.ScheduleModel
	StudentName       string `json:"student_name"`
	PackageInstrument string `json:"package_instrument"`
}

func (h *StudentPackageController) decorateSchedules(schedules []model.ScheduleModel) []scheduleWithContext {
	out := make([]scheduleWithContext, 0, len(schedules))
	if len(schedules) == 0 {
		return out
	}

	packageIDs := make([]uuid.UUID, 0, len(schedules))
	for _, s := range schedules {
		packageIDs = append(packageIDs, s.SchedulePackageID)
	}

	var sps []model.StudentPackageModel
	if err := h.DB.Where("student_package_id IN ?", packageIDs).Find(&sps).Error; err != nil {
		sps = nil
	}
	studentBySP := map[uuid.UUID]uuid.UUID{}
	pkgBySP := map[uuid.UUID]uuid.UUID{}
	studentIDs := make([]uuid.UUID, 0, len(sps))
	pkgIDs := make([]uuid.UUID, 0, len(sps))
	for _, sp := range sps {
		studentBySP[sp.StudentPackageID] = sp.StudentPackageStudentID
		pkgBySP[sp.StudentPackageID] = sp.StudentPackagePackageID
		studentIDs = append(studentIDs, sp.StudentPackageStudentID)
		pkgIDs = append(pkgIDs, sp.StudentPackagePackageID)
	}

	names := map[uuid.UUID]string{}
	if len(studentIDs) > 0 {
		var users []userModel.UserModel
		if err := h.DB.Select("id", "name").Where("id IN ?", studentIDs).Find(&users).Error; err == nil {
			for _, u := range users {
				names[u.ID] = u.Name
			}
		}
	}
	instruments := map[uuid.UUID]string{}
	if len(pkgIDs) > 0 {
		var pkgs []pkgModel.PackageModel
		if err := h.DB.Select("package_id", "package_instrument").Where("package_id IN ?", pkgIDs).Find(&pkgs).Error; err == nil {
			for _, p := range pkgs {
				instruments[p.PackageID] = p.PackageInstrument
			}
		}
	}

	for _, s := range schedules {
		out = append(out, scheduleWithContext{
			ScheduleModel:     s,
			StudentName:       names[studentBySP[s.SchedulePackageID]],
			PackageInstrument: instruments[pkgBySP[s.SchedulePackageID]],
		})
	}
	return out
}
