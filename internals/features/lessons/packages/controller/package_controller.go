package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	dto "github.com/abdulaziz27/fermata-backend/internals/features/lessons/packages/dto"
	model "github.com/abdulaziz27/fermata-backend/internals/features/lessons/packages/model"
	helper "github.com/abdulaziz27/fermata-backend/internals/helpers"
)

type PackageController struct {
	DB *gorm.DB
}

func NewPackageController(db *gorm.DB) *PackageController {
	return &PackageController{DB: db}
}

/* ======================= LIST (PUBLIC) ======================= */
// GET /api/packages (hanya paket aktif)
func (h *PackageController) GetAll(c *fiber.Ctx) error {
	var list []model.PackageModel
	if err := h.DB.
		Where("package_is_active = ?", true).
		Order("package_created_at DESC").
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModels(list))
}

/* ======================= CREATE (ADMIN) ======================= */
// POST /api/packages
func (h *PackageController) Create(c *fiber.Ctx) error {
	var req dto.CreatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if !constants.IsValidDuration(req.PackageDuration) {
		return fiber.NewError(fiber.StatusBadRequest, "Durasi harus 30, 45, atau 60 menit")
	}
	if !constants.IsValidInstrument(req.PackageInstrument) {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Instrumen harus salah satu dari: %s", strings.Join(constants.Instruments, ", ")))
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat paket")
	}
	return helper.JsonCreated(c, "Paket berhasil dibuat", dto.FromModel(*m))
}

/* ======================= UPDATE (ADMIN) ======================= */
// PUT /api/packages/:id
func (h *PackageController) Update(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak boleh kosong")
	}

	var req dto.UpdatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.PackageDuration != nil && !constants.IsValidDuration(*req.PackageDuration) {
		return fiber.NewError(fiber.StatusBadRequest, "Durasi harus 30, 45, atau 60 menit")
	}
	if req.PackageInstrument != nil && !constants.IsValidInstrument(*req.PackageInstrument) {
		return fiber.NewError(fiber.StatusBadRequest, "Instrumen tidak valid")
	}

	var curr model.PackageModel
	if err := h.DB.Where("package_id = ?", idStr).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Paket tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// Bangun patch hanya dari field yang dikirim (pointer != nil)
	patch := map[string]interface{}{}
	if req.PackageName != nil {
		patch["package_name"] = *req.PackageName
	}
	if req.PackageDescription != nil {
		patch["package_description"] = *req.PackageDescription
	}
	if req.PackageDuration != nil {
		patch["package_duration"] = *req.PackageDuration
	}
	if req.PackagePrice != nil {
		patch["package_price"] = *req.PackagePrice
	}
	if req.PackageSessionCount != nil {
		patch["package_session_count"] = *req.PackageSessionCount
	}
	if req.PackageInstrument != nil {
		patch["package_instrument"] = *req.PackageInstrument
	}
	if req.PackageIsActive != nil {
		patch["package_is_active"] = *req.PackageIsActive
	}
	if len(patch) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", dto.FromModel(curr))
	}

	if err := h.DB.Model(&model.PackageModel{}).
		Where("package_id = ?", idStr).
		Updates(patch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui paket")
	}

	var updated model.PackageModel
	if err := h.DB.Where("package_id = ?", idStr).First(&updated).Error; err != nil {
		return helper.JsonUpdated(c, "Paket berhasil diperbarui", dto.FromModel(curr)) // fallback
	}
	return helper.JsonUpdated(c, "Paket berhasil diperbarui", dto.FromModel(updated))
}

/* ======================= DELETE (ADMIN) ======================= */
// DELETE /api/packages/:id
// Soft delete: paket cuma dinonaktifkan supaya student package lama tetap
// bisa me-resolve nama & instrumen paketnya.
func (h *PackageController) Delete(c *fiber.Ctx) error {
	idStr := c.Params("id")
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak boleh kosong")
	}

	res := h.DB.Model(&model.PackageModel{}).
		Where("package_id = ?", idStr).
		Update("package_is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Paket tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Paket berhasil dihapus", fiber.Map{"id": idStr})
}
