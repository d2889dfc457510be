package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	dto "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/dto"
	model "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/model"
	service "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/service"
	userModel "github.com/abdulaziz27/fermata-backend/internals/features/users/user/model"
	helper "github.com/abdulaziz27/fermata-backend/internals/helpers"
)

type SalarySlipController struct {
	DB    *gorm.DB
	Store service.SlipStore
}

func NewSalarySlipController(db *gorm.DB) *SalarySlipController {
	return &SalarySlipController{DB: db, Store: service.NewGormSlipStore(db)}
}

/* ======================= LIST (ADMIN) ======================= */
// GET /api/salary-slips
func (h *SalarySlipController) GetAll(c *fiber.Ctx) error {
	slips, err := h.Store.ListAll(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	names, err := h.teacherNames(slipTeacherIDs(slips))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.SalarySlipResponse, 0, len(slips))
	for _, s := range slips {
		resp, err := dto.FromModel(s, names[s.SalarySlipTeacherID])
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Detail slip korup: "+err.Error())
		}
		out = append(out, resp)
	}
	return helper.JsonOK(c, "OK", out)
}

/* ======================= GET ONE ======================= */
// GET /api/salary-slips/:teacherId/:month/:year
// Teacher hanya boleh ambil miliknya sendiri; admin bebas.
func (h *SalarySlipController) GetByPeriod(c *fiber.Ctx) error {
	teacherID, month, year, err := parsePeriodParams(c)
	if err != nil {
		return err
	}

	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}
	if role != constants.RoleAdmin {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		if role != constants.RoleTeacher || userID != teacherID {
			return fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengakses slip gaji guru lain")
		}
	}

	slip, err := h.Store.FindByPeriod(c.UserContext(), teacherID, month, year)
	if err != nil {
		if errors.Is(err, service.ErrSlipNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Salary slip tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	name, err := h.teacherName(teacherID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	resp, err := dto.FromModel(*slip, name)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Detail slip korup: "+err.Error())
	}
	return helper.JsonOK(c, "OK", resp)
}

/* ======================= DOWNLOAD PDF (ADMIN) ======================= */
// GET /api/salary-slips/download/:teacherId/:month/:year
func (h *SalarySlipController) DownloadPDF(c *fiber.Ctx) error {
	teacherID, month, year, err := parsePeriodParams(c)
	if err != nil {
		return err
	}

	slip, err := h.Store.FindByPeriod(c.UserContext(), teacherID, month, year)
	if err != nil {
		if errors.Is(err, service.ErrSlipNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Salary slip tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	name, err := h.teacherName(teacherID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	raw, err := service.RenderSlipPDF(*slip, name)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal render PDF: "+err.Error())
	}

	filename := fmt.Sprintf("salary-slip-%s-%d-%d.pdf",
		strings.ReplaceAll(strings.ToLower(name), " ", "-"), month, year)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(raw)
}

/* ======================= helpers ======================= */

func parsePeriodParams(c *fiber.Ctx) (uuid.UUID, int, int, error) {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return uuid.Nil, 0, 0, fiber.NewError(fiber.StatusBadRequest, "teacherId tidak valid")
	}
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return uuid.Nil, 0, 0, fiber.NewError(fiber.StatusBadRequest, "month harus 1-12")
	}
	year, err := c.ParamsInt("year")
	if err != nil || year < 2000 || year > 2100 {
		return uuid.Nil, 0, 0, fiber.NewError(fiber.StatusBadRequest, "year tidak valid")
	}
	return teacherID, month, year, nil
}

func slipTeacherIDs(slips []model.SalarySlipModel) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(slips))
	out := make([]uuid.UUID, 0, len(slips))
	for _, s := range slips {
		if _, ok := seen[s.SalarySlipTeacherID]; ok {
			continue
		}
		seen[s.SalarySlipTeacherID] = struct{}{}
		out = append(out, s.SalarySlipTeacherID)
	}
	return out
}

func (h *SalarySlipController) teacherNames(ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var users []userModel.UserModel
	if err := h.DB.Select("id", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func (h *SalarySlipController) teacherName(id uuid.UUID) (string, error) {
	var u userModel.UserModel
	if err := h.DB.Select("id", "name").Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return u.Name, nil
}
