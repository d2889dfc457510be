package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	slipCtl "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/controller"
	authMw "github.com/abdulaziz27/fermata-backend/internals/middlewares/auth"
)

// SalarySlipRoutes: r sudah berada di belakang AuthMiddleware.
func SalarySlipRoutes(r fiber.Router, db *gorm.DB) {
	ctl := slipCtl.NewSalarySlipController(db)

	slips := r.Group("/salary-slips")

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("salary slip"), constants.AdminOnly...)

	slips.Get("/", adminOnly, ctl.GetAll)
	slips.Get("/download/:teacherId/:month/:year", adminOnly, ctl.DownloadPDF)
	// teacher boleh ambil miliknya sendiri; ownership dicek di controller
	slips.Get("/:teacherId/:month/:year", ctl.GetByPeriod)
}
