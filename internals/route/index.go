package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	packageRoute "github.com/abdulaziz27/fermata-backend/internals/features/lessons/packages/route"
	spRoute "github.com/abdulaziz27/fermata-backend/internals/features/lessons/studentpackages/route"
	slipRoute "github.com/abdulaziz27/fermata-backend/internals/features/payroll/salaryslips/route"
	authRoute "github.com/abdulaziz27/fermata-backend/internals/features/users/auth/route"
	userRoute "github.com/abdulaziz27/fermata-backend/internals/features/users/user/route"
	authMw "github.com/abdulaziz27/fermata-backend/internals/middlewares/auth"
)

// SetupRoutes mendaftarkan seluruh rute aplikasi di bawah /api.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// publik
	authRoute.AuthRoutes(api, db)
	packageRoute.PackagePublicRoutes(api, db)

	// semua rute di bawah ini butuh Bearer token
	protected := api.Group("", authMw.AuthMiddleware(db))

	userRoute.UserRoutes(protected, db)
	packageRoute.PackageAdminRoutes(protected, db)
	spRoute.StudentPackageRoutes(protected, db)
	slipRoute.SalarySlipRoutes(protected, db)
}
