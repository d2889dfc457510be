package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	pkgCtl "github.com/abdulaziz27/fermata-backend/internals/features/lessons/packages/controller"
	authMw "github.com/abdulaziz27/fermata-backend/internals/middlewares/auth"
)

// PackagePublicRoutes: katalog paket bisa dilihat tanpa login.
func PackagePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := pkgCtl.NewPackageController(db)
	r.Get("/packages", ctl.GetAll)
}

// PackageAdminRoutes: r sudah di belakang AuthMiddleware.
func PackageAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := pkgCtl.NewPackageController(db)

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("paket les"), constants.AdminOnly...)

	pkg := r.Group("/packages", adminOnly)
	pkg.Post("/", ctl.Create)
	pkg.Put("/:id", ctl.Update)
	pkg.Delete("/:id", ctl.Delete)
}
