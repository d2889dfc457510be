package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	userCtl "github.com/abdulaziz27/fermata-backend/internals/features/users/user/controller"
	authMw "github.com/abdulaziz27/fermata-backend/internals/middlewares/auth"
)

// UserRoutes: r sudah berada di belakang AuthMiddleware.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userCtl.NewUserController(db)

	users := r.Group("/users")

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("user"), constants.AdminOnly...)

	users.Get("/profile", ctl.GetProfile)
	users.Put("/profile", ctl.UpdateProfile)
	users.Get("/", adminOnly, ctl.GetUsers)
	users.Delete("/:id", adminOnly, ctl.DeleteUser)
}
