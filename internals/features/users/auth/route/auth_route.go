package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "github.com/abdulaziz27/fermata-backend/internals/features/users/auth/controller"
	"github.com/abdulaziz27/fermata-backend/internals/middlewares"
	authMw "github.com/abdulaziz27/fermata-backend/internals/middlewares/auth"
)

// AuthRoutes: base /api/users, login & register publik, logout butuh token.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	users := r.Group("/users")

	users.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	users.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	// refresh pakai cookie, tidak lewat AuthMiddleware
	users.Post("/refresh-token", ctl.RefreshToken)

	users.Post("/logout", authMw.AuthMiddleware(db), ctl.Logout)
}
