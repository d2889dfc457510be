package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/abdulaziz27/fermata-backend/internals/constants"
	spCtl "github.com/abdulaziz27/fermata-backend/internals/features/lessons/studentpackages/controller"
	authMw "github.com/abdulaziz27/fermata-backend/internals/middlewares/auth"
)

// StudentPackageRoutes: r sudah berada di belakang AuthMiddleware.
func StudentPackageRoutes(r fiber.Router, db *gorm.DB) {
	ctl := spCtl.NewStudentPackageController(db)

	sp := r.Group("/student-packages")

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("student package"), constants.AdminOnly...)
	// admin ikut lolos gate teacher
	teacherGate := authMw.OnlyRoles(constants.RoleErrorTeacher("jadwal"), constants.TeacherAndAbove...)

	// rute statis didaftarkan sebelum rute ber-param supaya tidak ketangkap :studentPackageId
	sp.Get("/schedules/teacher", teacherGate, ctl.GetTeacherSchedules)
	sp.Get("/schedules/student", ctl.GetStudentSchedules)

	sp.Post("/", adminOnly, ctl.Create)
	sp.Get("/", adminOnly, ctl.GetAll)
	sp.Delete("/:studentPackageId", adminOnly, ctl.Delete)

	sp.Put("/:studentPackageId/schedules/:scheduleId", adminOnly, ctl.UpdateSchedule)
	sp.Delete("/:studentPackageId/schedules/:scheduleId", adminOnly, ctl.DeleteSchedule)
	sp.Put("/:studentPackageId/schedules/:scheduleId/attendance", teacherGate, ctl.UpdateAttendance)
}
