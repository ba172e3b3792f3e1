package instructorRoutes

import (
	instructorController "lms/controllers/instructor"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up course authoring routes, instructor role only
func SetupInstructorRoutes(app *fiber.App, ctrl *instructorController.Controller) {
	group := app.Group("/instructor", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor, models.RoleAdmin))

	group.Post("/course", courseValidator.CreateCourse(), ctrl.CreateCourse)
	group.Post("/course/:id/module", courseValidator.AddModule(), ctrl.AddModule)
	group.Post("/module/:id/lesson", courseValidator.AddLesson(), ctrl.AddLesson)
	group.Post("/course/:id/publish", courseValidator.IDParam("courseID"), ctrl.PublishCourse)

	group.Delete("/course/:id", courseValidator.IDParam("courseID"), ctrl.DeleteCourse)
	group.Delete("/module/:id", courseValidator.IDParam("moduleID"), ctrl.DeleteModule)
	group.Delete("/lesson/:id", courseValidator.IDParam("lessonID"), ctrl.DeleteLesson)
}
