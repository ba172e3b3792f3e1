package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public course browsing routes
func SetupCourseRoutes(app *fiber.App, ctrl *courseController.Controller) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.JWTMiddleware, courseValidator.ListCourses(), ctrl.ListAvailable)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.IDParam("courseID"), ctrl.GetCourseDetails)
}
