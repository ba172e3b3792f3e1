package userRoutes

import (
	studentController "lms/controllers/student"
	userController "lms/controllers/user"
	"lms/middleware"
	userValidator "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user provisioning and student profile routes
func SetupUserRoutes(app *fiber.App, users *userController.Controller, students *studentController.Controller) {
	app.Post("/user/register", userValidator.Register(), users.Register)

	studentGroup := app.Group("/student", middleware.JWTMiddleware)
	studentGroup.Get("/profile", students.GetProfile)
	studentGroup.Put("/profile", userValidator.UpdateProfile(), students.UpdateProfile)
	studentGroup.Get("/courses", students.GetPurchasedCourses)
}
