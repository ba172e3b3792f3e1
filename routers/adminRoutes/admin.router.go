package adminRoutes

import (
	adminController "lms/controllers/admin"
	"lms/middleware"
	"lms/models"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up user management routes, admin role only
func SetupAdminRoutes(app *fiber.App, ctrl *adminController.Controller) {
	group := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	group.Get("/users", ctrl.ListUsers)
	group.Put("/users/:id", adminValidator.UserID(), adminValidator.UpdateUser(), ctrl.UpdateUser)
	group.Delete("/users/:id", adminValidator.UserID(), ctrl.DeleteUser)
}
