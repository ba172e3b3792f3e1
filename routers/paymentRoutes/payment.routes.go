package paymentRoutes

import (
	paymentController "lms/controllers/payment"
	"lms/middleware"
	"lms/models"
	paymentValidator "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up checkout and payout routes
func SetupPaymentRoutes(app *fiber.App, ctrl *paymentController.Controller) {
	group := app.Group("/payment", middleware.JWTMiddleware)

	group.Post("/order", paymentValidator.CreateOrder(), ctrl.CreateOrder)
	group.Post("/capture", paymentValidator.CaptureOrder(), ctrl.CaptureOrder)

	group.Post("/payout", middleware.RequireRole(models.RoleAdmin), paymentValidator.Payout(), ctrl.SendPayout)
}
