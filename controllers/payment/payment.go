package paymentController

import (
	"fmt"

	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/payments"
	"lms/services/paypal"
	"lms/utils"
	paymentValidator "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller drives the checkout flow: order creation and capture against
// the provider, then reconciliation of the confirmed payment into
// enrollment and ledger state.
type Controller struct {
	DB       *gorm.DB
	Payments *payments.Service
	PayPal   *paypal.Client
}

func New(db *gorm.DB, pay *payments.Service, pp *paypal.Client) *Controller {
	return &Controller{DB: db, Payments: pay, PayPal: pp}
}

// CreateOrder opens a provider order for the course's list price.
func (ctrl *Controller) CreateOrder(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedOrder").(*paymentValidator.CreateOrderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var crs courseModels.Course
	if err := ctrl.DB.Where("id = ? AND published = ?", reqData.CourseID, true).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not available!", nil)
	}

	order, err := ctrl.PayPal.CreateOrder(crs.Price, "USD", fmt.Sprintf("Course %d enrollment", crs.ID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create payment order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order created!", fiber.Map{"id": order.ID})
}

// CaptureOrder captures the approved provider order and reconciles the
// confirmed payment. A duplicated capture callback returns the same
// enrolled result as the first one.
func (ctrl *Controller) CaptureOrder(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCapture").(*paymentValidator.CaptureOrderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	capture, err := ctrl.PayPal.CaptureOrder(reqData.OrderID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to capture payment!", nil)
	}
	if capture.Status != "COMPLETED" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment not completed!", fiber.Map{
			"status": capture.Status,
		})
	}

	result, err := ctrl.Payments.Reconcile(userID, reqData.CourseID, capture.OrderID, capture.Amount)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to record enrollment!")
	}

	if !result.AlreadyEnrolled {
		ctrl.sendEnrollmentEmail(userID, reqData.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", result)
}

// SendPayout pushes an ad hoc payout to an instructor's PayPal email.
func (ctrl *Controller) SendPayout(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPayout").(*paymentValidator.PayoutRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	batchID, err := ctrl.PayPal.SendPayout(reqData.Email, reqData.Amount, "Instructor payout")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to send payout!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payout sent!", fiber.Map{"batchId": batchID})
}

func (ctrl *Controller) sendEnrollmentEmail(userID, courseID uint) {
	var user models.User
	if err := ctrl.DB.First(&user, userID).Error; err != nil {
		return
	}
	var crs courseModels.Course
	if err := ctrl.DB.First(&crs, courseID).Error; err != nil {
		return
	}
	go utils.SendEnrollmentEmail(user.Email, user.Name, crs.Title)
}
