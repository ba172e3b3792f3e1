package paymentValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateOrderRequest is stashed in c.Locals("validatedOrder")
type CreateOrderRequest struct {
	CourseID uint `json:"courseId" validate:"required"`
}

// CaptureOrderRequest is stashed in c.Locals("validatedCapture")
type CaptureOrderRequest struct {
	OrderID  string `json:"orderId" validate:"required"`
	CourseID uint   `json:"courseId" validate:"required"`
}

// PayoutRequest is stashed in c.Locals("validatedPayout")
type PayoutRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Amount float64 `json:"amount" validate:"gt=0"`
}

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateOrderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errs := validationErrors(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals("validatedOrder", reqData)
		return c.Next()
	}
}

func CaptureOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CaptureOrderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errs := validationErrors(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals("validatedCapture", reqData)
		return c.Next()
	}
}

func Payout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PayoutRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errs := validationErrors(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals("validatedPayout", reqData)
		return c.Next()
	}
}

func validationErrors(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	errs := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errs[fieldErr.Field()] = "Failed validation rule: " + fieldErr.Tag()
	}
	return errs
}
