package adminValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// UpdateUserRequest is stashed in c.Locals("validatedUserUpdate")
type UpdateUserRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,oneof=STUDENT INSTRUCTOR ADMIN"`
}

func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}
		c.Locals("targetUserID", uint(id))
		return c.Next()
	}
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errs := validationErrors(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals("validatedUserUpdate", reqData)
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
