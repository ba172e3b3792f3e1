package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateCourseRequest is stashed in c.Locals("validatedCourse")
type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// ModuleRequest is stashed in c.Locals("validatedModule")
type ModuleRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// LessonRequest is stashed in c.Locals("validatedLesson")
type LessonRequest struct {
	Title    string `json:"title" validate:"required"`
	Duration int    `json:"duration"`
}

// ListRequest is stashed in c.Locals("validatedList")
type ListRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errs := validationErrors(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func AddModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errs := validationErrors(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// AddLesson validates the multipart lesson form. A bad duration value is
// clamped to 0, never rejected.
func AddLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		title := strings.TrimSpace(c.FormValue("title"))
		if title == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		duration, err := strconv.Atoi(strings.TrimSpace(c.FormValue("duration")))
		if err != nil || duration < 0 {
			duration = 0
		}

		c.Locals("moduleID", moduleID)
		c.Locals("validatedLesson", &LessonRequest{Title: title, Duration: duration})
		return c.Next()
	}
}

// IDParam validates the :id path parameter and stores it under the given
// Locals key. Shared by publish, delete and detail routes.
func IDParam(localKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}
		c.Locals(localKey, id)
		return c.Next()
	}
}

func ListCourses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 || reqData.Limit > 100 {
			reqData.Limit = 10
		}
		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
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
