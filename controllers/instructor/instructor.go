package instructorController

import (
	"lms/config"
	"lms/middleware"
	"lms/services/catalog"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// Controller exposes the instructor-facing content hierarchy operations.
// All mutation semantics live in the catalog service; handlers only map
// identity and validated input onto it.
type Controller struct {
	Catalog *catalog.Service
}

func New(cat *catalog.Service) *Controller {
	return &Controller{Catalog: cat}
}

func (ctrl *Controller) CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	crs, err := ctrl.Catalog.CreateCourse(userID, reqData.Title, reqData.Description, reqData.Category, reqData.Price)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Couldn't create course!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", crs)
}

func (ctrl *Controller) AddModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedModule").(*courseValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := ctrl.Catalog.AppendModule(courseID, userID, reqData.Title, reqData.Description)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Couldn't add the module!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module added successfully!", module)
}

// AddLesson stores the uploaded lesson media, then appends the lesson to
// its module. The thumbnail is optional.
func (ctrl *Controller) AddLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(uint)
	reqData, ok := c.Locals("validatedLesson").(*courseValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	videoFile, err := c.FormFile("video")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson video is required!", nil)
	}
	videoPath, err := utils.SaveUploadedFile(videoFile, config.AppConfig.UploadDir+"/lessons/videos")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store lesson video!", nil)
	}

	thumbnailURL := ""
	if thumbFile, err := c.FormFile("thumbnail"); err == nil {
		thumbPath, err := utils.SaveUploadedFile(thumbFile, config.AppConfig.UploadDir+"/lessons/thumbnails")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store lesson thumbnail!", nil)
		}
		thumbnailURL = utils.GetFileURL(thumbPath)
	}

	lesson, err := ctrl.Catalog.AppendLesson(moduleID, userID, reqData.Title, reqData.Duration, utils.GetFileURL(videoPath), thumbnailURL)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to add lesson!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson added successfully!", lesson)
}

func (ctrl *Controller) PublishCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	crs, err := ctrl.Catalog.TryPublish(courseID, userID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err, "Couldn't publish the course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", crs)
}

func (ctrl *Controller) DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	if err := ctrl.Catalog.DeleteCourse(courseID, userID); err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to delete the course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

func (ctrl *Controller) DeleteModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(uint)

	if err := ctrl.Catalog.DeleteModule(moduleID, userID); err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to delete the module!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

func (ctrl *Controller) DeleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	if err := ctrl.Catalog.DeleteLesson(lessonID, userID); err != nil {
		return middleware.ServiceErrorResponse(c, err, "Failed to delete the lesson!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
