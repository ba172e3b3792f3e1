package courseController

import (
	"lms/middleware"
	courseModels "lms/models/course"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller serves the public course surface: published listings and
// course details. Read-only; mutations go through the instructor surface.
type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// ListAvailable returns published courses with pagination.
func (ctrl *Controller) ListAvailable(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*courseValidator.ListRequest)
	if !ok {
		reqData = &courseValidator.ListRequest{Page: 1, Limit: 10}
	}
	offset := (reqData.Page - 1) * reqData.Limit

	db := ctrl.DB.Model(&courseModels.Course{}).Where("published = ?", true)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(reqData.Limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns one published course with its ordered modules
// and lessons.
func (ctrl *Controller) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var crs courseModels.Course
	if err := ctrl.DB.Where("id = ? AND published = ?", courseID, true).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	if err := ctrl.DB.Where("course_id = ?", courseID).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	type moduleWithLessons struct {
		courseModels.Module
		Lessons []courseModels.Lesson `json:"lessons"`
	}

	detailed := make([]moduleWithLessons, len(modules))
	for i, mod := range modules {
		var lessons []courseModels.Lesson
		ctrl.DB.Where("module_id = ?", mod.ID).Order("order_index asc").Find(&lessons)
		detailed[i] = moduleWithLessons{Module: mod, Lessons: lessons}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":  crs,
		"modules": detailed,
	})
}
