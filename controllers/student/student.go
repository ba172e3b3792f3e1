package studentController

import (
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	userValidator "lms/validators/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// GetProfile returns the user with profile, enrollments and payment history.
func (ctrl *Controller) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var profile models.UserProfile
	ctrl.DB.Where("user_id = ?", userID).First(&profile)

	var enrollments []courseModels.Enrollment
	ctrl.DB.Where("student_id = ?", userID).Preload("Course").Find(&enrollments)

	var paymentHistory []models.Payment
	ctrl.DB.Where("student_id = ?", userID).Order("created_at desc").Find(&paymentHistory)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user":        user,
		"profile":     profile,
		"enrollments": enrollments,
		"payments":    paymentHistory,
	})
}

// UpdateProfile upserts the user's profile fields.
func (ctrl *Controller) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*userValidator.ProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var profile models.UserProfile
	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.UserProfile{UserID: userID}).FirstOrCreate(&profile).Error; err != nil {
			return err
		}

		if reqData.Name != "" {
			profile.Name = reqData.Name
		}
		if reqData.Bio != "" {
			profile.Bio = reqData.Bio
		}
		if reqData.AvatarURL != "" {
			profile.AvatarURL = reqData.AvatarURL
		}
		if reqData.Country != "" {
			profile.Country = reqData.Country
		}
		if reqData.Website != "" {
			profile.Website = reqData.Website
		}
		if reqData.Github != "" {
			profile.Github = reqData.Github
		}
		if reqData.Linkedin != "" {
			profile.Linkedin = reqData.Linkedin
		}
		if reqData.Twitter != "" {
			profile.Twitter = reqData.Twitter
		}

		return tx.Save(&profile).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", profile)
}

// GetPurchasedCourses lists the courses the student is enrolled in.
func (ctrl *Controller) GetPurchasedCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := ctrl.DB.Where("student_id = ?", userID).Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchased courses fetched successfully!", fiber.Map{
		"courses": enrollments,
	})
}
