package adminController

import (
	"time"

	"lms/middleware"
	"lms/models"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// ListUsers returns all users with their profiles.
func (ctrl *Controller) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := ctrl.DB.Where("is_deleted = ?", false).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	type userWithProfiles struct {
		models.User
		Profile           *models.UserProfile       `json:"profile,omitempty"`
		InstructorProfile *models.InstructorProfile `json:"instructor_profile,omitempty"`
	}

	result := make([]userWithProfiles, len(users))
	for i, user := range users {
		entry := userWithProfiles{User: user}

		var profile models.UserProfile
		if err := ctrl.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			entry.Profile = &profile
		}
		if user.Role == models.RoleInstructor {
			var instr models.InstructorProfile
			if err := ctrl.DB.Where("user_id = ?", user.ID).First(&instr).Error; err == nil {
				entry.InstructorProfile = &instr
			}
		}
		result[i] = entry
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": result,
	})
}

// UpdateUser changes a user's email and/or role.
func (ctrl *Controller) UpdateUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)

	reqData, ok := c.Locals("validatedUserUpdate").(*adminValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Email != "" {
		user.Email = reqData.Email
	}
	if reqData.Role != "" {
		user.Role = reqData.Role
	}
	user.UpdatedAt = time.Now()

	if err := ctrl.DB.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update the user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated!", user)
}

// DeleteUser soft-deletes a user. Course content and ledger rows are left
// untouched; the payment ledger is append-only.
func (ctrl *Controller) DeleteUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)

	var user models.User
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := ctrl.DB.Model(&user).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete the user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User successfully deleted!", nil)
}
