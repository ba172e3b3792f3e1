package userController

import (
	"time"

	"lms/middleware"
	"lms/models"
	"lms/utils"
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

// Register provisions an internal user for an authenticated external
// identity. Calling it again for the same identity returns the existing
// user with a fresh token.
func (ctrl *Controller) Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*userValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.User
	if err := ctrl.DB.Where("external_id = ? AND is_deleted = ?", reqData.ExternalID, false).First(&existing).Error; err == nil {
		token, err := middleware.GenerateJWT(existing.ID, existing.Name, existing.Role, existing.Email)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue token!", nil)
		}
		ctrl.DB.Model(&existing).Update("last_login", time.Now())
		return middleware.JsonResponse(c, fiber.StatusOK, true, "User already exists!", fiber.Map{
			"user":  existing,
			"token": token,
		})
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleStudent
	}
	name := reqData.Name
	if name == "" {
		name = "User"
	}

	user := models.User{
		ExternalID: reqData.ExternalID,
		Email:      reqData.Email,
		Name:       name,
		Role:       role,
		LastLogin:  time.Now(),
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.UserProfile{UserID: user.ID, Name: name}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error creating the user!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue token!", nil)
	}

	go utils.SendWelcomeEmail(user.Email, user.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created!", fiber.Map{
		"user":  user,
		"token": token,
	})
}
