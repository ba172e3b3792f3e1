package middleware

import (
	"errors"

	"lms/services/apperrors"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that allows only the listed roles. The
// role comes from the verified JWT claims set by JWTMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}

// ServiceErrorResponse maps the service failure taxonomy onto HTTP replies.
// Used by every controller that calls into the catalog or payments services.
func ServiceErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	case errors.Is(err, apperrors.ErrForbidden):
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not own this resource!", nil)
	case errors.Is(err, apperrors.ErrCourseIncomplete):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Course incomplete. Add modules, lessons, and price.", nil)
	case errors.Is(err, apperrors.ErrCourseNotPurchasable):
		return JsonResponse(c, fiber.StatusBadRequest, false, "Course is not available for purchase!", nil)
	case errors.Is(err, apperrors.ErrConflict):
		return JsonResponse(c, fiber.StatusConflict, false, "Conflicting update, please retry!", nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
	}
}
