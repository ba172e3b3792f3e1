package courseValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateCourseValidation(t *testing.T) {
	app := fiber.New()
	app.Post("/course", CreateCourse(), func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedCourse").(*CreateCourseRequest)
		return c.JSON(reqData)
	})

	assert.Equal(t, fiber.StatusOK, postJSON(t, app, "/course",
		`{"title":"Go","description":"Learn Go","category":"programming","price":49.99}`))

	assert.Equal(t, fiber.StatusUnprocessableEntity, postJSON(t, app, "/course",
		`{"description":"missing title","category":"programming","price":10}`))

	assert.Equal(t, fiber.StatusUnprocessableEntity, postJSON(t, app, "/course",
		`{"title":"Go","description":"negative price","category":"programming","price":-1}`))
}

func TestAddModuleValidation(t *testing.T) {
	app := fiber.New()
	app.Post("/course/:id/module", AddModule(), func(c *fiber.Ctx) error {
		assert.Equal(t, uint(7), c.Locals("courseID").(uint))
		return c.SendStatus(fiber.StatusOK)
	})

	assert.Equal(t, fiber.StatusOK, postJSON(t, app, "/course/7/module", `{"title":"Module 1"}`))
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/course/abc/module", `{"title":"Module 1"}`))
	assert.Equal(t, fiber.StatusUnprocessableEntity, postJSON(t, app, "/course/7/module", `{"description":"no title"}`))
}
