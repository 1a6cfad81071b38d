package response

import "github.com/gofiber/fiber/v2"

// Success sends the code-0 envelope with the given payload fields merged in.
func Success(c *fiber.Ctx, data fiber.Map) error {
	body := fiber.Map{"code": 0}
	for k, v := range data {
		body[k] = v
	}
	return c.JSON(body)
}

// Error sends the code:-1 envelope with a message.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"code": -1, "message": message})
}

// BadRequest sends a code:-1 envelope with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// ServerError sends a code:-1 envelope with status 500.
func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
