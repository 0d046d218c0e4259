package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/service"
)

// Helper untuk ambil User Info dari JWT Context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system" // Fallback (shouldn't happen in protected routes)
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// fail maps the service error taxonomy onto HTTP statuses. Every failure is
// locally recoverable by the caller; nothing here is fatal.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest

	var validationErr *service.ValidationError
	var conflictErr *service.ConflictError
	var notFoundErr *service.NotFoundError
	var persistenceErr *service.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		status = fiber.StatusBadRequest
	case errors.As(err, &conflictErr):
		status = fiber.StatusConflict
	case errors.As(err, &notFoundErr):
		status = fiber.StatusNotFound
	case errors.As(err, &persistenceErr):
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(fiber.Map{"success": false, "message": err.Error()})
}

func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "message": message, "data": data})
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": message, "data": data})
}
