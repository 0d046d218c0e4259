package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/service"
)

type DepreciationHandler struct {
	service service.DepreciationService
}

func NewDepreciationHandler(s service.DepreciationService) *DepreciationHandler {
	return &DepreciationHandler{service: s}
}

func (h *DepreciationHandler) Create(c *fiber.Ctx) error {
	var dep model.Depreciation
	if err := c.BodyParser(&dep); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	if userID, err := uuid.Parse(getUserID(c)); err == nil {
		dep.UserID = userID
	}

	if err := h.service.Create(&dep, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return created(c, "Depreciation recorded", dep)
}

func (h *DepreciationHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid depreciation ID"})
	}
	var dep model.Depreciation
	if err := c.BodyParser(&dep); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}
	updated, err := h.service.Update(id, &dep, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Depreciation updated", updated)
}

func (h *DepreciationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid depreciation ID"})
	}
	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return ok(c, "Depreciation deleted", nil)
}

func (h *DepreciationHandler) GetAll(c *fiber.Ctx) error {
	deps, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(deps)
}

func (h *DepreciationHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid depreciation ID"})
	}
	dep, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dep)
}
