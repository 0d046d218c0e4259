package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/service"
)

type MasterDataHandler struct {
	service service.MasterDataService
}

func NewMasterDataHandler(s service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{service: s}
}

func (h *MasterDataHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}
	if err := h.service.CreateCategory(&category, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return created(c, "Category created", category)
}

func (h *MasterDataHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid category ID"})
	}
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}
	updated, err := h.service.UpdateCategory(id, &category, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Category updated", updated)
}

func (h *MasterDataHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid category ID"})
	}
	if err := h.service.DeleteCategory(id); err != nil {
		return fail(c, err)
	}
	return ok(c, "Category deleted", nil)
}

func (h *MasterDataHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(categories)
}

func (h *MasterDataHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}
	if err := h.service.CreateSupplier(&supplier, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return created(c, "Supplier created", supplier)
}

func (h *MasterDataHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid supplier ID"})
	}
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}
	updated, err := h.service.UpdateSupplier(id, &supplier, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Supplier updated", updated)
}

func (h *MasterDataHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid supplier ID"})
	}
	if err := h.service.DeleteSupplier(id); err != nil {
		return fail(c, err)
	}
	return ok(c, "Supplier deleted", nil)
}

func (h *MasterDataHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.GetSuppliers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(suppliers)
}
