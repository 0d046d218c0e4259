package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/service"
)

type ItemHandler struct {
	service service.ItemService
}

func NewItemHandler(s service.ItemService) *ItemHandler {
	return &ItemHandler{service: s}
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var item model.Item
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	if err := h.service.CreateItem(&item, getUserID(c), getUserName(c)); err != nil {
		return fail(c, err)
	}

	return created(c, "Item created", item)
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid item ID"})
	}

	var item model.Item
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	updated, err := h.service.UpdateItem(id, &item, getUserID(c), getUserName(c))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "Item updated", updated)
}

func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid item ID"})
	}

	if err := h.service.DeleteItem(id, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return ok(c, "Item deleted", nil)
}

func (h *ItemHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(items)
}

func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid item ID"})
	}

	item, err := h.service.GetItemByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}
