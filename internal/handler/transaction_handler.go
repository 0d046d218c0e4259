package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/service"
)

type TransactionHandler struct {
	ledger service.LedgerService
}

func NewTransactionHandler(ledger service.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var tx model.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	// The recorder is always the authenticated user.
	if userID, err := uuid.Parse(getUserID(c)); err == nil {
		tx.UserID = userID
	}

	recorded, err := h.ledger.RecordTransaction(&tx, getUserName(c))
	if err != nil {
		return fail(c, err)
	}

	return created(c, "Transaction recorded", recorded)
}

func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid transaction ID"})
	}

	var req service.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	updated, err := h.ledger.UpdateTransaction(id, &req, getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return ok(c, "Transaction updated", updated)
}

func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid transaction ID"})
	}

	if err := h.ledger.DeleteTransaction(id, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return ok(c, "Transaction deleted", nil)
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.ledger.GetAllTransactions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid transaction ID"})
	}

	tx, err := h.ledger.GetTransactionByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(tx)
}
