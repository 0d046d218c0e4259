package handler

import (
	"bytes"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/service"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/export"
)

type CostControlHandler struct {
	service service.CostControlService
}

func NewCostControlHandler(s service.CostControlService) *CostControlHandler {
	return &CostControlHandler{service: s}
}

func monthYearQuery(c *fiber.Ctx) (int, int) {
	now := time.Now()
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		year = now.Year()
	}
	return month, year
}

// GetReport handles GET /api/v1/cost-control/report?month=3&year=2024
func (h *CostControlHandler) GetReport(c *fiber.Ctx) error {
	month, year := monthYearQuery(c)
	report, err := h.service.MonthlyReport(month, year)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}

// ExportReportCSV handles GET /api/v1/cost-control/report/export
func (h *CostControlHandler) ExportReportCSV(c *fiber.Ctx) error {
	month, year := monthYearQuery(c)
	headers, rows, err := h.service.ReportCSV(month, year)
	if err != nil {
		return fail(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, headers, rows); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to build CSV"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="laporan_cost_control.csv"`)
	return c.Send(buf.Bytes())
}

// ExportReportXLSX handles GET /api/v1/cost-control/report/export-xlsx
func (h *CostControlHandler) ExportReportXLSX(c *fiber.Ctx) error {
	month, year := monthYearQuery(c)
	headers, rows, err := h.service.ReportCSV(month, year)
	if err != nil {
		return fail(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, "CostControl", headers, rows); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to build XLSX"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="laporan_cost_control.xlsx"`)
	return c.Send(buf.Bytes())
}

// ImportPrices handles POST /api/v1/cost-control/prices/import with a raw
// CSV body (kolom: itemId,price).
func (h *CostControlHandler) ImportPrices(c *fiber.Ctx) error {
	applied, err := h.service.ImportPrices(bytes.NewReader(c.Body()))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Harga berhasil diimpor dari CSV", fiber.Map{"applied": applied})
}

// SetPrice handles PUT /api/v1/cost-control/prices/:id
func (h *CostControlHandler) SetPrice(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid item ID"})
	}
	var req struct {
		Price int64 `json:"price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}
	if err := h.service.SetPrice(id, req.Price); err != nil {
		return fail(c, err)
	}
	return ok(c, "Harga disimpan", nil)
}

// GetDefinitions handles GET /api/v1/cost-control/prices
func (h *CostControlHandler) GetDefinitions(c *fiber.Ctx) error {
	defs, err := h.service.GetDefinitions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(defs)
}

// GetEntries handles GET /api/v1/cost-control/log-book
func (h *CostControlHandler) GetEntries(c *fiber.Ctx) error {
	entries, err := h.service.GetEntries()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// CreateEntry handles POST /api/v1/cost-control/log-book
func (h *CostControlHandler) CreateEntry(c *fiber.Ctx) error {
	var entry model.LogBookEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}
	if err := h.service.AddEntry(&entry, getUserID(c)); err != nil {
		return fail(c, err)
	}
	return created(c, "Log book entry created", entry)
}

// UpdateEntry handles PUT /api/v1/cost-control/log-book/:id
func (h *CostControlHandler) UpdateEntry(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid entry ID"})
	}
	var entry model.LogBookEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}
	updated, err := h.service.UpdateEntry(id, &entry, getUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Log book entry updated", updated)
}

// DeleteEntry handles DELETE /api/v1/cost-control/log-book/:id
func (h *CostControlHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid entry ID"})
	}
	if err := h.service.DeleteEntry(id); err != nil {
		return fail(c, err)
	}
	return ok(c, "Log book entry deleted", nil)
}
