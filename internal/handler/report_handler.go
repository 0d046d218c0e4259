package handler

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/service"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/export"
)

// ReportHandler serves the downloadable CSV/XLSX listings of the reports
// screen. The filename set mirrors the original exports.
type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type exportFn func() ([]string, [][]string, error)

func (h *ReportHandler) sendCSV(c *fiber.Ctx, filename string, build exportFn) error {
	headers, rows, err := build()
	if err != nil {
		return fail(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, headers, rows); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to build CSV"})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) sendXLSX(c *fiber.Ctx, filename, sheet string, build exportFn) error {
	headers, rows, err := build()
	if err != nil {
		return fail(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, sheet, headers, rows); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to build XLSX"})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) ExportItems(c *fiber.Ctx) error {
	if c.Query("format") == "xlsx" {
		return h.sendXLSX(c, "laporan_barang.xlsx", "Barang", h.reports.ExportItems)
	}
	return h.sendCSV(c, "laporan_barang.csv", h.reports.ExportItems)
}

func (h *ReportHandler) ExportTransactions(c *fiber.Ctx) error {
	if c.Query("format") == "xlsx" {
		return h.sendXLSX(c, "laporan_transaksi.xlsx", "Transaksi", h.reports.ExportTransactions)
	}
	return h.sendCSV(c, "laporan_transaksi.csv", h.reports.ExportTransactions)
}

func (h *ReportHandler) ExportSuppliers(c *fiber.Ctx) error {
	if c.Query("format") == "xlsx" {
		return h.sendXLSX(c, "laporan_supplier.xlsx", "Supplier", h.reports.ExportSuppliers)
	}
	return h.sendCSV(c, "laporan_supplier.csv", h.reports.ExportSuppliers)
}

func (h *ReportHandler) ExportCategories(c *fiber.Ctx) error {
	if c.Query("format") == "xlsx" {
		return h.sendXLSX(c, "laporan_kategori.xlsx", "Kategori", h.reports.ExportCategories)
	}
	return h.sendCSV(c, "laporan_kategori.csv", h.reports.ExportCategories)
}
