package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/service"
)

type DashboardHandler struct {
	reports service.ReportService
}

func NewDashboardHandler(reports service.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// GetDashboardStats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.reports.GetDashboardStats(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}

// GetStockMovement handles GET /api/v1/dashboard/stock-movement?days=30
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}

	movement, err := h.reports.GetStockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(movement)
}

// GetLowStock handles GET /api/v1/dashboard/low-stock
// The dashboard shows at most 5 items; ?all=true lifts the cap.
func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	limit := service.DashboardLowStockLimit
	if c.Query("all") == "true" {
		limit = 0
	}
	return c.JSON(h.reports.GetLowStock(limit))
}

// GetOverdueBorrows handles GET /api/v1/dashboard/overdue
func (h *DashboardHandler) GetOverdueBorrows(c *fiber.Ctx) error {
	overdue, err := h.reports.GetOverdueBorrows()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(overdue)
}
