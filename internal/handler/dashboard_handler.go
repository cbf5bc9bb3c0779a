package handler

import (
	"strconv"

	"go-boutique-ws/internal/apierror"
	"go-boutique-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetSummary returns vente, paye and reste per period
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	stats, err := h.service.Summary(c.UserContext())
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(stats)
}

// GetExpenses returns stock spending per year and month
func (h *DashboardHandler) GetExpenses(c *fiber.Ctx) error {
	data, err := h.service.Expenses(c.UserContext())
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(data)
}

// GetSales returns basket totals per year and month
func (h *DashboardHandler) GetSales(c *fiber.Ctx) error {
	data, err := h.service.Sales(c.UserContext())
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(data)
}

// GetProfits returns the monthly profit of one year
// Query params: year (default current year)
func (h *DashboardHandler) GetProfits(c *fiber.Ctx) error {
	year := 0
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y <= 0 {
			return apierror.BadRequest(c, "Invalid year")
		}
		year = y
	}

	report, err := h.service.Profits(c.UserContext(), year)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(report)
}
