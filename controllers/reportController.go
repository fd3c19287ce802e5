package controllers

import (
	"time"

	"dressshop-backend/database"
	"dressshop-backend/ledger"
	"dressshop-backend/models"
	"dressshop-backend/utils"

	"github.com/gofiber/fiber/v2"
)

const lowStockThreshold = 10

func loadSales(c *fiber.Ctx) ([]models.Sale, error) {
	db, err := database.FromCtx(c)
	if err != nil {
		return nil, err
	}

	var sales []models.Sale
	if err := db.
		Preload("School").
		Preload("Items.Product").
		Preload("Cancellation").
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Dashboard returns the full financial report plus the inventory signals the
// overview screen shows (active order count, low stock count, leaderboard).
func Dashboard(c *fiber.Ctx) error {
	sales, err := loadSales(c)
	if err != nil {
		return err
	}

	report := ledger.Compute(sales, time.Now())

	activeOrders := 0
	for i := range sales {
		if !sales[i].Cancelled() {
			activeOrders++
		}
	}

	db, _ := database.FromCtx(c)
	var lowStock int64
	if err := db.Model(&models.Product{}).
		Where("active = ? AND stock_quantity < ?", true, lowStockThreshold).
		Count(&lowStock).Error; err != nil {
		return err
	}

	topN := utils.ParseIntDefault(c.Query("top"), 5)
	return c.JSON(fiber.Map{
		"report":        report,
		"top_schools":   ledger.TopSchools(report.PerSchool, topN),
		"active_orders": activeOrders,
		"low_stock":     lowStock,
	})
}

// SchoolTotals lists every school with its all-time commission earnings,
// zero-earning schools included, ordered by name.
func SchoolTotals(c *fiber.Ctx) error {
	sales, err := loadSales(c)
	if err != nil {
		return err
	}

	db, _ := database.FromCtx(c)
	var schools []models.School
	if err := db.Order("name").Find(&schools).Error; err != nil {
		return err
	}

	report := ledger.Compute(sales, time.Now())
	earned := make(map[string]float64, len(report.PerSchool))
	for _, entry := range report.PerSchool {
		earned[entry.SchoolID] = entry.TotalCommission
	}

	totals := make([]ledger.SchoolTotal, 0, len(schools))
	for _, school := range schools {
		totals = append(totals, ledger.SchoolTotal{
			SchoolID:        school.Id,
			SchoolName:      school.Name,
			TotalCommission: earned[school.Id],
		})
	}
	return c.JSON(fiber.Map{
		"schools": totals,
		"message": "success",
	})
}

// parseReportRange resolves the optional start/end query params (YYYY-MM-DD,
// inclusive). No start means an open lower bound (the zero time); no end means
// up to now.
func parseReportRange(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	var start time.Time
	end := now
	if startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return start, end, fiber.NewError(fiber.StatusBadRequest, "invalid start date")
		}
		start = parsed
	}
	if endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return start, end, fiber.NewError(fiber.StatusBadRequest, "invalid end date")
		}
		// inclusive end of day
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, nil
}

// SchoolReport returns the per-product commission statement for one school,
// optionally restricted to a date range.
func SchoolReport(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var school models.School
	if err := db.First(&school, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	start, end, err := parseReportRange(c.Query("start"), c.Query("end"), time.Now())
	if err != nil {
		return err
	}

	var sales []models.Sale
	if err := db.
		Preload("Items.Product").
		Preload("Cancellation").
		Where("school_id = ?", school.Id).
		Find(&sales).Error; err != nil {
		return err
	}

	rollup := ledger.SchoolRollup(sales, school.Id, start, end)

	total := 0.0
	for _, row := range rollup {
		total += row.TotalCommission
	}

	startLabel := ""
	if !start.IsZero() {
		startLabel = start.Format("2006-01-02")
	}
	return c.JSON(fiber.Map{
		"school":           school,
		"products":         rollup,
		"total_commission": total,
		"start":            startLabel,
		"end":              end.Format("2006-01-02"),
	})
}
