package controllers

import (
	"strings"

	"dressshop-backend/database"
	"dressshop-backend/ledger"
	"dressshop-backend/middlewares"
	"dressshop-backend/models"
	"dressshop-backend/settlement"
	"dressshop-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type SaleInput struct {
	CustomerName string            `json:"customer_name"`
	SchoolID     *string           `json:"school_id"`
	AmountPaid   float64           `json:"amount_paid" validate:"required,gt=0"`
	Items        []settlement.Line `json:"items" validate:"required,min=1,dive"`
}

// CreateSale commits the cart through the settlement engine and returns the
// settled sale with its items for receipt generation.
func CreateSale(c *fiber.Ctx) error {
	var input SaleInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if input.SchoolID != nil && strings.TrimSpace(*input.SchoolID) == "" {
		input.SchoolID = nil
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	sale, err := settlement.Commit(db, settlement.Cart{Lines: input.Items},
		input.SchoolID, input.CustomerName, input.AmountPaid)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(sale)
}

func GetSales(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var sales []models.Sale
	if err := db.
		Preload("School").
		Preload("Items.Product").
		Preload("Cancellation").
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		return err
	}

	// Per-sale profit breakdown comes from the same ledger math as the
	// dashboard so the history view cannot drift.
	type saleRow struct {
		models.Sale
		Breakdown ledger.SaleBreakdown `json:"breakdown"`
	}
	rows := make([]saleRow, 0, len(sales))
	for i := range sales {
		rows = append(rows, saleRow{Sale: sales[i], Breakdown: ledger.Breakdown(&sales[i])})
	}

	return c.JSON(fiber.Map{
		"sales":   rows,
		"message": "success",
	})
}

func GetSale(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var sale models.Sale
	if err := db.
		Preload("School").
		Preload("Items.Product").
		Preload("Cancellation").
		First(&sale, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"sale":      sale,
		"breakdown": ledger.Breakdown(&sale),
	})
}

// SalePatch: only the customer name and the collected amount may change after
// settlement. Items and total_amount are immutable.
type SalePatch struct {
	CustomerName *string  `json:"customer_name"`
	AmountPaid   *float64 `json:"amount_paid"`
}

func UpdateSale(c *fiber.Ctx) error {
	var patch SalePatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var sale models.Sale
	if err := db.First(&sale, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	if patch.AmountPaid != nil {
		if *patch.AmountPaid <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount paid must be greater than 0")
		}
		if *patch.AmountPaid > sale.TotalAmount {
			return fiber.NewError(fiber.StatusBadRequest, "amount paid cannot exceed total amount")
		}
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	if err := db.Model(&sale).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update sale")
	}
	return c.JSON(sale)
}

type CancelInput struct {
	Reason string `json:"reason" validate:"required"`
}

// CancelSale voids a bill: stock is restored and the sale drops out of every
// aggregate. The sale row itself stays for the audit trail.
func CancelSale(c *fiber.Ctx) error {
	var input CancelInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	cancellation, err := settlement.Cancel(db, c.Params("id"), input.Reason)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(cancellation)
}
