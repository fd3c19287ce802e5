package controllers

import (
	"errors"

	"dressshop-backend/database"
	"dressshop-backend/middlewares"
	"dressshop-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CommissionInput struct {
	SchoolID         string  `json:"school_id" validate:"required"`
	ProductID        string  `json:"product_id" validate:"required"`
	CommissionAmount float64 `json:"commission_amount" validate:"gte=0"`
}

// CreateCommission registers a flat per-unit agreement for a (school, product)
// pair. The pair is unique; existing sales are unaffected (they carry
// snapshots).
func CreateCommission(c *fiber.Ctx) error {
	var input CommissionInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	// Both ends must exist; the pair must be new.
	var school models.School
	if err := db.First(&school, "id = ?", input.SchoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "school not found")
		}
		return err
	}
	var product models.Product
	if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "product not found")
		}
		return err
	}

	var existing models.Commission
	err = db.Where("school_id = ? AND product_id = ?", input.SchoolID, input.ProductID).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusConflict, "commission already exists for this school and product")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	commission := models.Commission{
		SchoolID:         input.SchoolID,
		ProductID:        input.ProductID,
		CommissionAmount: input.CommissionAmount,
	}
	if err := db.Create(&commission).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create commission")
	}
	return c.Status(201).JSON(commission)
}

func GetCommissions(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var commissions []models.Commission
	if err := db.Preload("School").Preload("Product").Find(&commissions).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"commissions": commissions,
		"message":     "success",
	})
}

func GetSchoolCommissions(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var commissions []models.Commission
	if err := db.Preload("Product").Where("school_id = ?", c.Params("id")).Find(&commissions).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"commissions": commissions,
		"message":     "success",
	})
}

// DeleteCommission ends the agreement going forward. Historical sale items
// keep their snapshots.
func DeleteCommission(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var commission models.Commission
	if err := db.First(&commission, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := db.Delete(&commission).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "commission deleted"})
}
