package controllers

import (
	"strings"

	"dressshop-backend/catalog"
	"dressshop-backend/database"
	"dressshop-backend/middlewares"
	"dressshop-backend/models"
	"dressshop-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ProductInput covers all three creation modes; mode-specific fields are only
// read for their mode. One request may yield several products (bulk sizes).
type ProductInput struct {
	Mode string `json:"mode" validate:"omitempty,oneof=fixed bulk_sizes length_based"`
	Name string `json:"name" validate:"required"`

	CostPrice     float64 `json:"cost_price" validate:"gte=0"`
	SellingPrice  float64 `json:"selling_price" validate:"gte=0"`
	StockQuantity float64 `json:"stock_quantity"`

	SchoolID *string        `json:"school_id"`
	Tags     map[string]any `json:"tags"`

	// bulk_sizes
	SizeStart       float64 `json:"size_start"`
	SizeEnd         float64 `json:"size_end"`
	SizeIncrement   float64 `json:"size_increment"`
	PriceIncrement  float64 `json:"price_increment"`
	StockPerVariant float64 `json:"stock_per_variant"`

	// length_based
	Unit         string  `json:"unit"`
	MinIncrement float64 `json:"min_increment"`
	CostPerUnit  float64 `json:"cost_per_unit" validate:"gte=0"`
}

func (in *ProductInput) spec() interface {
	Products() ([]models.Product, error)
} {
	switch in.Mode {
	case catalog.ModeBulkSizes:
		return catalog.BulkSizeSpec{
			BaseName:         in.Name,
			SizeStart:        in.SizeStart,
			SizeEnd:          in.SizeEnd,
			SizeIncrement:    in.SizeIncrement,
			BaseCostPrice:    in.CostPrice,
			BaseSellingPrice: in.SellingPrice,
			PriceIncrement:   in.PriceIncrement,
			StockPerVariant:  in.StockPerVariant,
			SchoolID:         in.SchoolID,
			Tags:             in.Tags,
		}
	case catalog.ModeLengthBased:
		return catalog.LengthSpec{
			Name:          in.Name,
			RatePerUnit:   in.SellingPrice,
			CostPerUnit:   in.CostPerUnit,
			StockQuantity: in.StockQuantity,
			Unit:          in.Unit,
			MinIncrement:  in.MinIncrement,
			SchoolID:      in.SchoolID,
			Tags:          in.Tags,
		}
	default:
		return catalog.FixedSpec{
			Name:          in.Name,
			CostPrice:     in.CostPrice,
			SellingPrice:  in.SellingPrice,
			StockQuantity: in.StockQuantity,
			SchoolID:      in.SchoolID,
			Tags:          in.Tags,
		}
	}
}

func CreateProduct(c *fiber.Ctx) error {
	var input ProductInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)
	if input.SchoolID != nil && strings.TrimSpace(*input.SchoolID) == "" {
		input.SchoolID = nil
	}

	products, err := input.spec().Products()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}
	if err := db.Create(&products).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create products")
	}

	return c.Status(201).JSON(products)
}

func GetProducts(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	query := db.Model(&models.Product{}).Preload("School").Order("name")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"products": products,
		"message":  "success",
	})
}

func GetProduct(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := db.Preload("School").First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(product)
}

// ProductPatch updates only the fields present in the body. Pricing changes
// never touch historical sale items (those carry snapshots).
type ProductPatch struct {
	Name          *string  `json:"name"`
	CostPrice     *float64 `json:"cost_price"`
	SellingPrice  *float64 `json:"selling_price"`
	StockQuantity *float64 `json:"stock_quantity"`
	SchoolID      *string  `json:"school_id"`
	Active        *bool    `json:"is_active"`
}

func UpdateProduct(c *fiber.Ctx) error {
	var patch ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	if patch.CostPrice != nil && *patch.CostPrice < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cost price must not be negative")
	}
	if patch.SellingPrice != nil && *patch.SellingPrice < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "selling price must not be negative")
	}

	updates := utils.UpdatesFromPtrDTO(&patch, map[string]string{"is_active": "active"})
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := db.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := db.Model(&product).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update product")
	}
	return c.JSON(product)
}

// DeleteProduct hard-deletes only products no sale item references; otherwise
// the product is archived so historical sales keep resolving.
func DeleteProduct(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := db.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	var refs int64
	if err := db.Model(&models.SaleItem{}).Where("product_id = ?", product.Id).Count(&refs).Error; err != nil {
		return err
	}

	if refs > 0 {
		if err := db.Model(&product).Update("active", false).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "product has sales history and was archived"})
	}

	if err := db.Delete(&product).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}

func RestoreProduct(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var product models.Product
	if err := db.First(&product, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := db.Model(&product).Update("active", true).Error; err != nil {
		return err
	}
	return c.JSON(product)
}
