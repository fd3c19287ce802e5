package controllers

import (
	"strings"

	"dressshop-backend/database"
	"dressshop-backend/models"

	"github.com/gofiber/fiber/v2"
)

func CreateSchool(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(data["name"])
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "school name is required")
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	school := models.School{Name: name}
	if err := db.Create(&school).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create school")
	}
	return c.Status(201).JSON(school)
}

func GetSchools(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var schools []models.School
	if err := db.Order("name").Find(&schools).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"schools": schools,
		"message": "success",
	})
}

func GetSchool(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var school models.School
	if err := db.Preload("Commissions.Product").First(&school, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(school)
}

func UpdateSchool(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(data["name"])
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "school name is required")
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var school models.School
	if err := db.First(&school, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	if err := db.Model(&school).Update("name", name).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update school")
	}
	return c.JSON(school)
}

// DeleteSchool removes the school and its commission agreements. Sales keep
// their school_id reference for the audit trail; the registry does not own
// sales.
func DeleteSchool(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return err
	}

	var school models.School
	if err := db.First(&school, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	if err := db.Where("school_id = ?", school.Id).Delete(&models.Commission{}).Error; err != nil {
		return err
	}
	if err := db.Delete(&school).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "school deleted"})
}
