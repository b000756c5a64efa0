package category

import (
	"errors"
	"strings"
	"time"

	"tienda-backend/internal/database"
	"tienda-backend/internal/models"
	"tienda-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GET /api/stores/:storeId/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := store.FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		var categories []models.Category
		if err := database.DB.Where("store_id = ?", st.ID).Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}

		return c.JSON(categories)
	}
}

// POST /api/stores/:storeId/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := store.FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		name := strings.TrimSpace(body.Name)
		if len(name) < 3 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid name—must be a string ≥ 3 chars")
		}

		// Duplicate names within one store confuse the product form's
		// category picker.
		var existing models.Category
		err = database.DB.Where("store_id = ? AND name = ?", st.ID, name).First(&existing).Error
		if err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "A category with this name already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not check for duplicate categories")
		}

		cat := models.Category{
			Name:        name,
			Description: strings.TrimSpace(body.Description),
			StoreID:     st.ID,
		}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create category")
		}

		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// PATCH /api/stores/:storeId/categories/:categoryId
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, cat, err := store.FindOwnedCategory(c, c.Params("storeId"), c.Params("categoryId"))
		if err != nil {
			return err
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if len(name) < 3 {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid name—must be a string ≥ 3 chars")
			}
			var existing models.Category
			err = database.DB.Where("store_id = ? AND name = ? AND id != ?", st.ID, name, cat.ID).First(&existing).Error
			if err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "A category with this name already exists")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not check for duplicate categories")
			}
			cat.Name = name
		}

		if body.Description != nil {
			cat.Description = strings.TrimSpace(*body.Description)
		}

		cat.UpdatedAt = time.Now()
		if err := database.DB.Save(cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update category")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/stores/:storeId/categories/:categoryId
// Refused while products still reference the category; the caller has to
// move or delete those products first.
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, cat, err := store.FindOwnedCategory(c, c.Params("storeId"), c.Params("categoryId"))
		if err != nil {
			return err
		}

		var count int64
		if err := database.DB.Model(&models.Product{}).Where("category_id = ?", cat.ID).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not check category usage")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Category still has products; reassign or delete them first")
		}

		if err := database.DB.Delete(cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete category")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
