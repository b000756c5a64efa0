package store

import (
	"errors"

	"tienda-backend/internal/auth"
	"tienda-backend/internal/database"
	"tienda-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FindOwned is the ownership gate every mutating endpoint goes through:
// the caller must be authenticated, the store must exist and it must belong
// to the caller. The checks run in that order so a missing store is a 404
// and someone else's store is a 403.
func FindOwned(c *fiber.Ctx, storeID string) (*models.Store, error) {
	userID, err := auth.UserID(c)
	if err != nil {
		return nil, err
	}

	if storeID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Store ID is required")
	}

	var st models.Store
	if err := database.DB.First(&st, "id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Store not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load store")
	}

	if st.UserID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Forbidden: you do not have access to this store")
	}

	return &st, nil
}

// FindOwnedCategory runs FindOwned and then confirms the category belongs to
// that store.
func FindOwnedCategory(c *fiber.Ctx, storeID, categoryID string) (*models.Store, *models.Category, error) {
	st, err := FindOwned(c, storeID)
	if err != nil {
		return nil, nil, err
	}

	if categoryID == "" {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Category ID is required")
	}

	var cat models.Category
	if err := database.DB.First(&cat, "id = ? AND store_id = ?", categoryID, st.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load category")
	}

	return st, &cat, nil
}

// FindOwnedProduct runs FindOwned and then confirms the product belongs to
// that store.
func FindOwnedProduct(c *fiber.Ctx, storeID, productID string) (*models.Store, *models.Product, error) {
	st, err := FindOwned(c, storeID)
	if err != nil {
		return nil, nil, err
	}

	if productID == "" {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Product ID is required")
	}

	var p models.Product
	if err := database.DB.First(&p, "id = ? AND store_id = ?", productID, st.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load product")
	}

	return st, &p, nil
}
