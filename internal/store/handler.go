package store

import (
	"strings"
	"time"

	"tienda-backend/internal/auth"
	"tienda-backend/internal/database"
	"tienda-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateStoreRequest struct {
	Name string `json:"name"`
}

type UpdateStoreRequest struct {
	Name string `json:"name"`
}

type UpdatePhoneRequest struct {
	Phone string `json:"phone"`
}

// POST /api/stores
func CreateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}

		st := models.Store{
			Name:   body.Name,
			UserID: userID,
		}
		if err := database.DB.Create(&st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create store")
		}

		return c.Status(fiber.StatusCreated).JSON(st)
	}
}

// GET /api/stores
func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var stores []models.Store
		if err := database.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list stores")
		}

		return c.JSON(stores)
	}
}

// GET /api/store-name
// Returns the caller's first store name, or null when they have none yet.
// The frontend uses this for the header before a store is selected.
func StoreNameHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var st models.Store
		if err := database.DB.Where("user_id = ?", userID).Order("created_at asc").First(&st).Error; err != nil {
			return c.JSON(fiber.Map{"storeName": nil})
		}

		return c.JSON(fiber.Map{"storeName": st.Name})
	}
}

// PATCH /api/stores/:storeId
func UpdateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		var body UpdateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		name := strings.TrimSpace(body.Name)
		if len(name) < 3 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid name—must be a string ≥ 3 chars")
		}

		st.Name = name
		st.UpdatedAt = time.Now()
		if err := database.DB.Save(st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update store")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/stores/:storeId
// Removes everything the store owns before the store row itself; the
// schema declares no cascades for these tables.
func DeleteStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		steps := []error{
			database.DB.Where("store_id = ?", st.ID).Delete(&models.Image{}).Error,
			database.DB.Where("store_id = ?", st.ID).Delete(&models.Product{}).Error,
			database.DB.Where("store_id = ?", st.ID).Delete(&models.Category{}).Error,
			database.DB.Where("store_id = ?", st.ID).Delete(&models.SaleRecord{}).Error,
			database.DB.Delete(st).Error,
		}
		for _, err := range steps {
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete store. Please try again.")
			}
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/stores/:storeId/dashboard-num
func UpdatePhoneHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		var body UpdatePhoneRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		phone := strings.TrimSpace(body.Phone)
		if phone == "" {
			return fiber.NewError(fiber.StatusBadRequest, "A valid phone number is required")
		}

		st.PhoneNumber = phone
		st.UpdatedAt = time.Now()
		if err := database.DB.Save(st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update phone number")
		}

		return c.JSON(st)
	}
}
