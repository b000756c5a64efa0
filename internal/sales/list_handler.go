package sales

import (
	"tienda-backend/internal/database"
	"tienda-backend/internal/models"
	"tienda-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/stores/:storeId/sales?limit=50&offset=0
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := store.FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		limit := c.QueryInt("limit", 50)
		if limit <= 0 || limit > 200 {
			limit = 50
		}
		offset := c.QueryInt("offset", 0)
		if offset < 0 {
			offset = 0
		}

		var records []models.SaleRecord
		if err := database.DB.Where("store_id = ?", st.ID).
			Order("sale_date desc").
			Limit(limit).Offset(offset).
			Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sales records")
		}

		var total int64
		if err := database.DB.Model(&models.SaleRecord{}).Where("store_id = ?", st.ID).Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count sales records")
		}

		return c.JSON(fiber.Map{
			"total":   total,
			"records": records,
		})
	}
}
