package product

import (
	"math"
	"strings"
	"time"

	"tienda-backend/internal/database"
	"tienda-backend/internal/models"
	"tienda-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ImageInput struct {
	URL string `json:"url"`
}

// Price arrives as a string or a number depending on the form state, and
// stock arrives as a JSON number; both are coerced here.
type ProductRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       any          `json:"price"`
	Stock       any          `json:"stock"`
	CategoryID  *string      `json:"category_id"`
	Images      []ImageInput `json:"images"`
}

type validatedProduct struct {
	Name        string
	Description string
	Price       string
	Stock       int
	CategoryID  *string
	Images      []ImageInput
}

func parsePrice(v any) (string, bool) {
	var d decimal.Decimal
	switch p := v.(type) {
	case string:
		var err error
		d, err = decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return "", false
		}
	case float64:
		d = decimal.NewFromFloat(p)
	default:
		return "", false
	}
	if d.IsNegative() {
		return "", false
	}
	return d.String(), true
}

func parseStock(v any) (int, bool) {
	n, ok := v.(float64)
	if !ok || n != math.Trunc(n) || n < 0 {
		return 0, false
	}
	return int(n), true
}

func validateRequest(c *fiber.Ctx) (*validatedProduct, error) {
	var body ProductRequest
	if err := c.BodyParser(&body); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	name := strings.TrimSpace(body.Name)
	if len(name) < 3 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid name—must be a string ≥ 3 chars")
	}

	description := strings.TrimSpace(body.Description)
	if description == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid description—must be a non-empty string")
	}

	price, ok := parsePrice(body.Price)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid price—must be a positive number")
	}

	stock, ok := parseStock(body.Stock)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid stock—must be a non-negative integer")
	}

	// The form sends "" when the category picker is cleared.
	categoryID := body.CategoryID
	if categoryID != nil && strings.TrimSpace(*categoryID) == "" {
		categoryID = nil
	}

	if len(body.Images) < 1 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid images—must be an array of objects with url")
	}
	for _, img := range body.Images {
		if strings.TrimSpace(img.URL) == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid images—must be an array of objects with url")
		}
	}

	return &validatedProduct{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
		Images:      body.Images,
	}, nil
}

func categoryBelongsToStore(storeID string, categoryID *string) (bool, error) {
	if categoryID == nil {
		return true, nil
	}
	var count int64
	if err := database.DB.Model(&models.Category{}).Where("id = ? AND store_id = ?", *categoryID, storeID).Count(&count).Error; err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "Could not verify category")
	}
	return count > 0, nil
}

// GET /api/stores/:storeId/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := store.FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.Preload("Images").Where("store_id = ?", st.ID).Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		return c.JSON(products)
	}
}

// POST /api/stores/:storeId/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := store.FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		req, err := validateRequest(c)
		if err != nil {
			return err
		}

		ok, err := categoryBelongsToStore(st.ID, req.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid categoryId—category does not belong to this store")
		}

		p := models.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			CategoryID:  req.CategoryID,
			StoreID:     st.ID,
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}

		images := make([]models.Image, 0, len(req.Images))
		for _, img := range req.Images {
			images = append(images, models.Image{
				URL:       strings.TrimSpace(img.URL),
				ProductID: p.ID,
				StoreID:   st.ID,
			})
		}
		if err := database.DB.Create(&images).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save product images")
		}
		p.Images = images

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PATCH /api/stores/:storeId/products/:productId
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, p, err := store.FindOwnedProduct(c, c.Params("storeId"), c.Params("productId"))
		if err != nil {
			return err
		}

		req, err := validateRequest(c)
		if err != nil {
			return err
		}

		ok, err := categoryBelongsToStore(st.ID, req.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid categoryId—category does not belong to this store")
		}

		p.Name = req.Name
		p.Description = req.Description
		p.Price = req.Price
		p.Stock = req.Stock
		p.CategoryID = req.CategoryID
		p.UpdatedAt = time.Now()
		if err := database.DB.Save(p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}

		// Replace images: delete old, insert new.
		if err := database.DB.Where("product_id = ?", p.ID).Delete(&models.Image{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product images")
		}
		images := make([]models.Image, 0, len(req.Images))
		for _, img := range req.Images {
			images = append(images, models.Image{
				URL:       strings.TrimSpace(img.URL),
				ProductID: p.ID,
				StoreID:   st.ID,
			})
		}
		if err := database.DB.Create(&images).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product images")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/stores/:storeId/products/:productId
// Images go first; they cannot outlive the product.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, p, err := store.FindOwnedProduct(c, c.Params("storeId"), c.Params("productId"))
		if err != nil {
			return err
		}

		if err := database.DB.Where("product_id = ?", p.ID).Delete(&models.Image{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product images")
		}
		if err := database.DB.Delete(p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
