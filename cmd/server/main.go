package main

import (
	"log"
	"strings"

	"tienda-backend/internal/auth"
	"tienda-backend/internal/category"
	"tienda-backend/internal/config"
	"tienda-backend/internal/dashboard"
	"tienda-backend/internal/database"
	"tienda-backend/internal/product"
	"tienda-backend/internal/sales"
	"tienda-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(logger.New())

	// Every endpoint requires an identity-provider token.
	api := app.Group("/api")
	api.Use(auth.JWTMiddleware(cfg))

	api.Get("/store-name", store.StoreNameHandler())

	api.Post("/stores", store.CreateStoreHandler())
	api.Get("/stores", store.ListStoresHandler())
	api.Patch("/stores/:storeId", store.UpdateStoreHandler())
	api.Delete("/stores/:storeId", store.DeleteStoreHandler())
	api.Post("/stores/:storeId/dashboard-num", store.UpdatePhoneHandler())

	api.Get("/stores/:storeId/categories", category.ListCategoriesHandler())
	api.Post("/stores/:storeId/categories", category.CreateCategoryHandler())
	api.Patch("/stores/:storeId/categories/:categoryId", category.UpdateCategoryHandler())
	api.Delete("/stores/:storeId/categories/:categoryId", category.DeleteCategoryHandler())

	api.Get("/stores/:storeId/products", product.ListProductsHandler())
	api.Post("/stores/:storeId/products", product.CreateProductHandler())
	api.Patch("/stores/:storeId/products/:productId", product.UpdateProductHandler())
	api.Delete("/stores/:storeId/products/:productId", product.DeleteProductHandler())

	api.Post("/stores/:storeId/sales", sales.ImportSalesHandler())
	api.Get("/stores/:storeId/sales", sales.ListSalesHandler())

	api.Get("/stores/:storeId/dashboard", dashboard.SummaryHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
