package category

import (
	"net/http"
	"testing"

	"tienda-backend/internal/auth"
	"tienda-backend/internal/database"
	"tienda-backend/internal/models"
	"tienda-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryTest(t *testing.T) (*fiber.App, *models.Store) {
	t.Helper()
	testutil.SetupDB(t)

	st := &models.Store{Name: "Mi Tienda", UserID: "user_1"}
	require.NoError(t, database.DB.Create(st).Error)

	app := testutil.NewApp()
	api := app.Group("/api")
	api.Use(auth.JWTMiddleware(testutil.Config()))
	api.Get("/stores/:storeId/categories", ListCategoriesHandler())
	api.Post("/stores/:storeId/categories", CreateCategoryHandler())
	api.Patch("/stores/:storeId/categories/:categoryId", UpdateCategoryHandler())
	api.Delete("/stores/:storeId/categories/:categoryId", DeleteCategoryHandler())

	return app, st
}

func TestCreateCategory(t *testing.T) {
	app, st := setupCategoryTest(t)

	req := testutil.JSONRequest(t, http.MethodPost, "/api/stores/"+st.ID+"/categories",
		testutil.AuthHeader(t, "user_1"),
		fiber.Map{"name": "Bebidas", "description": "Gaseosas y jugos"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var cat models.Category
	testutil.DecodeBody(t, resp, &cat)
	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, "Bebidas", cat.Name)
	assert.Equal(t, st.ID, cat.StoreID)
}

func TestCreateCategoryShortName(t *testing.T) {
	app, st := setupCategoryTest(t)

	req := testutil.JSONRequest(t, http.MethodPost, "/api/stores/"+st.ID+"/categories",
		testutil.AuthHeader(t, "user_1"), fiber.Map{"name": "ab"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count, "validation failure must not insert")
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	app, st := setupCategoryTest(t)
	require.NoError(t, database.DB.Create(&models.Category{Name: "Bebidas", StoreID: st.ID}).Error)

	req := testutil.JSONRequest(t, http.MethodPost, "/api/stores/"+st.ID+"/categories",
		testutil.AuthHeader(t, "user_1"), fiber.Map{"name": "Bebidas"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateCategoryDuplicateCheckDBError(t *testing.T) {
	app, st := setupCategoryTest(t)

	// A broken categories table makes the duplicate lookup fail; that is a
	// 500, not a silent "no duplicate".
	require.NoError(t, database.DB.Migrator().DropTable(&models.Category{}))

	req := testutil.JSONRequest(t, http.MethodPost, "/api/stores/"+st.ID+"/categories",
		testutil.AuthHeader(t, "user_1"), fiber.Map{"name": "Bebidas"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	testutil.DecodeBody(t, resp, &body)
	assert.Equal(t, "Could not check for duplicate categories", body["error"])
}

func TestCreateCategoryForbidden(t *testing.T) {
	app, st := setupCategoryTest(t)

	req := testutil.JSONRequest(t, http.MethodPost, "/api/stores/"+st.ID+"/categories",
		testutil.AuthHeader(t, "user_2"), fiber.Map{"name": "Bebidas"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateCategory(t *testing.T) {
	app, st := setupCategoryTest(t)
	cat := &models.Category{Name: "Bebidas", StoreID: st.ID}
	require.NoError(t, database.DB.Create(cat).Error)

	req := testutil.JSONRequest(t, http.MethodPatch, "/api/stores/"+st.ID+"/categories/"+cat.ID,
		testutil.AuthHeader(t, "user_1"), fiber.Map{"name": "Snacks"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Category
	require.NoError(t, database.DB.First(&got, "id = ?", cat.ID).Error)
	assert.Equal(t, "Snacks", got.Name)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	app, st := setupCategoryTest(t)

	req := testutil.JSONRequest(t, http.MethodPatch, "/api/stores/"+st.ID+"/categories/does-not-exist",
		testutil.AuthHeader(t, "user_1"), fiber.Map{"name": "Snacks"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCategoryBlockedByProducts(t *testing.T) {
	app, st := setupCategoryTest(t)
	cat := &models.Category{Name: "Bebidas", StoreID: st.ID}
	require.NoError(t, database.DB.Create(cat).Error)
	require.NoError(t, database.DB.Create(&models.Product{
		Name: "Gaseosa", Description: "500ml", Price: "2.5", Stock: 10,
		CategoryID: &cat.ID, StoreID: st.ID,
	}).Error)

	req := testutil.JSONRequest(t, http.MethodDelete, "/api/stores/"+st.ID+"/categories/"+cat.ID,
		testutil.AuthHeader(t, "user_1"), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "category must survive a blocked delete")
}

func TestDeleteCategory(t *testing.T) {
	app, st := setupCategoryTest(t)
	cat := &models.Category{Name: "Bebidas", StoreID: st.ID}
	require.NoError(t, database.DB.Create(cat).Error)

	req := testutil.JSONRequest(t, http.MethodDelete, "/api/stores/"+st.ID+"/categories/"+cat.ID,
		testutil.AuthHeader(t, "user_1"), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}
