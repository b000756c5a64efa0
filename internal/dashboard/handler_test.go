package dashboard

import (
	"net/http"
	"testing"
	"time"

	"tienda-backend/internal/auth"
	"tienda-backend/internal/database"
	"tienda-backend/internal/models"
	"tienda-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDashboardTest(t *testing.T) (*fiber.App, *models.Store) {
	t.Helper()
	testutil.SetupDB(t)

	st := &models.Store{Name: "Mi Tienda", UserID: "user_1"}
	require.NoError(t, database.DB.Create(st).Error)

	app := testutil.NewApp()
	api := app.Group("/api")
	api.Use(auth.JWTMiddleware(testutil.Config()))
	api.Get("/stores/:storeId/dashboard", SummaryHandler())

	return app, st
}

func createSale(t *testing.T, storeID, tx, amount string, when time.Time) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.SaleRecord{
		SaleDate:          when,
		TransactionNumber: tx,
		Currency:          "PYG",
		GrossAmount:       amount,
		TransactionStatus: "Aprobada",
		StoreID:           storeID,
	}).Error)
}

func monthStart(offset int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
}

func TestSummaryBucketsAndTotals(t *testing.T) {
	app, st := setupDashboardTest(t)

	// Two orders this month, one last month, one too old for the window.
	createSale(t, st.ID, "TX-1", "1000", monthStart(0).AddDate(0, 0, 2))
	createSale(t, st.ID, "TX-2", "500.5", monthStart(0).AddDate(0, 0, 5))
	createSale(t, st.ID, "TX-3", "200", monthStart(-1).AddDate(0, 0, 10))
	createSale(t, st.ID, "TX-4", "99999", monthStart(-6))

	req := testutil.JSONRequest(t, http.MethodGet, "/api/stores/"+st.ID+"/dashboard?months=3",
		testutil.AuthHeader(t, "user_1"), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body SummaryResponse
	testutil.DecodeBody(t, resp, &body)

	assert.Equal(t, 3, body.Months)
	require.Len(t, body.Points, 3)

	// Oldest bucket first, labelled by month.
	assert.Equal(t, monthStart(-2).Format("2006-01"), body.Points[0].Label)
	assert.Equal(t, monthStart(0).Format("2006-01"), body.Points[2].Label)

	assert.Equal(t, int64(0), body.Points[0].Orders)
	assert.Equal(t, int64(1), body.Points[1].Orders)
	assert.Equal(t, int64(2), body.Points[2].Orders)
	assert.InDelta(t, 1500.5, body.Points[2].Revenue, 0.001)

	assert.Equal(t, int64(3), body.Totals.Orders)
	assert.InDelta(t, 1700.5, body.Totals.Revenue, 0.001)
	assert.InDelta(t, 1700.5/3, body.AverageOrderValue, 0.001)
}

func TestSummaryEmptyStore(t *testing.T) {
	app, st := setupDashboardTest(t)

	req := testutil.JSONRequest(t, http.MethodGet, "/api/stores/"+st.ID+"/dashboard",
		testutil.AuthHeader(t, "user_1"), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body SummaryResponse
	testutil.DecodeBody(t, resp, &body)

	assert.Equal(t, 6, body.Months)
	require.Len(t, body.Points, 6)
	assert.Zero(t, body.Totals.Orders)
	assert.Zero(t, body.AverageOrderValue, "no division by zero on an empty store")
}

func TestSummaryIgnoresOtherStores(t *testing.T) {
	app, st := setupDashboardTest(t)

	other := &models.Store{Name: "Otra", UserID: "user_2"}
	require.NoError(t, database.DB.Create(other).Error)
	createSale(t, other.ID, "TX-X", "5000", monthStart(0))
	createSale(t, st.ID, "TX-1", "100", monthStart(0))

	req := testutil.JSONRequest(t, http.MethodGet, "/api/stores/"+st.ID+"/dashboard",
		testutil.AuthHeader(t, "user_1"), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body SummaryResponse
	testutil.DecodeBody(t, resp, &body)
	assert.Equal(t, int64(1), body.Totals.Orders)
	assert.InDelta(t, 100, body.Totals.Revenue, 0.001)
}

func TestSummaryLowStock(t *testing.T) {
	app, st := setupDashboardTest(t)

	products := []models.Product{
		{Name: "Casi agotado", Description: "x", Price: "1", Stock: 1, StoreID: st.ID},
		{Name: "Bajo", Description: "x", Price: "1", Stock: 4, StoreID: st.ID},
		{Name: "Suficiente", Description: "x", Price: "1", Stock: 50, StoreID: st.ID},
	}
	for i := range products {
		require.NoError(t, database.DB.Create(&products[i]).Error)
	}

	req := testutil.JSONRequest(t, http.MethodGet, "/api/stores/"+st.ID+"/dashboard?threshold=5",
		testutil.AuthHeader(t, "user_1"), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body SummaryResponse
	testutil.DecodeBody(t, resp, &body)
	assert.Equal(t, 5, body.LowStockThreshold)
	require.Len(t, body.LowStock, 2)
	assert.Equal(t, "Casi agotado", body.LowStock[0].Name, "sorted scarcest first")
	assert.Equal(t, 1, body.LowStock[0].Stock)
}

func TestSummaryForbidden(t *testing.T) {
	app, st := setupDashboardTest(t)

	req := testutil.JSONRequest(t, http.MethodGet, "/api/stores/"+st.ID+"/dashboard",
		testutil.AuthHeader(t, "user_2"), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
