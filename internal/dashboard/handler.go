package dashboard

import (
	"time"

	"tienda-backend/internal/database"
	"tienda-backend/internal/models"
	"tienda-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SalesPoint struct {
	Label   string  `json:"label"` // month, "2006-01"
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type SalesTotals struct {
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type LowStockItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type SummaryResponse struct {
	StoreID           string         `json:"store_id"`
	Months            int            `json:"months"`
	Points            []SalesPoint   `json:"points"`
	Totals            SalesTotals    `json:"totals"`
	AverageOrderValue float64        `json:"average_order_value"`
	LowStockThreshold int            `json:"low_stock_threshold"`
	LowStock          []LowStockItem `json:"low_stock"`
}

// GET /api/stores/:storeId/dashboard?months=6&threshold=10
//
// Buckets are computed in Go over the store's rows rather than with
// database-specific date functions; a store's recent sales fit in memory
// comfortably and the same code runs against the test database.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := store.FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		months := c.QueryInt("months", 6)
		if months <= 0 || months > 24 {
			months = 6
		}
		threshold := c.QueryInt("threshold", 10)
		if threshold < 0 {
			threshold = 10
		}

		now := time.Now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

		var records []models.SaleRecord
		if err := database.DB.Where("store_id = ? AND sale_date >= ?", st.ID, start).Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load sales records")
		}

		type bucket struct {
			orders  int64
			revenue decimal.Decimal
		}
		buckets := make(map[string]*bucket, months)
		labels := make([]string, 0, months)
		for i := 0; i < months; i++ {
			label := start.AddDate(0, i, 0).Format("2006-01")
			labels = append(labels, label)
			buckets[label] = &bucket{}
		}

		totalOrders := int64(0)
		totalRevenue := decimal.Zero
		for _, rec := range records {
			b, ok := buckets[rec.SaleDate.Format("2006-01")]
			if !ok {
				continue
			}
			amount, err := decimal.NewFromString(rec.GrossAmount)
			if err != nil {
				continue
			}
			b.orders++
			b.revenue = b.revenue.Add(amount)
			totalOrders++
			totalRevenue = totalRevenue.Add(amount)
		}

		points := make([]SalesPoint, 0, months)
		for _, label := range labels {
			b := buckets[label]
			points = append(points, SalesPoint{
				Label:   label,
				Orders:  b.orders,
				Revenue: b.revenue.InexactFloat64(),
			})
		}

		aov := 0.0
		if totalOrders > 0 {
			aov = totalRevenue.Div(decimal.NewFromInt(totalOrders)).InexactFloat64()
		}

		var lowStockProducts []models.Product
		if err := database.DB.Where("store_id = ? AND stock < ?", st.ID, threshold).
			Order("stock asc").Find(&lowStockProducts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load low-stock products")
		}
		lowStock := make([]LowStockItem, 0, len(lowStockProducts))
		for _, p := range lowStockProducts {
			lowStock = append(lowStock, LowStockItem{ID: p.ID, Name: p.Name, Stock: p.Stock})
		}

		return c.JSON(SummaryResponse{
			StoreID:           st.ID,
			Months:            months,
			Points:            points,
			Totals:            SalesTotals{Orders: totalOrders, Revenue: totalRevenue.InexactFloat64()},
			AverageOrderValue: aov,
			LowStockThreshold: threshold,
			LowStock:          lowStock,
		})
	}
}
