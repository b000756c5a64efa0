package sales

import (
	"fmt"
	"mime/multipart"
	"strings"

	"tienda-backend/internal/database"
	"tienda-backend/internal/models"
	"tienda-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// RowError reports every violation of one rejected row, with the original
// cell values so the user can find the row in their spreadsheet.
type RowError struct {
	Row          int               `json:"row"`
	Messages     []string          `json:"messages"`
	OriginalData map[string]string `json:"originalData"`
}

func isCSV(fh *multipart.FileHeader) bool {
	ct := fh.Header.Get("Content-Type")
	return strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") ||
		ct == "text/csv" || ct == "application/csv"
}

func isXLSX(fh *multipart.FileHeader) bool {
	ct := fh.Header.Get("Content-Type")
	return strings.HasSuffix(strings.ToLower(fh.Filename), ".xlsx") ||
		ct == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// POST /api/stores/:storeId/sales
//
// The batch is all-or-nothing: if any row fails validation nothing is
// inserted and the complete error list goes back to the caller. Only a fully
// valid file is persisted, in a single multi-row insert tagged with the
// store id.
func ImportSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := store.FindOwned(c, c.Params("storeId"))
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file uploaded in form data.")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not open uploaded file")
		}
		defer file.Close()

		var rows []RawRow
		switch {
		case isCSV(fileHeader):
			rows, err = parseCSV(file)
		case isXLSX(fileHeader):
			rows, err = parseXLSX(file)
		default:
			ct := fileHeader.Header.Get("Content-Type")
			if ct == "" {
				ct = "unknown"
			}
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Unsupported file type: %s. Please upload a CSV or XLSX file.", ct))
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not parse uploaded file: "+err.Error())
		}

		if len(rows) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "File is empty or contains no data after initial parsing.",
				"errors":  []RowError{},
			})
		}

		var records []models.SaleRecord
		var rowErrors []RowError

		for _, row := range rows {
			draft, hasValue := remapRow(row.Values)
			if !hasValue {
				continue
			}

			rec, msgs := validateRow(draft)
			if rec != nil {
				rec.StoreID = st.ID
				records = append(records, *rec)
				continue
			}
			rowErrors = append(rowErrors, RowError{
				Row:          row.Number,
				Messages:     msgs,
				OriginalData: row.Values,
			})
		}

		if len(rowErrors) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation errors occurred during processing. Please check the file content.",
				"errors":  rowErrors,
			})
		}

		if len(records) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "No valid data to insert. The file might be empty, all rows had errors, or all rows were filtered out as empty.",
			})
		}

		if err := database.DB.Create(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not insert sales records")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": fmt.Sprintf("Successfully imported %d sales records.", len(records)),
		})
	}
}
