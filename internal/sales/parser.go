package sales

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawRow is one data row of an uploaded file, keyed by the (trimmed) column
// header. Number is the 1-based row in the file counting the header row, so
// the first data row is 2; error reports use it.
type RawRow struct {
	Number int
	Values map[string]string
}

func allBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func buildRows(records [][]string) []RawRow {
	if len(records) == 0 {
		return nil
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []RawRow
	for _, record := range records[1:] {
		if allBlank(record) {
			continue
		}
		values := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				values[header] = record[i]
			} else {
				values[header] = ""
			}
		}
		rows = append(rows, RawRow{Number: len(rows) + 2, Values: values})
	}
	return rows
}

// parseCSV reads the whole file; exports are small and the request body is
// size-capped anyway. Short rows are padded with empty cells.
func parseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return buildRows(records), nil
}

// parseXLSX reads the first sheet of the workbook. Cell values come back as
// the displayed strings, the same shape parseCSV produces.
func parseXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return buildRows(records), nil
}
