// Package export renders ordered record sets into xlsx spreadsheets.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"pinmap/internal/domain"
)

// ContentType is the MIME type of the produced spreadsheets.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	createdAtLayout = "2006-01-02 15:04:05"
	maxColumnWidth  = 40
	columnPadding   = 2
)

// PinHeader is the fixed pin export column order.
var PinHeader = []string{"id", "title", "description", "longitude", "latitude", "createdAt"}

// VisitHeader is the fixed visit export column order.
var VisitHeader = []string{"id", "user_hash", "name", "age", "date", "device_hint", "createdAt"}

// Filename builds the download name for an export:
// <domain>_<qualifier>_<UTC timestamp>.xlsx.
func Filename(domain, qualifier string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", domain, qualifier, now.UTC().Format("20060102_150405"))
}

// Pins renders one worksheet with the fixed pin header and one row per pin
// in the order received. The transform is pure; on any serialization
// failure no partial output is returned.
func Pins(sheet string, pins []domain.Pin) ([]byte, error) {
	rows := make([][]string, len(pins))
	for i, pin := range pins {
		rows[i] = []string{
			strconv.FormatInt(pin.ID, 10),
			pin.Title,
			pin.Description,
			strconv.FormatFloat(pin.Longitude, 'f', -1, 64),
			strconv.FormatFloat(pin.Latitude, 'f', -1, 64),
			pin.CreatedAt.UTC().Format(createdAtLayout),
		}
	}
	return writeSheet(sheet, PinHeader, rows)
}

// Visits renders one worksheet with the visit header, rows in received order.
func Visits(sheet string, visits []domain.Visit) ([]byte, error) {
	rows := make([][]string, len(visits))
	for i, visit := range visits {
		rows[i] = []string{
			strconv.FormatInt(visit.ID, 10),
			visit.VisitorHash,
			visit.Name,
			strconv.Itoa(visit.Age),
			visit.Date,
			visit.DeviceHint,
			visit.CreatedAt.UTC().Format(createdAtLayout),
		}
	}
	return writeSheet(sheet, VisitHeader, rows)
}

func writeSheet(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name worksheet: %w", err)
	}

	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = len(cell)
	}

	if err := setRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
		for j, cell := range row {
			if j < len(widths) && len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		width := w + columnPadding
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
