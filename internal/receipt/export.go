package receipt

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	receiptsSheet = "Receipts"
	itemsSheet    = "Items"
)

var (
	receiptHeaders = []string{"Date", "Store", "Items", "Total", "Receipt ID"}
	itemHeaders    = []string{"Date", "Store", "Item", "Category", "Quantity", "Unit Price", "Line Total", "Receipt ID"}
)

// ExportXLSX returns a workbook with one row per saved receipt and one row per item
func (s *Service) ExportXLSX() ([]byte, error) {
	start := time.Now()

	receipts, err := s.ListReceipts()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with Sheet1; rename it rather than leave it empty
	if err := f.SetSheetName("Sheet1", receiptsSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	if err := writeRow(f, receiptsSheet, 1, toAny(receiptHeaders)); err != nil {
		return nil, err
	}
	if err := writeRow(f, itemsSheet, 1, toAny(itemHeaders)); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, r := range receipts {
		date := r.Date.Format("2006-01-02")
		if err := writeRow(f, receiptsSheet, i+2, []any{date, r.StoreName, len(r.Items), money(r.Total), r.ID}); err != nil {
			return nil, err
		}
		for _, item := range r.Items {
			row := []any{date, r.StoreName, item.Name, item.Category, item.Quantity, money(item.Price), money(item.LineTotal()), r.ID}
			if err := writeRow(f, itemsSheet, itemRow, row); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	_ = f.SetColWidth(receiptsSheet, "A", "A", 12)
	_ = f.SetColWidth(receiptsSheet, "B", "B", 24)
	_ = f.SetColWidth(receiptsSheet, "E", "E", 38)
	_ = f.SetColWidth(itemsSheet, "A", "A", 12)
	_ = f.SetColWidth(itemsSheet, "B", "D", 24)
	_ = f.SetColWidth(itemsSheet, "H", "H", 38)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing xlsx: %w", err)
	}

	slog.Info("Exported receipts", "receipts", len(receipts), "items", itemRow-2, "elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("locating row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// money converts cents to a decimal amount for spreadsheet arithmetic
func money(cents int) float64 {
	return float64(cents) / 100
}
