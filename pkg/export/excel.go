package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName    = "Data"
	defaultWidth = 20
	headerFill   = "1E3A5F"
)

// WriteExcel writes t as a single-sheet workbook with a styled header row.
func WriteExcel(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: "PEL ERP",
		Title:   t.Title,
		Created: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("set doc props: %w", err)
	}

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	headers := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Header

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := c.Width
		if width <= 0 {
			width = defaultWidth
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return err
	}
	if len(t.Columns) > 0 {
		if err := f.SetRowStyle(sheetName, 1, 1, header); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		cells := make([]any, len(t.Columns))
		for i := range cells {
			cells[i] = ""
			if i < len(row) {
				cells[i] = normalize(row[i])
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}
