package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the layout as a workbook: a Placements sheet listing
// every item's position and placed dimensions, and a Summary sheet with the
// container stats.
func ExportXLSX(path string, l Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	const placements = "Placements"
	if err := f.SetSheetName("Sheet1", placements); err != nil {
		return err
	}

	headers := []string{"Item", "Xo", "Yo", "Placed W", "Placed L", "Area"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(placements, cell, h); err != nil {
			return err
		}
	}
	for row, p := range l.Placements {
		values := []interface{}{p.ItemID, p.X, p.Y, p.W, p.L, p.W * p.L}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(placements, cell, v); err != nil {
				return err
			}
		}
	}

	const summary = "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return err
	}
	rows := [][2]interface{}{
		{"Container", l.ContainerID},
		{"Width", l.W},
		{"Height", l.H},
		{"Items placed", len(l.Placements)},
		{"Used area", l.UsedArea()},
		{"Total area", l.W * l.H},
		{"Utilization", fmt.Sprintf("%.4f%%", l.Utilization*100)},
	}
	for i, r := range rows {
		if err := f.SetCellValue(summary, fmt.Sprintf("A%d", i+1), r[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summary, fmt.Sprintf("B%d", i+1), r[1]); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
