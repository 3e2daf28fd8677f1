package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 10.0
)

// ExportPDF renders the layout on a single A4 landscape page: a header with
// the container stats and a scaled diagram of the placements.
func ExportPDF(path string, l Layout) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Container %s (%d x %d)", l.ContainerID, l.W, l.H)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Used area: %d | Total area: %d | Utilization: %.2f%%",
		len(l.Placements), l.UsedArea(), l.W*l.H, l.Utilization*100)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Scale the container into the drawing area, preserving aspect ratio.
	drawW := pageWidth - marginLeft - marginRight
	drawH := pageHeight - drawAreaTop - marginBottom
	scale := drawW / float64(l.W)
	if s := drawH / float64(l.H); s < scale {
		scale = s
	}
	originX := marginLeft
	originY := drawAreaTop + float64(l.H)*scale // bottom-left of the container

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Rect(originX, drawAreaTop, float64(l.W)*scale, float64(l.H)*scale, "D")

	pdf.SetLineWidth(0.2)
	for i, p := range l.Placements {
		c := colorFor(i)
		pdf.SetFillColor(c.R, c.G, c.B)
		x := originX + float64(p.X)*scale
		y := originY - float64(p.Y+p.L)*scale
		w := float64(p.W) * scale
		h := float64(p.L) * scale
		pdf.Rect(x, y, w, h, "FD")

		fontSize := h * 1.8
		if fontSize > 8 {
			fontSize = 8
		}
		if fontSize >= 2 {
			pdf.SetFont("Helvetica", "", fontSize)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetXY(x, y+h/2-fontSize/4)
			pdf.CellFormat(w, fontSize/2, p.ItemID, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)

	return pdf.OutputFileAndClose(path)
}
