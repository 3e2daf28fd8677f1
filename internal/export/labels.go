package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each placement label's QR code.
type LabelInfo struct {
	ItemID      string `json:"item"`
	ContainerID string `json:"container"`
	W           int    `json:"w"`
	L           int    `json:"l"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels for every placement across
// the given layouts. Each label carries the item id, its placed dimensions
// and position, and a QR code encoding the same data as JSON. Labels are laid
// out on a standard Avery 5160 sheet.
func ExportLabels(path string, layouts []Layout) error {
	var labels []LabelInfo
	for _, l := range layouts {
		for _, p := range l.Placements {
			labels = append(labels, LabelInfo{
				ItemID:      p.ItemID,
				ContainerID: l.ContainerID,
				W:           p.W,
				L:           p.L,
				X:           p.X,
				Y:           p.Y,
			})
		}
	}
	if len(labels) == 0 {
		return fmt.Errorf("no placements to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, info := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		slot := i % labelsPerPage
		col := slot % labelCols
		row := slot / labelCols
		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		data, err := json.Marshal(info)
		if err != nil {
			return err
		}
		png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
		if err != nil {
			return err
		}
		imgName := fmt.Sprintf("qr-%d", i)
		pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions(imgName, x+labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

		textX := x + labelPadding + qrSize + labelPadding
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetXY(textX, y+labelPadding+2)
		pdf.CellFormat(labelWidth-qrSize-3*labelPadding, 4, info.ItemID, "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(textX, y+labelPadding+7)
		pdf.CellFormat(labelWidth-qrSize-3*labelPadding, 4, fmt.Sprintf("%d x %d", info.W, info.L), "", 0, "L", false, 0, "")
		pdf.SetXY(textX, y+labelPadding+12)
		pdf.CellFormat(labelWidth-qrSize-3*labelPadding, 4,
			fmt.Sprintf("%s @ (%d, %d)", info.ContainerID, info.X, info.Y), "", 0, "L", false, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}
