package export

import (
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"
)

// ExportDXF writes the layout as a DXF drawing: the container boundary on its
// own layer and every placement as a closed polyline on an items layer.
// Coordinates map one solver unit to one drawing unit.
func ExportDXF(path string, l Layout) error {
	d := dxf.NewDrawing()

	d.AddLayer("CONTAINER", color.Red, table.LT_CONTINUOUS, true)
	if _, err := d.LwPolyline(true,
		[]float64{0, 0},
		[]float64{float64(l.W), 0},
		[]float64{float64(l.W), float64(l.H)},
		[]float64{0, float64(l.H)},
	); err != nil {
		return err
	}

	d.AddLayer("ITEMS", color.White, table.LT_CONTINUOUS, true)
	for _, p := range l.Placements {
		x0, y0 := float64(p.X), float64(p.Y)
		x1, y1 := float64(p.X+p.W), float64(p.Y+p.L)
		if _, err := d.LwPolyline(true,
			[]float64{x0, y0},
			[]float64{x1, y0},
			[]float64{x1, y1},
			[]float64{x0, y1},
		); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}
