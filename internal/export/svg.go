package export

import (
	"fmt"
	"io"
	"os"
)

const (
	svgTop = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"`
	svgMargin = 2.0
)

// WriteSVG renders the layout as an SVG document. The y axis is flipped so
// placements draw with their origin at the bottom-left, matching the solver's
// coordinate system.
func WriteSVG(w io.Writer, l Layout, width, height int) error {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 800
	}
	vbW := float64(l.W) + 2*svgMargin
	vbH := float64(l.H) + 2*svgMargin

	if _, err := fmt.Fprintf(w, "%s width=\"%d\" height=\"%d\" viewBox=\"%f %f %f %f\">\n",
		svgTop, width, height, -svgMargin, -svgMargin, vbW, vbH); err != nil {
		return err
	}
	fmt.Fprintf(w, "  <title>%s</title>\n", l.ContainerID)

	// container boundary
	fmt.Fprintf(w, "  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" style=\"fill:none;stroke:black;stroke-width:0.2\"/>\n", l.W, l.H)

	labelSize := float64(l.H) / 40
	if labelSize < 0.5 {
		labelSize = 0.5
	}
	for i, p := range l.Placements {
		c := colorFor(i)
		y := l.H - p.Y - p.L // svg y grows downward
		fmt.Fprintf(w, "  <rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" style=\"fill:rgb(%d,%d,%d);stroke:black;stroke-width:0.1\"/>\n",
			p.X, y, p.W, p.L, c.R, c.G, c.B)
		fmt.Fprintf(w, "  <text x=\"%f\" y=\"%f\" font-size=\"%f\" fill=\"white\">%s</text>\n",
			float64(p.X)+float64(p.W)/2-labelSize, float64(y)+float64(p.L)/2+labelSize/2, labelSize, p.ItemID)
	}

	_, err := io.WriteString(w, "</svg>\n")
	return err
}

// ExportSVG writes the layout's SVG document to path.
func ExportSVG(path string, l Layout, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(f, l, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportHTML wraps the layout's SVG figure in a minimal standalone page.
func ExportHTML(path string, l Layout, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(f, "<!DOCTYPE html>\n<html>\n<head><title>%s</title></head>\n<body>\n", l.ContainerID)
	fmt.Fprintf(f, "<h2>%s (%dx%d, %.2f%% utilization)</h2>\n", l.ContainerID, l.W, l.H, l.Utilization*100)
	if err := WriteSVG(f, l, width, height); err != nil {
		f.Close()
		return err
	}
	fmt.Fprint(f, "</body>\n</html>\n")
	return f.Close()
}
