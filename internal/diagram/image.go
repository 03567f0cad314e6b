package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gofers/internal/deflection"
	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/alexiusacademia/gofers/internal/section"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	memberColor    = color.Black
	supportColor   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	deflectedColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	axisColor      = color.Gray{Y: 128}
)

// Options control the size and projection of model images.
type Options struct {
	Title    string
	Plane    string // xy, xz or yz
	WidthIn  float64
	HeightIn float64
}

// Project maps a global point onto the plane's horizontal and vertical axes.
func Project(v geometry.Vec, plane string) (float64, float64, error) {
	switch plane {
	case "xy":
		return v.X, v.Y, nil
	case "xz", "":
		return v.X, v.Z, nil
	case "yz":
		return v.Y, v.Z, nil
	}
	return 0, 0, fmt.Errorf("unknown plane %q", plane)
}

func axisLabels(plane string) (string, string) {
	switch plane {
	case "xy":
		return "X", "Y"
	case "yz":
		return "Y", "Z"
	}
	return "X", "Z"
}

// ExportModelDiagram draws the members of m projected on a plane, marks
// supported nodes, and overlays deflected shapes scaled by scale.
func ExportModelDiagram(m *model.Model, shapes []*deflection.Shape, scale float64, opts Options, filename string) error {
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Frame Model"
	}
	p.X.Label.Text, p.Y.Label.Text = axisLabels(opts.Plane)

	for _, mem := range m.AllMembers() {
		pts, err := projectAll([]geometry.Vec{mem.StartNode.Position(), mem.EndNode.Position()}, opts.Plane)
		if err != nil {
			return err
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = memberColor
		p.Add(line)
	}

	var supported []geometry.Vec
	var labelPts plotter.XYs
	var labels []string
	for _, n := range m.AllNodes() {
		if n.Support != nil {
			supported = append(supported, n.Position())
		}
		x, y, err := Project(n.Position(), opts.Plane)
		if err != nil {
			return err
		}
		labelPts = append(labelPts, plotter.XY{X: x, Y: y})
		labels = append(labels, fmt.Sprintf(" %d", n.ID))
	}
	if len(supported) > 0 {
		pts, err := projectAll(supported, opts.Plane)
		if err != nil {
			return err
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = supportColor
		sc.GlyphStyle.Radius = vg.Points(6)
		sc.GlyphStyle.Shape = draw.TriangleGlyph{}
		p.Add(sc)
		p.Legend.Add("support", sc)
	}
	if len(labelPts) > 0 {
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: labelPts, Labels: labels})
		if err != nil {
			return err
		}
		p.Add(l)
	}

	for i, s := range shapes {
		pts, err := projectAll(s.Global(scale), opts.Plane)
		if err != nil {
			return err
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = deflectedColor
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
		if i == 0 {
			p.Legend.Add(fmt.Sprintf("deflected (x%g)", scale), line)
		}
	}

	return save(p, opts, filename)
}

// ExportSectionDiagram draws a section outline with its centroidal axes
func ExportSectionDiagram(s *section.Section, filename string) error {
	if len(s.Vertices) < 3 {
		return fmt.Errorf("section %q has no outline", s.Name)
	}
	props := s.CalculateProperties()

	p := plot.New()
	p.Title.Text = s.Name
	p.X.Label.Text = "Width (mm)"
	p.Y.Label.Text = "Height (mm)"

	outline := make(plotter.XYs, len(s.Vertices)+1)
	for i, v := range s.Vertices {
		outline[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	outline[len(s.Vertices)] = outline[0]

	poly, err := plotter.NewPolygon(outline[:len(s.Vertices)])
	if err != nil {
		return err
	}
	poly.Color = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	poly.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(poly)

	line, err := plotter.NewLine(outline)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = memberColor
	p.Add(line)

	// Centroidal axes
	const overhang = 20
	for _, seg := range []plotter.XYs{
		{{X: props.MinX - overhang, Y: props.CentroidY}, {X: props.MaxX + overhang, Y: props.CentroidY}},
		{{X: props.CentroidX, Y: props.MinY - overhang}, {X: props.CentroidX, Y: props.MaxY + overhang}},
	} {
		axis, err := plotter.NewLine(seg)
		if err != nil {
			return err
		}
		axis.LineStyle.Width = vg.Points(1)
		axis.LineStyle.Color = axisColor
		axis.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(axis)
	}

	c, err := plotter.NewScatter(plotter.XYs{{X: props.CentroidX, Y: props.CentroidY}})
	if err != nil {
		return err
	}
	c.GlyphStyle.Color = deflectedColor
	c.GlyphStyle.Radius = vg.Points(4)
	c.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(c)

	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: props.MaxX + overhang, Y: props.CentroidY}},
		Labels: []string{fmt.Sprintf("A=%.0fmm²", props.Area)},
	})
	if err != nil {
		return err
	}
	p.Add(l)

	return save(p, Options{WidthIn: 6, HeightIn: 6}, filename)
}

func projectAll(vs []geometry.Vec, plane string) (plotter.XYs, error) {
	pts := make(plotter.XYs, len(vs))
	for i, v := range vs {
		x, y, err := Project(v, plane)
		if err != nil {
			return nil, err
		}
		pts[i] = plotter.XY{X: x, Y: y}
	}
	return pts, nil
}

// save writes p in the format given by the extension, png when there is none
func save(p *plot.Plot, opts Options, filename string) error {
	width := vg.Length(opts.WidthIn) * vg.Inch
	height := vg.Length(opts.HeightIn) * vg.Inch
	if width <= 0 {
		width = 8 * vg.Inch
	}
	if height <= 0 {
		height = 6 * vg.Inch
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
