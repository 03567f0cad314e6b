package section

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// integrals holds the polygon integrals about the origin, each
// orientation-corrected so counter-clockwise and clockwise outlines agree.
type integrals struct {
	area   float64 // ∫dA
	sx, sy float64 // first moments ∫x dA, ∫y dA
	ixx    float64 // ∫y² dA
	iyy    float64 // ∫x² dA
}

// integrate walks the outline edges once (Green's theorem).
func (s *Section) integrate() integrals {
	var in integrals
	n := len(s.Vertices)
	if n < 3 {
		return in
	}
	for i, a := range s.Vertices {
		b := s.Vertices[(i+1)%n]
		cross := a.X*b.Y - b.X*a.Y
		in.area += cross
		in.sx += (a.X + b.X) * cross
		in.sy += (a.Y + b.Y) * cross
		in.ixx += (a.Y*a.Y + a.Y*b.Y + b.Y*b.Y) * cross
		in.iyy += (a.X*a.X + a.X*b.X + b.X*b.X) * cross
	}
	sign := 1.0
	if in.area < 0 {
		sign = -1
	}
	in.area *= sign / 2
	in.sx *= sign / 6
	in.sy *= sign / 6
	in.ixx *= sign / 12
	in.iyy *= sign / 12
	return in
}

// CalculateProperties computes geometric properties of the section.
// Second moments are taken about the centroidal axes.
func (s *Section) CalculateProperties() *SectionProperties {
	props := &SectionProperties{}
	if len(s.Vertices) < 3 {
		return props
	}

	xs := make([]float64, len(s.Vertices))
	ys := make([]float64, len(s.Vertices))
	for i, v := range s.Vertices {
		xs[i], ys[i] = v.X, v.Y
	}
	props.MinX, props.MaxX = floats.Min(xs), floats.Max(xs)
	props.MinY, props.MaxY = floats.Min(ys), floats.Max(ys)
	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	in := s.integrate()
	props.Area = in.area
	if in.area == 0 {
		return props
	}
	props.CentroidX = in.sx / in.area
	props.CentroidY = in.sy / in.area

	// Parallel axis theorem
	props.IY = in.ixx - in.area*props.CentroidY*props.CentroidY
	props.IZ = in.iyy - in.area*props.CentroidX*props.CentroidX

	// Saint-Venant's approximation for solid sections: J = A⁴ / (4π² Ip)
	if ip := props.IY + props.IZ; ip > 0 {
		props.J = math.Pow(props.Area, 4) / (4 * math.Pi * math.Pi * ip)
	}
	return props
}

// WidthAtDepth returns the width of material cut by a horizontal line at
// depthFromTop below the highest vertex. Gaps between flanges or webs are
// not counted.
func (s *Section) WidthAtDepth(depthFromTop float64) float64 {
	if len(s.Vertices) < 3 {
		return 0
	}
	top := s.Vertices[0].Y
	for _, v := range s.Vertices[1:] {
		top = math.Max(top, v.Y)
	}
	return s.widthAtY(top - depthFromTop)
}

func (s *Section) widthAtY(y float64) float64 {
	xs := s.crossingsAtY(y)
	sort.Float64s(xs)

	var width float64
	for i := 0; i+1 < len(xs); i += 2 {
		width += xs[i+1] - xs[i]
	}
	return width
}

// crossingsAtY returns the x coordinates where the outline crosses the
// horizontal line at y. Edges are half-open in y so a vertex on the line is
// counted once.
func (s *Section) crossingsAtY(y float64) []float64 {
	var xs []float64
	n := len(s.Vertices)
	for i, a := range s.Vertices {
		b := s.Vertices[(i+1)%n]
		if (a.Y <= y) == (b.Y <= y) {
			continue
		}
		t := (y - a.Y) / (b.Y - a.Y)
		xs = append(xs, a.X+t*(b.X-a.X))
	}
	return xs
}
