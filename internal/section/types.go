package section

import (
	"fmt"
	"math"
)

// Section represents a solid cross-section defined by vertices
// The section is defined in a local coordinate system where:
// - X-axis runs along the member's local y (width)
// - Y-axis runs along the member's local z (height)
// - Origin can be at any convenient location
type Section struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Material: exactly one of Fc (concrete) or Fy (steel) is set
	Fc float64 `json:"fc,omitempty"` // Concrete compressive strength (MPa)
	Fy float64 `json:"fy,omitempty"` // Steel yield strength (MPa)

	// Section geometry defined by vertices (in mm)
	// Vertices may run either way around; the section is assumed to be a
	// simple polygon (no holes)
	Vertices []Point `json:"vertices"`
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x"` // mm
	Y float64 `json:"y"` // mm
}

// SectionProperties holds calculated geometric properties
type SectionProperties struct {
	// Overall dimensions
	Width  float64 // Maximum width (mm)
	Height float64 // Total height (mm)
	Area   float64 // Gross area (mm²)

	// Centroid location
	CentroidX float64 // mm
	CentroidY float64 // mm

	// Bounding box
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64

	// Second moments about the centroidal axes
	IY float64 // about the horizontal axis, mm⁴
	IZ float64 // about the vertical axis, mm⁴
	J  float64 // approximate torsion constant, mm⁴
}

// Validate checks if the section definition is valid
func (s *Section) Validate() error {
	if s.Name == "" {
		return &ValidationError{"section must have a name"}
	}
	if len(s.Vertices) < 3 {
		return &ValidationError{"section must have at least 3 vertices"}
	}
	if s.Fc < 0 || s.Fy < 0 {
		return &ValidationError{"material strength must not be negative"}
	}
	if (s.Fc > 0) == (s.Fy > 0) {
		return &ValidationError{"exactly one of fc or fy must be given"}
	}
	for i, v := range s.Vertices {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return &ValidationError{msg: fmt.Sprintf("vertex %d is not finite", i+1)}
		}
	}
	if s.integrate().area == 0 {
		return &ValidationError{"section has zero area"}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
