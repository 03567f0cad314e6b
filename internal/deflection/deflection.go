// Package deflection rebuilds the deflected shape of a member from the nodal
// results of the analysis engine.
//
// Axial deflection is interpolated linearly. Bending in the local x-y and x-z
// planes uses cubic Hermite polynomials matching end displacements and the
// small-angle slopes derived from end rotations; the two planes are treated
// as uncoupled.
package deflection

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// MinPoints is the smallest sample count accepted by Interpolate.
const MinPoints = 2

// Hermite returns the cubic Hermite basis functions at t in [0, 1].
func Hermite(t float64) (h1, h2, h3, h4 float64) {
	t2 := t * t
	t3 := t2 * t
	h1 = 2*t3 - 3*t2 + 1
	h2 = -2*t3 + 3*t2
	h3 = t3 - 2*t2 + t
	h4 = t3 - t2
	return
}

// Interpolate samples n evenly spaced local deflections over a member of
// local length. Displacements and rotations are in the member's local frame.
func Interpolate(length float64, dispStart, dispEnd, rotStart, rotEnd geometry.Vec, n int) ([]geometry.Vec, error) {
	if n < MinPoints {
		return nil, fmt.Errorf("sample count %d: need at least %d points", n, MinPoints)
	}

	slopeY0, slopeY1 := length*rotStart.Z, length*rotEnd.Z
	slopeZ0, slopeZ1 := -length*rotStart.Y, -length*rotEnd.Y

	ts := make([]float64, n)
	floats.Span(ts, 0, 1)

	out := make([]geometry.Vec, n)
	for i, t := range ts {
		h1, h2, h3, h4 := Hermite(t)
		out[i] = geometry.Vec{
			X: dispStart.X*(1-t) + dispEnd.X*t,
			Y: dispStart.Y*h1 + dispEnd.Y*h2 + slopeY0*h3 + slopeY1*h4,
			Z: dispStart.Z*h1 + dispEnd.Z*h2 + slopeZ0*h3 + slopeZ1*h4,
		}
	}
	return out, nil
}

// Shape is the reconstructed deflection of one member.
type Shape struct {
	Member   *model.Member
	Axes     geometry.Triad
	Stations []float64      // distance from the start node along local x
	Local    []geometry.Vec // deflection in local coordinates
}

// MaxTransverse returns the largest local y and z deflection magnitudes.
func (s *Shape) MaxTransverse() (maxY, maxZ float64) {
	for _, d := range s.Local {
		if a := math.Abs(d.Y); a > maxY {
			maxY = a
		}
		if a := math.Abs(d.Z); a > maxZ {
			maxZ = a
		}
	}
	return maxY, maxZ
}

// Global returns the deflected positions in global coordinates with the
// deflection multiplied by scale.
func (s *Shape) Global(scale float64) []geometry.Vec {
	R := s.Axes.Rotation()
	start := s.Member.StartNode.Position()
	out := make([]geometry.Vec, len(s.Local))
	for i, d := range s.Local {
		base := r3.Add(start, r3.Scale(s.Stations[i], s.Axes.X))
		out[i] = r3.Add(base, r3.Scale(scale, geometry.ToGlobal(d, R)))
	}
	return out
}

// ForMember reconstructs the shape of m from the nodal results in res.
func ForMember(m *model.Member, res *model.CaseResult, n int) (*Shape, error) {
	axes, err := m.LocalAxes()
	if err != nil {
		return nil, err
	}
	start, err := res.Node(m.StartNode.ID)
	if err != nil {
		return nil, fmt.Errorf("member %d: %w", m.ID, err)
	}
	end, err := res.Node(m.EndNode.ID)
	if err != nil {
		return nil, fmt.Errorf("member %d: %w", m.ID, err)
	}

	R := axes.Rotation()
	dStart, rStart := geometry.ToLocal(start.Displacement, start.Rotation, R)
	dEnd, rEnd := geometry.ToLocal(end.Displacement, end.Rotation, R)

	length := m.Length()
	local, err := Interpolate(length, dStart, dEnd, rStart, rEnd, n)
	if err != nil {
		return nil, err
	}
	stations := make([]float64, n)
	floats.Span(stations, 0, length)

	return &Shape{Member: m, Axes: axes, Stations: stations, Local: local}, nil
}

// ForMemberSet reconstructs every member of set in order.
func ForMemberSet(set *model.MemberSet, res *model.CaseResult, n int) ([]*Shape, error) {
	shapes := make([]*Shape, 0, len(set.Members))
	for _, m := range set.Members {
		s, err := ForMember(m, res, n)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}
