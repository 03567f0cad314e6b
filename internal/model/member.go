package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gofers/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Member is a straight element between two nodes. Nodes, section, hinges and
// references are shared with the rest of the graph.
type Member struct {
	ID         int
	StartNode  *Node
	EndNode    *Node
	Section    *Section
	StartHinge *MemberHinge
	EndHinge   *MemberHinge

	// RotationAngle turns the local y/z axes about local x, in radians.
	RotationAngle float64
	// Chi mirrors the local y and z axes when negative.
	Chi float64

	ReferenceMember *Member
	ReferenceNode   *Node

	Classification string
}

// Length returns the distance between the end nodes.
func (m *Member) Length() float64 {
	return geometry.Distance(m.StartNode.Position(), m.EndNode.Position())
}

// Direction returns the unit vector from start to end node.
func (m *Member) Direction() (geometry.Vec, error) {
	d := r3.Sub(m.EndNode.Position(), m.StartNode.Position())
	if r3.Norm(d) < geometry.Tolerance {
		return geometry.Vec{}, fmt.Errorf("member %d: %w", m.ID, ErrZeroLengthMember)
	}
	return r3.Unit(d), nil
}

// LocalAxes resolves the local triad of the member.
//
// Local x runs from start to end. The local x-y plane contains the reference
// node when one is set, otherwise the local y axis of the reference member,
// otherwise local z is aligned with global Z (global X for vertical members).
// RotationAngle is applied about local x afterwards and a negative Chi mirrors y and z.
func (m *Member) LocalAxes() (geometry.Triad, error) {
	return m.localAxes(map[int]bool{})
}

func (m *Member) localAxes(visited map[int]bool) (geometry.Triad, error) {
	if visited[m.ID] {
		return geometry.Triad{}, fmt.Errorf("member %d: cyclic reference member chain", m.ID)
	}
	visited[m.ID] = true

	x, err := m.Direction()
	if err != nil {
		return geometry.Triad{}, err
	}

	var y, z geometry.Vec
	switch {
	case m.ReferenceNode != nil:
		v := r3.Sub(m.ReferenceNode.Position(), m.StartNode.Position())
		y, err = perpendicular(v, x)
		if err != nil {
			return geometry.Triad{}, fmt.Errorf("member %d: reference node %d lies on the member axis", m.ID, m.ReferenceNode.ID)
		}
		z = r3.Cross(x, y)
	case m.ReferenceMember != nil:
		ref, err := m.ReferenceMember.localAxes(visited)
		if err != nil {
			return geometry.Triad{}, fmt.Errorf("member %d: %w", m.ID, err)
		}
		y, err = perpendicular(ref.Y, x)
		if err != nil {
			if y, err = perpendicular(ref.Z, x); err != nil {
				return geometry.Triad{}, fmt.Errorf("member %d: reference member %d is parallel", m.ID, m.ReferenceMember.ID)
			}
		}
		z = r3.Cross(x, y)
	default:
		up := geometry.Vec{Z: 1}
		if math.Abs(r3.Dot(x, up)) > 1-1e-6 {
			up = geometry.Vec{X: 1}
		}
		z, _ = perpendicular(up, x)
		y = r3.Cross(z, x)
	}

	if m.RotationAngle != 0 {
		y = geometry.RotateAbout(y, x, m.RotationAngle)
		z = geometry.RotateAbout(z, x, m.RotationAngle)
	}
	if m.Chi < 0 {
		y = r3.Scale(-1, y)
		z = r3.Scale(-1, z)
	}
	return geometry.NewTriad(x, r3.Unit(y), r3.Unit(z))
}

var errParallel = errors.New("vectors are parallel")

// perpendicular returns the unit component of v orthogonal to the unit vector axis.
func perpendicular(v, axis geometry.Vec) (geometry.Vec, error) {
	p := r3.Sub(v, r3.Scale(r3.Dot(v, axis), axis))
	if r3.Norm(p) < 1e-9 {
		return geometry.Vec{}, errParallel
	}
	return r3.Unit(p), nil
}
