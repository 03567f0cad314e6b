package model

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// NodalLoad is a concentrated force acting on a node along Direction.
type NodalLoad struct {
	Node      *Node
	Magnitude float64
	Direction geometry.Vec
}

// LineLoad is a distributed force on a member between two fractions of its
// length (0 at the start node, 1 at the end node).
type LineLoad struct {
	Member    *Member
	Magnitude float64
	Direction geometry.Vec
	StartFrac float64
	EndFrac   float64
}

// LoadCase is a named group of loads.
type LoadCase struct {
	ID         int
	Name       string
	NodalLoads []*NodalLoad
	LineLoads  []*LineLoad
}

// AddNodalLoad appends a nodal load. Direction must be non-zero.
func (lc *LoadCase) AddNodalLoad(node *Node, magnitude float64, direction geometry.Vec) (*NodalLoad, error) {
	if node == nil {
		return nil, &ValidationError{Field: "NodalLoad.Node", Msg: "node is required"}
	}
	if r3.Norm(direction) == 0 {
		return nil, &ValidationError{Field: "NodalLoad.Direction", Msg: "direction must be non-zero"}
	}
	l := &NodalLoad{Node: node, Magnitude: magnitude, Direction: direction}
	lc.NodalLoads = append(lc.NodalLoads, l)
	return l, nil
}

// AddLineLoad appends a line load over the whole member.
func (lc *LoadCase) AddLineLoad(member *Member, magnitude float64, direction geometry.Vec) (*LineLoad, error) {
	return lc.AddPartialLineLoad(member, magnitude, direction, 0, 1)
}

// AddPartialLineLoad appends a line load between two length fractions.
func (lc *LoadCase) AddPartialLineLoad(member *Member, magnitude float64, direction geometry.Vec, startFrac, endFrac float64) (*LineLoad, error) {
	if member == nil {
		return nil, &ValidationError{Field: "LineLoad.Member", Msg: "member is required"}
	}
	if r3.Norm(direction) == 0 {
		return nil, &ValidationError{Field: "LineLoad.Direction", Msg: "direction must be non-zero"}
	}
	if startFrac < 0 || endFrac > 1 || startFrac >= endFrac {
		return nil, &ValidationError{
			Field: "LineLoad",
			Msg:   fmt.Sprintf("invalid load extent %.3f..%.3f", startFrac, endFrac),
		}
	}
	l := &LineLoad{Member: member, Magnitude: magnitude, Direction: direction, StartFrac: startFrac, EndFrac: endFrac}
	lc.LineLoads = append(lc.LineLoads, l)
	return l, nil
}

// CaseFactor pairs a load case with its combination factor.
type CaseFactor struct {
	LoadCase *LoadCase
	Factor   float64
}

// LoadCombination is a factored superposition of load cases.
type LoadCombination struct {
	ID        int
	Name      string
	Factors   []CaseFactor
	Situation string
	Check     string
}

// Factor returns the factor applied to lc, 0 if the case is not part of the combination.
func (c *LoadCombination) Factor(lc *LoadCase) float64 {
	for _, f := range c.Factors {
		if f.LoadCase == lc {
			return f.Factor
		}
	}
	return 0
}
