package model

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gofers/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// NodeResult is the global displacement and rotation of one node.
type NodeResult struct {
	Displacement geometry.Vec
	Rotation     geometry.Vec
}

// CaseResult holds the nodal results of one load case or combination,
// keyed by node id.
type CaseResult struct {
	Name  string
	Nodes map[int]NodeResult
}

// Node returns the result for node id.
func (c *CaseResult) Node(id int) (NodeResult, error) {
	r, ok := c.Nodes[id]
	if !ok {
		return NodeResult{}, fmt.Errorf("%q node %d: %w", c.Name, id, ErrMissingNodeResult)
	}
	return r, nil
}

// Results are the engine output attached to a model.
type Results struct {
	LoadCases        map[string]*CaseResult
	LoadCombinations map[string]*CaseResult
}

// Case looks name up among load combinations first, then load cases.
func (r *Results) Case(name string) (*CaseResult, error) {
	if r == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrResultsNotFound)
	}
	if c, ok := r.LoadCombinations[name]; ok {
		return c, nil
	}
	if c, ok := r.LoadCases[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrResultsNotFound)
}

// Names lists every available result name, sorted.
func (r *Results) Names() []string {
	if r == nil {
		return nil
	}
	var names []string
	for n := range r.LoadCases {
		names = append(names, n)
	}
	for n := range r.LoadCombinations {
		if _, dup := r.LoadCases[n]; !dup {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Superpose computes the result of c as the factored sum of its load case
// results. This holds for first-order analyses only. Nodes missing from any
// of the case results are left out.
func (r *Results) Superpose(c *LoadCombination) (*CaseResult, error) {
	out := &CaseResult{Name: c.Name, Nodes: make(map[int]NodeResult)}
	if len(c.Factors) == 0 {
		return out, nil
	}
	parts := make([]*CaseResult, len(c.Factors))
	for i, f := range c.Factors {
		if r == nil || r.LoadCases[f.LoadCase.Name] == nil {
			return nil, fmt.Errorf("%q for combination %q: %w", f.LoadCase.Name, c.Name, ErrResultsNotFound)
		}
		parts[i] = r.LoadCases[f.LoadCase.Name]
	}
	for id := range parts[0].Nodes {
		var sum NodeResult
		complete := true
		for i, f := range c.Factors {
			nr, ok := parts[i].Nodes[id]
			if !ok {
				complete = false
				break
			}
			sum.Displacement = r3.Add(sum.Displacement, r3.Scale(f.Factor, nr.Displacement))
			sum.Rotation = r3.Add(sum.Rotation, r3.Scale(f.Factor, nr.Rotation))
		}
		if complete {
			out.Nodes[id] = sum
		}
	}
	return out, nil
}
