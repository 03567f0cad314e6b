package model

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/geometry"
)

// Model is a frame structure. Nodes, sections and materials are not stored
// directly; they are reached through the member sets.
type Model struct {
	MemberSets        []*MemberSet
	LoadCases         []*LoadCase
	LoadCombinations  []*LoadCombination
	ImperfectionCases []*ImperfectionCase
	AnalysisOptions   *AnalysisOptions
	Results           *Results

	ids *IDAllocator
}

// New returns an empty model with its own id allocator.
func New() *Model {
	return NewWithAllocator(NewIDAllocator())
}

// NewWithAllocator returns an empty model drawing ids from ids. Models that
// will be combined must share one allocator.
func NewWithAllocator(ids *IDAllocator) *Model {
	if ids == nil {
		ids = NewIDAllocator()
	}
	return &Model{ids: ids}
}

// IDs returns the allocator of the model's construction session.
func (m *Model) IDs() *IDAllocator {
	return m.ids
}

// ResetCounters restarts every id counter of the session.
func (m *Model) ResetCounters() {
	m.ids.Reset()
}

// NewNode creates a node. It becomes part of the model once a member uses it.
func (m *Model) NewNode(x, y, z float64) *Node {
	return &Node{ID: m.ids.Next(KindNode), X: x, Y: y, Z: z}
}

// NewNodeAt creates a node at p.
func (m *Model) NewNodeAt(p geometry.Vec) *Node {
	return m.NewNode(p.X, p.Y, p.Z)
}

// NewMember creates a member between two distinct, non-coincident nodes.
func (m *Model) NewMember(start, end *Node, section *Section) (*Member, error) {
	if err := CheckEndpoints(start, end, section); err != nil {
		return nil, err
	}
	return &Member{
		ID:        m.ids.Next(KindMember),
		StartNode: start,
		EndNode:   end,
		Section:   section,
	}, nil
}

// CheckEndpoints validates the construction preconditions of a member.
func CheckEndpoints(start, end *Node, section *Section) error {
	if start == nil || end == nil {
		return &ValidationError{Field: "Member", Msg: "start and end nodes are required"}
	}
	if section == nil {
		return &ValidationError{Field: "Member.Section", Msg: "section is required"}
	}
	if start == end || start.ID == end.ID {
		return &ValidationError{
			Field: "Member",
			Msg:   fmt.Sprintf("start and end are the same node %d", start.ID),
			err:   ErrZeroLengthMember,
		}
	}
	if geometry.Distance(start.Position(), end.Position()) < geometry.Tolerance {
		return &ValidationError{
			Field: "Member",
			Msg:   fmt.Sprintf("nodes %d and %d are coincident", start.ID, end.ID),
			err:   ErrZeroLengthMember,
		}
	}
	return nil
}

// NewMemberSet creates a member set without adding it to the model.
func (m *Model) NewMemberSet(classification string, members ...*Member) *MemberSet {
	return &MemberSet{
		ID:             m.ids.Next(KindMemberSet),
		Members:        members,
		Classification: classification,
	}
}

// NewNodalSupport creates a support with the given conditions.
func (m *Model) NewNodalSupport(displacement, rotation Conditions) *NodalSupport {
	return &NodalSupport{ID: m.ids.Next(KindNodalSupport), Displacement: displacement, Rotation: rotation}
}

// NewFixedSupport restrains every degree of freedom.
func (m *Model) NewFixedSupport() *NodalSupport {
	fixed := AllConditions(Condition{Kind: Fixed})
	return m.NewNodalSupport(fixed, fixed)
}

// NewPinnedSupport restrains translations only.
func (m *Model) NewPinnedSupport() *NodalSupport {
	return m.NewNodalSupport(AllConditions(Condition{Kind: Fixed}), AllConditions(Condition{Kind: Free}))
}

// NewMemberHinge creates a hinge with no releases.
func (m *Model) NewMemberHinge(hingeType string) *MemberHinge {
	return &MemberHinge{ID: m.ids.Next(KindMemberHinge), Type: hingeType}
}

// AddMemberSet appends member sets to the model.
func (m *Model) AddMemberSet(sets ...*MemberSet) {
	m.MemberSets = append(m.MemberSets, sets...)
}

// CreateLoadCase creates and registers a load case.
func (m *Model) CreateLoadCase(name string) *LoadCase {
	lc := &LoadCase{ID: m.ids.Next(KindLoadCase), Name: name}
	m.LoadCases = append(m.LoadCases, lc)
	return lc
}

// CreateLoadCombination creates and registers a load combination.
func (m *Model) CreateLoadCombination(name string, factors []CaseFactor, situation, check string) *LoadCombination {
	lc := &LoadCombination{
		ID:        m.ids.Next(KindLoadCombination),
		Name:      name,
		Factors:   factors,
		Situation: situation,
		Check:     check,
	}
	m.LoadCombinations = append(m.LoadCombinations, lc)
	return lc
}

// CreateImperfectionCase creates and registers an imperfection case.
func (m *Model) CreateImperfectionCase(combinations ...*LoadCombination) *ImperfectionCase {
	ic := &ImperfectionCase{ID: m.ids.Next(KindImperfectionCase), LoadCombinations: combinations}
	m.ImperfectionCases = append(m.ImperfectionCases, ic)
	return ic
}

// AllMembers returns every member once, in member set order.
func (m *Model) AllMembers() []*Member {
	seen := make(map[int]bool)
	var members []*Member
	for _, set := range m.MemberSets {
		for _, mem := range set.Members {
			if !seen[mem.ID] {
				seen[mem.ID] = true
				members = append(members, mem)
			}
		}
	}
	return members
}

// AllNodes returns every member end node once, in member set order.
func (m *Model) AllNodes() []*Node {
	seen := make(map[int]bool)
	var nodes []*Node
	for _, set := range m.MemberSets {
		for _, mem := range set.Members {
			for _, n := range []*Node{mem.StartNode, mem.EndNode} {
				if !seen[n.ID] {
					seen[n.ID] = true
					nodes = append(nodes, n)
				}
			}
		}
	}
	return nodes
}

// NumberOfElements is the number of unique members.
func (m *Model) NumberOfElements() int {
	return len(m.AllMembers())
}

// NumberOfNodes is the number of unique nodes.
func (m *Model) NumberOfNodes() int {
	return len(m.AllNodes())
}

// NodeByID finds a node among the member end nodes.
func (m *Model) NodeByID(id int) (*Node, error) {
	for _, n := range m.AllNodes() {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
}

// MemberByID finds a member.
func (m *Model) MemberByID(id int) (*Member, bool) {
	for _, mem := range m.AllMembers() {
		if mem.ID == id {
			return mem, true
		}
	}
	return nil, false
}

// FindMembersByFirstNode returns the members that start at node.
func (m *Model) FindMembersByFirstNode(node *Node) []*Member {
	var out []*Member
	for _, mem := range m.AllMembers() {
		if mem.StartNode == node {
			out = append(out, mem)
		}
	}
	return out
}

// AllNodalLoads collects the nodal loads of every load case.
func (m *Model) AllNodalLoads() []*NodalLoad {
	var out []*NodalLoad
	for _, lc := range m.LoadCases {
		out = append(out, lc.NodalLoads...)
	}
	return out
}

// AllLineLoads collects the line loads of every load case.
func (m *Model) AllLineLoads() []*LineLoad {
	var out []*LineLoad
	for _, lc := range m.LoadCases {
		out = append(out, lc.LineLoads...)
	}
	return out
}
