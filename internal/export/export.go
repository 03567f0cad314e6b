// Package export converts a model to and from the document exchanged with
// the analysis engine, and reads engine results back into a model.
package export

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/google/uuid"
)

// FromModel flattens m into a Document. Every node that is reachable from a
// member, a reference or a load is listed once in the node registry.
// Members are written inside their member sets only, so a reference member,
// a line-loaded member or an imperfection member set that the model's
// member sets do not hold is reported as a dangling reference.
func FromModel(m *model.Model) (*Document, error) {
	if err := checkReachable(m); err != nil {
		return nil, err
	}
	doc := &Document{DocumentID: uuid.NewString()}

	nodes := collectNodes(m)
	supportSeen := make(map[int]bool)
	for _, n := range nodes {
		nd := NodeDoc{ID: n.ID, X: n.X, Y: n.Y, Z: n.Z, Classification: n.Classification}
		if n.Support != nil {
			nd.Support = intPtr(n.Support.ID)
			if !supportSeen[n.Support.ID] {
				supportSeen[n.Support.ID] = true
				doc.NodalSupports = append(doc.NodalSupports, supportDoc(n.Support))
			}
		}
		doc.Nodes = append(doc.Nodes, nd)
	}

	for _, mat := range m.UniqueMaterials() {
		doc.Materials = append(doc.Materials, MaterialDoc{
			Name:           mat.Name,
			ElasticModulus: mat.ElasticModulus,
			ShearModulus:   mat.ShearModulus,
			Density:        mat.Density,
			YieldStress:    mat.YieldStress,
		})
	}
	for _, s := range m.UniqueSections() {
		sd := SectionDoc{Name: s.Name, Area: s.Area, IY: s.IY, IZ: s.IZ, J: s.J, H: s.H, B: s.B}
		if s.Material != nil {
			sd.Material = s.Material.Name
		}
		doc.Sections = append(doc.Sections, sd)
	}
	for _, h := range m.UniqueMemberHinges() {
		doc.MemberHinges = append(doc.MemberHinges, HingeDoc{
			ID:   h.ID,
			Type: h.Type,
			Vx:   releaseDoc(h.Vx),
			Vy:   releaseDoc(h.Vy),
			Vz:   releaseDoc(h.Vz),
			Mx:   releaseDoc(h.Mx),
			My:   releaseDoc(h.My),
			Mz:   releaseDoc(h.Mz),
		})
	}

	for _, set := range m.MemberSets {
		sd := MemberSetDoc{ID: set.ID, Classification: set.Classification, LY: set.LY, LZ: set.LZ}
		for _, mem := range set.Members {
			sd.Members = append(sd.Members, memberDoc(mem))
		}
		doc.MemberSets = append(doc.MemberSets, sd)
	}

	for _, lc := range m.LoadCases {
		ld := LoadCaseDoc{ID: lc.ID, Name: lc.Name}
		for _, l := range lc.NodalLoads {
			ld.NodalLoads = append(ld.NodalLoads, NodalLoadDoc{
				Node:      l.Node.ID,
				Magnitude: l.Magnitude,
				Direction: vec3(l.Direction),
			})
		}
		for _, l := range lc.LineLoads {
			ld.LineLoads = append(ld.LineLoads, LineLoadDoc{
				Member:    l.Member.ID,
				Magnitude: l.Magnitude,
				Direction: vec3(l.Direction),
				StartFrac: l.StartFrac,
				EndFrac:   l.EndFrac,
			})
		}
		doc.LoadCases = append(doc.LoadCases, ld)
	}

	for _, c := range m.LoadCombinations {
		cd := LoadCombinationDoc{
			ID:        c.ID,
			Name:      c.Name,
			Factors:   make(map[int]float64, len(c.Factors)),
			Situation: c.Situation,
			Check:     c.Check,
		}
		for _, f := range c.Factors {
			cd.Factors[f.LoadCase.ID] = f.Factor
		}
		doc.LoadCombinations = append(doc.LoadCombinations, cd)
	}

	for _, ic := range m.ImperfectionCases {
		icd := ImperfectionCaseDoc{ID: ic.ID}
		for _, c := range ic.LoadCombinations {
			icd.LoadCombinations = append(icd.LoadCombinations, c.ID)
		}
		for _, ti := range ic.TranslationImperfections {
			icd.TranslationImperfections = append(icd.TranslationImperfections, TranslationImperfectionDoc{
				MemberSet: ti.MemberSet.ID,
				Magnitude: ti.Magnitude,
				Axis:      vec3(ti.Axis),
			})
		}
		doc.ImperfectionCases = append(doc.ImperfectionCases, icd)
	}

	if o := m.AnalysisOptions; o != nil {
		doc.AnalysisOptions = &OptionsDoc{
			Order:          o.Order,
			Solver:         o.Solver,
			Tolerance:      o.Tolerance,
			MaxIterations:  o.MaxIterations,
			Dimensionality: o.Dimensionality,
		}
	}
	if m.Results != nil {
		doc.Results = resultsDoc(m.Results)
	}
	return doc, nil
}

func checkReachable(m *model.Model) error {
	members := make(map[int]bool)
	for _, mem := range m.AllMembers() {
		members[mem.ID] = true
	}
	for _, mem := range m.AllMembers() {
		if ref := mem.ReferenceMember; ref != nil && !members[ref.ID] {
			return fmt.Errorf("member %d: reference member %d is in no member set: %w", mem.ID, ref.ID, model.ErrDanglingReference)
		}
	}
	for _, lc := range m.LoadCases {
		for _, l := range lc.LineLoads {
			if !members[l.Member.ID] {
				return fmt.Errorf("load case %q: member %d is in no member set: %w", lc.Name, l.Member.ID, model.ErrDanglingReference)
			}
		}
	}
	sets := make(map[int]bool, len(m.MemberSets))
	for _, set := range m.MemberSets {
		sets[set.ID] = true
	}
	for _, ic := range m.ImperfectionCases {
		for _, ti := range ic.TranslationImperfections {
			if !sets[ti.MemberSet.ID] {
				return fmt.Errorf("imperfection case %d: member set %d: %w", ic.ID, ti.MemberSet.ID, model.ErrDanglingReference)
			}
		}
	}
	return nil
}

func collectNodes(m *model.Model) []*model.Node {
	nodes := m.AllNodes()
	seen := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		seen[n.ID] = true
	}
	add := func(n *model.Node) {
		if n != nil && !seen[n.ID] {
			seen[n.ID] = true
			nodes = append(nodes, n)
		}
	}
	for _, mem := range m.AllMembers() {
		add(mem.ReferenceNode)
	}
	for _, l := range m.AllNodalLoads() {
		add(l.Node)
	}
	return nodes
}

func memberDoc(mem *model.Member) MemberDoc {
	md := MemberDoc{
		ID:             mem.ID,
		StartNode:      mem.StartNode.ID,
		EndNode:        mem.EndNode.ID,
		Section:        mem.Section.Name,
		RotationAngle:  mem.RotationAngle,
		Chi:            mem.Chi,
		Classification: mem.Classification,
	}
	if mem.StartHinge != nil {
		md.StartHinge = intPtr(mem.StartHinge.ID)
	}
	if mem.EndHinge != nil {
		md.EndHinge = intPtr(mem.EndHinge.ID)
	}
	if mem.ReferenceMember != nil {
		md.ReferenceMember = intPtr(mem.ReferenceMember.ID)
	}
	if mem.ReferenceNode != nil {
		md.ReferenceNode = intPtr(mem.ReferenceNode.ID)
	}
	return md
}

func supportDoc(s *model.NodalSupport) SupportDoc {
	return SupportDoc{
		ID:           s.ID,
		Displacement: conditionsDoc(s.Displacement),
		Rotation:     conditionsDoc(s.Rotation),
	}
}

func conditionsDoc(c model.Conditions) map[string]ConditionDoc {
	one := func(c model.Condition) ConditionDoc {
		d := ConditionDoc{Kind: string(c.Kind)}
		if c.Kind == model.Spring {
			d.Stiffness = c.Stiffness
		}
		return d
	}
	return map[string]ConditionDoc{"X": one(c.X), "Y": one(c.Y), "Z": one(c.Z)}
}

func releaseDoc(r model.Release) ReleaseDoc {
	return ReleaseDoc{Released: r.Released, Stiffness: r.Stiffness}
}

func resultsDoc(r *model.Results) *ResultsDoc {
	conv := func(in map[string]*model.CaseResult) map[string]CaseResultDoc {
		if len(in) == 0 {
			return nil
		}
		out := make(map[string]CaseResultDoc, len(in))
		for name, c := range in {
			cd := CaseResultDoc{Name: c.Name, DisplacementNodes: make(map[int]NodeResultDoc, len(c.Nodes))}
			for id, nr := range c.Nodes {
				cd.DisplacementNodes[id] = NodeResultDoc{
					Dx: nr.Displacement.X, Dy: nr.Displacement.Y, Dz: nr.Displacement.Z,
					Rx: nr.Rotation.X, Ry: nr.Rotation.Y, Rz: nr.Rotation.Z,
				}
			}
			out[name] = cd
		}
		return out
	}
	return &ResultsDoc{LoadCases: conv(r.LoadCases), LoadCombinations: conv(r.LoadCombinations)}
}

func vec3(v geometry.Vec) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

func (v Vec3) vec() geometry.Vec {
	return geometry.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func intPtr(i int) *int {
	return &i
}
