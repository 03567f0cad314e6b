package export

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/model"
)

// ToModel rebuilds the entity graph described by doc. Shared entities are
// instantiated once, and the model's id allocator is advanced past every id
// found in the document so entities created afterwards do not collide.
func ToModel(doc *Document) (*model.Model, error) {
	m := model.New()
	ids := m.IDs()

	materials := make(map[string]*model.Material, len(doc.Materials))
	for _, md := range doc.Materials {
		mat, err := model.NewMaterial(md.Name, md.ElasticModulus, md.ShearModulus, md.Density, md.YieldStress)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", md.Name, err)
		}
		materials[md.Name] = mat
	}

	sections := make(map[string]*model.Section, len(doc.Sections))
	for _, sd := range doc.Sections {
		mat, ok := materials[sd.Material]
		if !ok {
			return nil, fmt.Errorf("section %q: material %q: %w", sd.Name, sd.Material, model.ErrDanglingReference)
		}
		s, err := model.NewSection(sd.Name, mat, sd.Area, sd.IY, sd.IZ, sd.J)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", sd.Name, err)
		}
		s.H, s.B = sd.H, sd.B
		sections[sd.Name] = s
	}

	supports := make(map[int]*model.NodalSupport, len(doc.NodalSupports))
	for _, sd := range doc.NodalSupports {
		disp, err := conditions(sd.Displacement)
		if err != nil {
			return nil, fmt.Errorf("nodal support %d: %w", sd.ID, err)
		}
		rot, err := conditions(sd.Rotation)
		if err != nil {
			return nil, fmt.Errorf("nodal support %d: %w", sd.ID, err)
		}
		supports[sd.ID] = &model.NodalSupport{ID: sd.ID, Displacement: disp, Rotation: rot}
		ids.Observe(model.KindNodalSupport, sd.ID)
	}

	hinges := make(map[int]*model.MemberHinge, len(doc.MemberHinges))
	for _, hd := range doc.MemberHinges {
		hinges[hd.ID] = &model.MemberHinge{
			ID:   hd.ID,
			Type: hd.Type,
			Vx:   release(hd.Vx),
			Vy:   release(hd.Vy),
			Vz:   release(hd.Vz),
			Mx:   release(hd.Mx),
			My:   release(hd.My),
			Mz:   release(hd.Mz),
		}
		ids.Observe(model.KindMemberHinge, hd.ID)
	}

	nodes := make(map[int]*model.Node, len(doc.Nodes))
	for _, nd := range doc.Nodes {
		if _, dup := nodes[nd.ID]; dup {
			return nil, fmt.Errorf("node %d listed twice: %w", nd.ID, model.ErrInvalidEntity)
		}
		n := &model.Node{ID: nd.ID, X: nd.X, Y: nd.Y, Z: nd.Z, Classification: nd.Classification}
		if nd.Support != nil {
			s, ok := supports[*nd.Support]
			if !ok {
				return nil, fmt.Errorf("node %d: nodal support %d: %w", nd.ID, *nd.Support, model.ErrDanglingReference)
			}
			n.Support = s
		}
		nodes[nd.ID] = n
		ids.Observe(model.KindNode, nd.ID)
	}

	// Members may be listed in more than one set; the first listing wins.
	// References are resolved once every member exists.
	members := make(map[int]*model.Member)
	var refs []memberRef
	for _, sd := range doc.MemberSets {
		set := &model.MemberSet{ID: sd.ID, Classification: sd.Classification, LY: sd.LY, LZ: sd.LZ}
		for _, md := range sd.Members {
			mem, ok := members[md.ID]
			if !ok {
				var err error
				mem, err = buildMember(md, nodes, sections, hinges)
				if err != nil {
					return nil, err
				}
				members[md.ID] = mem
				ids.Observe(model.KindMember, md.ID)
				if md.ReferenceMember != nil {
					refs = append(refs, memberRef{mem: mem, target: *md.ReferenceMember})
				}
			}
			set.Members = append(set.Members, mem)
		}
		m.AddMemberSet(set)
		ids.Observe(model.KindMemberSet, sd.ID)
	}
	for _, r := range refs {
		target, ok := members[r.target]
		if !ok {
			return nil, fmt.Errorf("member %d: reference member %d: %w", r.mem.ID, r.target, model.ErrDanglingReference)
		}
		r.mem.ReferenceMember = target
	}

	sets := make(map[int]*model.MemberSet, len(m.MemberSets))
	for _, s := range m.MemberSets {
		sets[s.ID] = s
	}

	cases := make(map[int]*model.LoadCase, len(doc.LoadCases))
	for _, ld := range doc.LoadCases {
		lc := &model.LoadCase{ID: ld.ID, Name: ld.Name}
		for _, l := range ld.NodalLoads {
			n, ok := nodes[l.Node]
			if !ok {
				return nil, fmt.Errorf("load case %q: node %d: %w", ld.Name, l.Node, model.ErrDanglingReference)
			}
			if _, err := lc.AddNodalLoad(n, l.Magnitude, l.Direction.vec()); err != nil {
				return nil, fmt.Errorf("load case %q: %w", ld.Name, err)
			}
		}
		for _, l := range ld.LineLoads {
			mem, ok := members[l.Member]
			if !ok {
				return nil, fmt.Errorf("load case %q: member %d: %w", ld.Name, l.Member, model.ErrDanglingReference)
			}
			if _, err := lc.AddPartialLineLoad(mem, l.Magnitude, l.Direction.vec(), l.StartFrac, l.EndFrac); err != nil {
				return nil, fmt.Errorf("load case %q: %w", ld.Name, err)
			}
		}
		cases[ld.ID] = lc
		m.LoadCases = append(m.LoadCases, lc)
		ids.Observe(model.KindLoadCase, ld.ID)
	}

	combos := make(map[int]*model.LoadCombination, len(doc.LoadCombinations))
	for _, cd := range doc.LoadCombinations {
		c := &model.LoadCombination{ID: cd.ID, Name: cd.Name, Situation: cd.Situation, Check: cd.Check}
		// Follow load case order so factor order is stable across round trips.
		for _, lc := range m.LoadCases {
			if f, ok := cd.Factors[lc.ID]; ok {
				c.Factors = append(c.Factors, model.CaseFactor{LoadCase: lc, Factor: f})
			}
		}
		for id := range cd.Factors {
			if _, ok := cases[id]; !ok {
				return nil, fmt.Errorf("load combination %q: load case %d: %w", cd.Name, id, model.ErrDanglingReference)
			}
		}
		combos[cd.ID] = c
		m.LoadCombinations = append(m.LoadCombinations, c)
		ids.Observe(model.KindLoadCombination, cd.ID)
	}

	for _, icd := range doc.ImperfectionCases {
		ic := &model.ImperfectionCase{ID: icd.ID}
		for _, id := range icd.LoadCombinations {
			c, ok := combos[id]
			if !ok {
				return nil, fmt.Errorf("imperfection case %d: load combination %d: %w", icd.ID, id, model.ErrDanglingReference)
			}
			ic.LoadCombinations = append(ic.LoadCombinations, c)
		}
		for _, td := range icd.TranslationImperfections {
			set, ok := sets[td.MemberSet]
			if !ok {
				return nil, fmt.Errorf("imperfection case %d: member set %d: %w", icd.ID, td.MemberSet, model.ErrDanglingReference)
			}
			if _, err := ic.AddTranslationImperfection(set, td.Magnitude, td.Axis.vec()); err != nil {
				return nil, fmt.Errorf("imperfection case %d: %w", icd.ID, err)
			}
		}
		m.ImperfectionCases = append(m.ImperfectionCases, ic)
		ids.Observe(model.KindImperfectionCase, icd.ID)
	}

	if o := doc.AnalysisOptions; o != nil {
		opts := &model.AnalysisOptions{
			Order:          o.Order,
			Solver:         o.Solver,
			Tolerance:      o.Tolerance,
			MaxIterations:  o.MaxIterations,
			Dimensionality: o.Dimensionality,
		}
		if err := model.Validate(opts); err != nil {
			return nil, fmt.Errorf("analysis options: %w", err)
		}
		m.AnalysisOptions = opts
	}
	if doc.Results != nil {
		m.Results = ResultsFromDoc(doc.Results)
	}
	return m, nil
}

type memberRef struct {
	mem    *model.Member
	target int
}

func buildMember(md MemberDoc, nodes map[int]*model.Node, sections map[string]*model.Section, hinges map[int]*model.MemberHinge) (*model.Member, error) {
	start, ok := nodes[md.StartNode]
	if !ok {
		return nil, fmt.Errorf("member %d: start node %d: %w", md.ID, md.StartNode, model.ErrDanglingReference)
	}
	end, ok := nodes[md.EndNode]
	if !ok {
		return nil, fmt.Errorf("member %d: end node %d: %w", md.ID, md.EndNode, model.ErrDanglingReference)
	}
	section, ok := sections[md.Section]
	if !ok {
		return nil, fmt.Errorf("member %d: section %q: %w", md.ID, md.Section, model.ErrDanglingReference)
	}
	if err := model.CheckEndpoints(start, end, section); err != nil {
		return nil, fmt.Errorf("member %d: %w", md.ID, err)
	}
	mem := &model.Member{
		ID:             md.ID,
		StartNode:      start,
		EndNode:        end,
		Section:        section,
		RotationAngle:  md.RotationAngle,
		Chi:            md.Chi,
		Classification: md.Classification,
	}
	lookupHinge := func(id *int) (*model.MemberHinge, error) {
		if id == nil {
			return nil, nil
		}
		h, ok := hinges[*id]
		if !ok {
			return nil, fmt.Errorf("member %d: member hinge %d: %w", md.ID, *id, model.ErrDanglingReference)
		}
		return h, nil
	}
	var err error
	if mem.StartHinge, err = lookupHinge(md.StartHinge); err != nil {
		return nil, err
	}
	if mem.EndHinge, err = lookupHinge(md.EndHinge); err != nil {
		return nil, err
	}
	if md.ReferenceNode != nil {
		ref, ok := nodes[*md.ReferenceNode]
		if !ok {
			return nil, fmt.Errorf("member %d: reference node %d: %w", md.ID, *md.ReferenceNode, model.ErrDanglingReference)
		}
		mem.ReferenceNode = ref
	}
	return mem, nil
}

func conditions(in map[string]ConditionDoc) (model.Conditions, error) {
	var out model.Conditions
	targets := []*model.Condition{&out.X, &out.Y, &out.Z}
	for i, axis := range []string{"X", "Y", "Z"} {
		target := targets[i]
		cd, ok := in[axis]
		if !ok {
			*target = model.Condition{Kind: model.Free}
			continue
		}
		switch k := model.ConditionKind(cd.Kind); k {
		case model.Fixed, model.Free:
			*target = model.Condition{Kind: k}
		case model.Spring:
			*target = model.Condition{Kind: k, Stiffness: cd.Stiffness}
		default:
			return out, &model.ValidationError{Field: "Condition." + axis, Msg: fmt.Sprintf("unknown condition type %q", cd.Kind)}
		}
	}
	return out, nil
}

func release(r ReleaseDoc) model.Release {
	return model.Release{Released: r.Released, Stiffness: r.Stiffness}
}

// ResultsFromDoc converts engine results into model results.
func ResultsFromDoc(rd *ResultsDoc) *model.Results {
	conv := func(in map[string]CaseResultDoc) map[string]*model.CaseResult {
		out := make(map[string]*model.CaseResult, len(in))
		for name, cd := range in {
			cr := &model.CaseResult{Name: name, Nodes: make(map[int]model.NodeResult, len(cd.DisplacementNodes))}
			if cd.Name != "" {
				cr.Name = cd.Name
			}
			for id, nr := range cd.DisplacementNodes {
				cr.Nodes[id] = model.NodeResult{
					Displacement: geometry.Vec{X: nr.Dx, Y: nr.Dy, Z: nr.Dz},
					Rotation:     geometry.Vec{X: nr.Rx, Y: nr.Ry, Z: nr.Rz},
				}
			}
			out[name] = cr
		}
		return out
	}
	return &model.Results{LoadCases: conv(rd.LoadCases), LoadCombinations: conv(rd.LoadCombinations)}
}
