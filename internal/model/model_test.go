package model_test

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/gofers/internal/frames"
	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildPortal(t *testing.T) (*model.Model, *frames.PortalFrame) {
	t.Helper()
	m := model.New()
	f := &frames.PortalFrame{Width: 6, Height: 4, Segments: 2, DeadLoad: 5e3, WindLoad: 2e3}
	require.NoError(t, f.Build(m))
	return m, f
}

func testSection(t *testing.T) *model.Section {
	t.Helper()
	_, beam, err := frames.DefaultSections()
	require.NoError(t, err)
	return beam
}

func TestIDAllocator_MonotonicPerKind(t *testing.T) {
	ids := model.NewIDAllocator()
	assert.Equal(t, 1, ids.Next(model.KindNode))
	assert.Equal(t, 2, ids.Next(model.KindNode))
	assert.Equal(t, 1, ids.Next(model.KindMember))

	ids.Observe(model.KindNode, 10)
	assert.Equal(t, 11, ids.Next(model.KindNode))
	ids.Observe(model.KindNode, 3)
	assert.Equal(t, 12, ids.Next(model.KindNode))
}

func TestIDAllocator_ResetRestartsEveryKind(t *testing.T) {
	m := model.New()
	m.NewNode(0, 0, 0)
	m.NewFixedSupport()
	m.CreateLoadCase("Dead")

	m.ResetCounters()

	for k := model.KindNode; k <= model.KindImperfectionCase; k++ {
		assert.Equal(t, 0, m.IDs().Last(k), k.String())
	}
	assert.Equal(t, 1, m.NewNode(1, 0, 0).ID)
	assert.Equal(t, 1, m.NewFixedSupport().ID)
}

func TestNewMember_RejectsZeroLength(t *testing.T) {
	m := model.New()
	sec := testSection(t)
	a := m.NewNode(0, 0, 0)
	b := m.NewNode(0, 0, 0)

	_, err := m.NewMember(a, a, sec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrZeroLengthMember))

	_, err = m.NewMember(a, b, sec)
	assert.ErrorIs(t, err, model.ErrZeroLengthMember)

	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = m.NewMember(a, m.NewNode(1, 0, 0), nil)
	assert.ErrorIs(t, err, model.ErrInvalidEntity)
}

func TestNewMaterial_Validation(t *testing.T) {
	_, err := model.NewMaterial("", 210e9, 0, 0, 0)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = model.NewMaterial("S355", -1, 0, 0, 0)
	assert.Error(t, err)

	mat, err := model.NewMaterial("S355", 210e9, 81e9, 7850, 355e6)
	require.NoError(t, err)
	_, err = model.NewSection("bad", mat, 0, 1, 1, 1)
	assert.Error(t, err)
}

func TestAllNodes_NoDuplicates(t *testing.T) {
	m, _ := buildPortal(t)

	nodes := m.AllNodes()
	seen := map[int]bool{}
	for _, n := range nodes {
		assert.False(t, seen[n.ID], "node %d listed twice", n.ID)
		seen[n.ID] = true
	}
	// 4 corners + 1 mid node per column + 1 mid node on the beam
	assert.Len(t, nodes, 7)
	assert.Equal(t, 7, m.NumberOfNodes())
	// 2 per column, 2 on the beam, 1 brace
	assert.Equal(t, 7, m.NumberOfElements())
}

func TestAllMembers_SharedAcrossSets(t *testing.T) {
	m, f := buildPortal(t)
	m.AddMemberSet(m.CombineMemberSets(f.LeftColumn, f.Beam))

	members := m.AllMembers()
	assert.Len(t, members, 7)
	assert.Equal(t, f.LeftColumn.Members[0], members[0])
}

func TestAllNodes_FirstSeenOrder(t *testing.T) {
	m := model.New()
	sec := testSection(t)
	a, b, c := m.NewNode(0, 0, 0), m.NewNode(1, 0, 0), m.NewNode(2, 0, 0)
	s2, err := m.CreateMemberSet(b, c, sec, nil, model.MemberSetOptions{})
	require.NoError(t, err)
	s1, err := m.CreateMemberSet(a, b, sec, nil, model.MemberSetOptions{})
	require.NoError(t, err)
	m.AddMemberSet(s2, s1)

	nodes := m.AllNodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, []int{b.ID, c.ID, a.ID}, []int{nodes[0].ID, nodes[1].ID, nodes[2].ID})
}

func TestNodeByID(t *testing.T) {
	m, f := buildPortal(t)
	head := f.Beam.Members[0].StartNode

	n, err := m.NodeByID(head.ID)
	require.NoError(t, err)
	assert.Same(t, head, n)

	_, err = m.NodeByID(9999)
	assert.ErrorIs(t, err, model.ErrNodeNotFound)
}

func TestFindMembersByFirstNode(t *testing.T) {
	m, f := buildPortal(t)
	base := f.LeftColumn.Members[0].StartNode

	found := m.FindMembersByFirstNode(base)
	// first column segment and the brace
	assert.Len(t, found, 2)
}

func TestCreateMemberSet_Chains(t *testing.T) {
	m := model.New()
	sec := testSection(t)
	a, b, c := m.NewNode(0, 0, 0), m.NewNode(1, 0, 0), m.NewNode(2, 0, 0)

	set, err := m.CreateMemberSet(a, c, sec, []*model.Node{b}, model.MemberSetOptions{Classification: "girder", Chi: -1, LY: 2})
	require.NoError(t, err)
	require.Len(t, set.Members, 2)
	assert.Same(t, set.Members[0].EndNode, set.Members[1].StartNode)
	assert.Equal(t, "girder", set.Members[1].Classification)
	assert.Equal(t, -1.0, set.Members[0].Chi)
	assert.Equal(t, 2.0, set.LY)
	assert.InDelta(t, 2.0, set.Length(), 1e-12)
	assert.Len(t, set.Nodes(), 3)
}

func TestLocalAxes(t *testing.T) {
	m := model.New()
	sec := testSection(t)

	beam, err := m.NewMember(m.NewNode(0, 0, 0), m.NewNode(5, 0, 0), sec)
	require.NoError(t, err)
	axes, err := beam.LocalAxes()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, axes.X.X, 1e-12)
	assert.InDelta(t, 1.0, axes.Y.Y, 1e-12)
	assert.InDelta(t, 1.0, axes.Z.Z, 1e-12)

	column, err := m.NewMember(m.NewNode(0, 0, 0), m.NewNode(0, 0, 3), sec)
	require.NoError(t, err)
	axes, err = column.LocalAxes()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, axes.X.Z, 1e-12)
	assert.InDelta(t, 1.0, axes.Z.X, 1e-12)

	beam.Chi = -1
	axes, err = beam.LocalAxes()
	require.NoError(t, err)
	assert.InDelta(t, -1.0, axes.Y.Y, 1e-12)
	assert.InDelta(t, -1.0, axes.Z.Z, 1e-12)

	beam.Chi = 0
	beam.ReferenceNode = m.NewNode(2, 0, 0)
	_, err = beam.LocalAxes()
	assert.Error(t, err)

	beam.ReferenceNode = m.NewNode(0, 0, 1)
	axes, err = beam.LocalAxes()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, axes.Y.Z, 1e-12)
}

func TestLocalAxes_ReferenceCycle(t *testing.T) {
	m := model.New()
	sec := testSection(t)
	a, err := m.NewMember(m.NewNode(0, 0, 0), m.NewNode(1, 0, 0), sec)
	require.NoError(t, err)
	b, err := m.NewMember(m.NewNode(0, 1, 0), m.NewNode(1, 1, 0), sec)
	require.NoError(t, err)
	a.ReferenceMember = b
	b.ReferenceMember = a

	_, err = a.LocalAxes()
	assert.Error(t, err)
}

func TestUniqueQueries(t *testing.T) {
	m, f := buildPortal(t)

	assert.Equal(t, []string{"S235"}, m.UniqueMaterialNames())
	assert.Equal(t, []string{"HEB200", "IPE300"}, m.UniqueSectionNames())
	assert.Len(t, m.UniqueNodalSupports(), 1)
	assert.Len(t, m.UniqueMemberHinges(), 1)

	details := m.NodalSupportDetails()
	require.Len(t, details, 1)
	assert.ElementsMatch(t, []int{
		f.LeftColumn.Members[0].StartNode.ID,
		f.RightColumn.Members[0].StartNode.ID,
	}, details[0].NodeIDs)
}

func TestMemberSetsByClassification(t *testing.T) {
	m, _ := buildPortal(t)

	sets, err := m.MemberSetsByClassification("column")
	require.NoError(t, err)
	assert.Len(t, sets, 2)

	sets, err = m.MemberSetsByClassification("^(beam|brace)$")
	require.NoError(t, err)
	assert.Len(t, sets, 2)

	sets, err = m.MemberSetsByClassification("right$")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "column_right", sets[0].Classification)

	_, err = m.MemberSetsByClassification("col(")
	assert.Error(t, err)
}

func TestSectionMaterialCombinations_ReportsUnmatched(t *testing.T) {
	m, _ := buildPortal(t)
	other, err := model.NewMaterial("C30/37", 33e9, 13.7e9, 2500, 30e6)
	require.NoError(t, err)
	sec, err := model.NewSection("slab", other, 1, 1, 1, 1)
	require.NoError(t, err)
	set, err := m.CreateMemberSet(m.NewNode(0, 5, 0), m.NewNode(1, 5, 0), sec, nil, model.MemberSetOptions{})
	require.NoError(t, err)
	m.AddMemberSet(set)

	combos, unmatched := m.SectionMaterialCombinations([]model.IndexedMaterial{{Name: "S235", Index: 3}}, zap.NewNop())
	assert.Equal(t, []string{"C30/37"}, unmatched)
	assert.Equal(t, []model.SectionMaterial{
		{Section: "HEB200", Material: "S235", MaterialIndex: 3},
		{Section: "IPE300", Material: "S235", MaterialIndex: 3},
	}, combos)
}

func TestSectionMaterialCombinations_SkipsMissingMaterial(t *testing.T) {
	m, _ := buildPortal(t)
	mat, err := model.NewMaterial("tmp", 1e9, 0.4e9, 1000, 1e6)
	require.NoError(t, err)
	bare, err := model.NewSection("bare", mat, 1, 1, 1, 1)
	require.NoError(t, err)
	set, err := m.CreateMemberSet(m.NewNode(0, 5, 0), m.NewNode(1, 5, 0), bare, nil, model.MemberSetOptions{})
	require.NoError(t, err)
	m.AddMemberSet(set)
	bare.Material = nil

	var combos []model.SectionMaterial
	var unmatched []string
	require.NotPanics(t, func() {
		combos, unmatched = m.SectionMaterialCombinations([]model.IndexedMaterial{{Name: "S235", Index: 3}}, zap.NewNop())
	})
	assert.Empty(t, unmatched)
	assert.Len(t, combos, 2)
	assert.Len(t, m.UniqueMaterials(), 1)
}

func TestLoadsAndCombinations(t *testing.T) {
	m, f := buildPortal(t)

	assert.Len(t, m.AllLineLoads(), 2)
	assert.Len(t, m.AllNodalLoads(), 1)

	uls := m.CreateLoadCombination("ULS1", []model.CaseFactor{{LoadCase: f.Dead, Factor: 1.35}, {LoadCase: f.Wind, Factor: 1.5}}, "ULS", "ULS")
	m.CreateLoadCombination("SLS1", []model.CaseFactor{{LoadCase: f.Dead, Factor: 1}}, "SLS", "SLS")
	m.CreateLoadCombination("ULS2", nil, "ULS", "ULS")

	assert.Equal(t, 1.5, uls.Factor(f.Wind))
	assert.Equal(t, []string{"ULS", "SLS"}, m.UniqueSituations())
	assert.Equal(t, []string{"ULS", "SLS", "ULS"}, m.LoadCombinationSituations())

	got, ok := m.LoadCombinationByName("ULS1")
	require.True(t, ok)
	assert.Same(t, uls, got)
	got, ok = m.LoadCombinationByID(uls.ID)
	require.True(t, ok)
	assert.Same(t, uls, got)
	lc, ok := m.LoadCaseByName("Wind")
	require.True(t, ok)
	assert.Same(t, f.Wind, lc)

	_, err := f.Dead.AddNodalLoad(f.Beam.Members[0].StartNode, 1, geometry.Vec{})
	assert.Error(t, err)
	_, err = f.Dead.AddPartialLineLoad(f.Beam.Members[0], 1, geometry.Vec{Z: -1}, 0.6, 0.2)
	assert.Error(t, err)

	summary := m.Summary()
	assert.Len(t, summary.MemberSets, 4)
	assert.Equal(t, []string{"Dead", "Wind"}, summary.LoadCases)
	assert.Equal(t, []string{"ULS1", "SLS1", "ULS2"}, summary.LoadCombinations)
}

func TestImperfectionCase(t *testing.T) {
	m, f := buildPortal(t)
	uls := m.CreateLoadCombination("ULS1", []model.CaseFactor{{LoadCase: f.Dead, Factor: 1.35}}, "ULS", "ULS")
	ic := m.CreateImperfectionCase(uls)

	ti, err := ic.AddTranslationImperfection(f.LeftColumn, 0.02, geometry.Vec{X: 1})
	require.NoError(t, err)
	assert.Same(t, f.LeftColumn, ti.MemberSet)

	_, err = ic.AddTranslationImperfection(f.LeftColumn, 0.02, geometry.Vec{})
	assert.Error(t, err)
}

func TestResultsLookup(t *testing.T) {
	r := &model.Results{
		LoadCases: map[string]*model.CaseResult{
			"Dead": {Name: "Dead", Nodes: map[int]model.NodeResult{1: {Displacement: geometry.Vec{Z: -0.01}}}},
		},
		LoadCombinations: map[string]*model.CaseResult{
			"ULS1": {Name: "ULS1", Nodes: map[int]model.NodeResult{}},
		},
	}

	c, err := r.Case("Dead")
	require.NoError(t, err)
	nr, err := c.Node(1)
	require.NoError(t, err)
	assert.Equal(t, -0.01, nr.Displacement.Z)

	_, err = c.Node(2)
	assert.ErrorIs(t, err, model.ErrMissingNodeResult)

	_, err = r.Case("nope")
	assert.ErrorIs(t, err, model.ErrResultsNotFound)

	var empty *model.Results
	_, err = empty.Case("Dead")
	assert.ErrorIs(t, err, model.ErrResultsNotFound)

	assert.Equal(t, []string{"Dead", "ULS1"}, r.Names())
}

func TestResultsSuperpose(t *testing.T) {
	m, f := buildPortal(t)
	r := &model.Results{LoadCases: map[string]*model.CaseResult{
		"Dead": {Name: "Dead", Nodes: map[int]model.NodeResult{
			1: {Displacement: geometry.Vec{Z: -0.01}, Rotation: geometry.Vec{Y: 0.002}},
			2: {Displacement: geometry.Vec{Z: -0.02}},
		}},
		"Wind": {Name: "Wind", Nodes: map[int]model.NodeResult{
			1: {Displacement: geometry.Vec{X: 0.004}},
		}},
	}}
	combo := m.CreateLoadCombination("ULS", []model.CaseFactor{
		{LoadCase: f.Dead, Factor: 1.2},
		{LoadCase: f.Wind, Factor: 1.0},
	}, "ULS", "ALL")

	got, err := r.Superpose(combo)
	require.NoError(t, err)
	assert.Equal(t, "ULS", got.Name)
	require.Len(t, got.Nodes, 1, "node 2 has no wind result")
	nr := got.Nodes[1]
	assert.InDelta(t, 0.004, nr.Displacement.X, 1e-12)
	assert.InDelta(t, -0.012, nr.Displacement.Z, 1e-12)
	assert.InDelta(t, 0.0024, nr.Rotation.Y, 1e-12)

	delete(r.LoadCases, "Wind")
	_, err = r.Superpose(combo)
	assert.ErrorIs(t, err, model.ErrResultsNotFound)
}

func TestAnalysisOptionsValidation(t *testing.T) {
	opts := model.DefaultAnalysisOptions()
	require.NoError(t, model.Validate(opts))

	opts.Order = "third"
	assert.Error(t, model.Validate(opts))
}
