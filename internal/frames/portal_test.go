package frames

import (
	"testing"

	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortalFrame_Build(t *testing.T) {
	m := model.New()
	f := &PortalFrame{Width: 6, Height: 4, Segments: 2, DeadLoad: 5e3, WindLoad: 2e3}
	require.NoError(t, f.Build(m))
	assert.Same(t, m, f.Model())

	// 3 sets of 2 members plus the brace
	assert.Len(t, m.MemberSets, 4)
	assert.Equal(t, 7, m.NumberOfElements())
	// 4 corners plus one intermediate node per set
	assert.Equal(t, 7, m.NumberOfNodes())

	assert.Len(t, m.UniqueNodalSupports(), 1)
	assert.Len(t, m.UniqueMemberHinges(), 1)
	assert.ElementsMatch(t, []string{"HEB200", "IPE300"}, m.UniqueSectionNames())

	require.Len(t, f.Dead.LineLoads, 2)
	require.Len(t, f.Wind.NodalLoads, 1)
	assert.Same(t, f.LeftColumn.Members[0], f.Beam.Members[0].ReferenceMember)
	assert.InDelta(t, 6.0, f.Beam.Length(), 1e-12)
}

func TestPortalFrame_NoLoads(t *testing.T) {
	m := model.New()
	f := &PortalFrame{Width: 5, Height: 3}
	require.NoError(t, f.Build(m))
	assert.Equal(t, 1, f.Segments)
	assert.Empty(t, f.Dead.LineLoads)
	assert.Empty(t, f.Wind.NodalLoads)
	assert.Len(t, m.LoadCases, 2)
}

func TestPortalFrame_InvalidSize(t *testing.T) {
	for _, f := range []*PortalFrame{{Width: 0, Height: 4}, {Width: 6, Height: -1}} {
		err := f.Build(model.New())
		assert.ErrorIs(t, err, model.ErrInvalidEntity)
	}
}
