package transform

import (
	"testing"

	"github.com/alexiusacademia/gofers/internal/frames"
	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

func buildPortal(t *testing.T) (*model.Model, *frames.PortalFrame) {
	t.Helper()
	m := model.New()
	f := &frames.PortalFrame{Width: 6, Height: 4, Segments: 2}
	require.NoError(t, f.Build(m))
	return m, f
}

func assertVecInDelta(t *testing.T, want, got geometry.Vec) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
	assert.InDelta(t, want.Z, got.Z, 1e-9)
}

func TestTranslate_RoundTrip(t *testing.T) {
	src, _ := buildPortal(t)
	tr := New(zap.NewNop())
	v := geometry.Vec{X: 1.5, Y: -2.25, Z: 10}

	moved, err := tr.Translate(src, v)
	require.NoError(t, err)
	back, err := tr.Translate(moved, r3.Scale(-1, v))
	require.NoError(t, err)

	orig, got := src.AllNodes(), back.AllNodes()
	require.Len(t, got, len(orig))
	for i := range orig {
		assertVecInDelta(t, orig[i].Position(), got[i].Position())
		assert.NotEqual(t, orig[i].ID, got[i].ID)
		assert.Same(t, orig[i].Support, got[i].Support)
	}
}

func TestTranslate_PreservesOrientationAndReferences(t *testing.T) {
	src, f := buildPortal(t)
	f.Beam.Members[0].RotationAngle = 0.3
	f.Beam.Members[0].Chi = -1

	moved, err := New(nil).Translate(src, geometry.Vec{Y: 5})
	require.NoError(t, err)
	require.Len(t, moved.MemberSets, 4)

	leftColumn, beam, brace := moved.MemberSets[0], moved.MemberSets[2], moved.MemberSets[3]
	assert.Equal(t, 0.3, beam.Members[0].RotationAngle)
	assert.Equal(t, -1.0, beam.Members[0].Chi)
	assert.Same(t, leftColumn.Members[0], beam.Members[0].ReferenceMember)
	assert.Same(t, beam.Members[0].StartNode, brace.Members[0].ReferenceNode)
	assert.Same(t, f.Brace.Members[0].StartHinge, brace.Members[0].StartHinge)
	assert.Same(t, f.Beam.Members[0].Section, beam.Members[0].Section)
	assert.Equal(t, f.Beam.LY, beam.LY)

	// source untouched
	assert.Same(t, f.LeftColumn.Members[0], f.Beam.Members[0].ReferenceMember)
	assert.Equal(t, 0.0, f.Beam.Members[0].StartNode.Y)
}

func TestTranslate_DanglingReferenceNode(t *testing.T) {
	src, f := buildPortal(t)
	f.Brace.Members[0].ReferenceNode = src.NewNode(3, 3, 3)

	_, err := New(nil).Translate(src, geometry.Vec{X: 1})
	var derr *DanglingReferenceError
	require.ErrorAs(t, err, &derr)
	assert.ErrorIs(t, err, model.ErrDanglingReference)
	assert.Equal(t, model.KindNode, derr.Kind)
}

func TestReplicatePattern_CountOneIsIdentity(t *testing.T) {
	src, _ := buildPortal(t)
	lastNode := src.IDs().Last(model.KindNode)

	out, err := New(nil).ReplicatePattern(src, 1, geometry.Vec{X: 10})
	require.NoError(t, err)
	require.Len(t, out.MemberSets, len(src.MemberSets))
	for i := range src.MemberSets {
		assert.Same(t, src.MemberSets[i], out.MemberSets[i])
	}
	assert.Equal(t, lastNode, src.IDs().Last(model.KindNode))
}

func TestReplicatePattern_InvalidCount(t *testing.T) {
	src, _ := buildPortal(t)
	_, err := New(nil).ReplicatePattern(src, 0, geometry.Vec{X: 10})
	assert.ErrorIs(t, err, model.ErrInvalidEntity)
}

func TestReplicatePattern_OffsetsEveryCopy(t *testing.T) {
	src, _ := buildPortal(t)
	spacing := geometry.Vec{X: 10}
	nSets := len(src.MemberSets)

	out, err := New(zap.NewNop()).ReplicatePattern(src, 3, spacing)
	require.NoError(t, err)
	require.Len(t, out.MemberSets, 3*nSets)
	assert.Equal(t, 3*src.NumberOfNodes(), out.NumberOfNodes())
	assert.Equal(t, 3*src.NumberOfElements(), out.NumberOfElements())

	for i := 1; i < 3; i++ {
		offset := r3.Scale(float64(i), spacing)
		for s, set := range src.MemberSets {
			dupSet := out.MemberSets[i*nSets+s]
			require.Len(t, dupSet.Members, len(set.Members))
			assert.Equal(t, set.Classification, dupSet.Classification)
			for k, mem := range set.Members {
				dup := dupSet.Members[k]
				assert.NotEqual(t, mem.ID, dup.ID)
				assert.Equal(t, r3.Add(mem.StartNode.Position(), offset), dup.StartNode.Position())
				assert.Equal(t, r3.Add(mem.EndNode.Position(), offset), dup.EndNode.Position())
				assert.Same(t, mem.StartHinge, dup.StartHinge)
				assert.Same(t, mem.Section, dup.Section)
			}
		}
	}
}

func TestReplicatePattern_ReferencesStayInCopy(t *testing.T) {
	src, f := buildPortal(t)
	nSets := len(src.MemberSets)

	out, err := New(nil).ReplicatePattern(src, 3, geometry.Vec{Y: 8})
	require.NoError(t, err)

	for i := 1; i < 3; i++ {
		leftColumn := out.MemberSets[i*nSets+0]
		beam := out.MemberSets[i*nSets+2]
		brace := out.MemberSets[i*nSets+3]
		for _, mem := range beam.Members {
			assert.Same(t, leftColumn.Members[0], mem.ReferenceMember, "copy %d", i)
			assert.NotSame(t, f.LeftColumn.Members[0], mem.ReferenceMember)
		}
		assert.Same(t, leftColumn.Members[len(leftColumn.Members)-1].EndNode, brace.Members[0].ReferenceNode)
	}

	// the source keeps its own references
	assert.Same(t, f.LeftColumn.Members[0], f.Beam.Members[0].ReferenceMember)
}

func TestReplicatePattern_DanglingReferenceMember(t *testing.T) {
	src, f := buildPortal(t)
	outside, err := src.NewMember(src.NewNode(0, 9, 0), src.NewNode(1, 9, 0), f.BeamSection)
	require.NoError(t, err)
	f.Brace.Members[0].ReferenceMember = outside
	f.Brace.Members[0].ReferenceNode = nil

	_, err = New(nil).ReplicatePattern(src, 2, geometry.Vec{X: 10})
	var derr *DanglingReferenceError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, model.KindMember, derr.Kind)
	assert.Equal(t, outside.ID, derr.TargetID)
	assert.Equal(t, 1, derr.Copy)
}

func TestReplicatePattern_DanglingReferenceNode(t *testing.T) {
	src, f := buildPortal(t)
	f.Brace.Members[0].ReferenceNode = src.NewNode(3, 3, 3)

	_, err := New(nil).ReplicatePattern(src, 2, geometry.Vec{X: 10})
	assert.ErrorIs(t, err, model.ErrDanglingReference)
}

func TestReplicatePattern_MergesCoincidentNodes(t *testing.T) {
	m := model.New()
	_, sec, err := frames.DefaultSections()
	require.NoError(t, err)

	// two sets meeting at x=1 through distinct node objects
	s1, err := m.CreateMemberSet(m.NewNode(0, 0, 0), m.NewNode(1, 0, 0), sec, nil, model.MemberSetOptions{})
	require.NoError(t, err)
	s2, err := m.CreateMemberSet(m.NewNode(1, 0, 0), m.NewNode(2, 0, 0), sec, nil, model.MemberSetOptions{})
	require.NoError(t, err)
	m.AddMemberSet(s1, s2)
	require.Equal(t, 4, m.NumberOfNodes())

	out, err := New(nil).ReplicatePattern(m, 2, geometry.Vec{Y: 3})
	require.NoError(t, err)

	copy1, copy2 := out.MemberSets[2], out.MemberSets[3]
	assert.Same(t, copy1.Members[0].EndNode, copy2.Members[0].StartNode)
	assert.Equal(t, 4+3, out.NumberOfNodes())
}

func TestTranslateMemberSet_KeepsConnectivity(t *testing.T) {
	src, f := buildPortal(t)

	moved, err := TranslateMemberSet(src, f.Beam, geometry.Vec{Z: 1})
	require.NoError(t, err)
	require.Len(t, moved.Members, len(f.Beam.Members))
	assert.Same(t, moved.Members[0].EndNode, moved.Members[1].StartNode)
	assert.InDelta(t, f.Height+1, moved.Members[0].StartNode.Z, 1e-12)
	assert.Same(t, f.LeftColumn.Members[0], moved.Members[0].ReferenceMember)
	assert.NotEqual(t, f.Beam.ID, moved.ID)
}

func TestReplicatePattern_ConnectsEverySeam(t *testing.T) {
	m := model.New()
	_, sec, err := frames.DefaultSections()
	require.NoError(t, err)

	start, end := m.NewNode(0, 0, 0), m.NewNode(10, 0, 0)
	set, err := m.CreateMemberSet(start, end, sec, nil, model.MemberSetOptions{Classification: "beam"})
	require.NoError(t, err)
	m.AddMemberSet(set)

	out, err := New(nil).ReplicatePattern(m, 3, geometry.Vec{X: 10})
	require.NoError(t, err)
	require.Len(t, out.MemberSets, 3)
	assert.Equal(t, 4, out.NumberOfNodes())
	assert.Equal(t, 3, out.NumberOfElements())

	original := out.MemberSets[0].Members[0]
	copy1 := out.MemberSets[1].Members[0]
	copy2 := out.MemberSets[2].Members[0]

	// seam between the source and copy 1 at x=10
	assert.Same(t, original.EndNode, copy1.StartNode)
	assert.Same(t, end, copy1.StartNode)
	assert.Equal(t, geometry.Vec{X: 10}, end.Position())
	// seam between copy 1 and copy 2 at x=20
	assert.Same(t, copy1.EndNode, copy2.StartNode)
	assert.Equal(t, geometry.Vec{X: 30}, copy2.EndNode.Position())

	// the source model is untouched
	assert.Equal(t, 2, m.NumberOfNodes())
	assert.Len(t, m.MemberSets, 1)
}
