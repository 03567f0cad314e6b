package transform

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/model"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transformer produces translated and replicated copies of a model. The
// source model is never modified. Sections, materials, supports and hinges
// are shared with the source; nodes and members are new.
type Transformer struct {
	logger *zap.Logger
}

// New returns a Transformer logging to logger.
func New(logger *zap.Logger) *Transformer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transformer{logger: logger}
}

type copyKey struct {
	id   int
	copy int
}

// Translate returns a new model whose nodes are moved by v. Member
// orientation (rotation angle, chi) is kept and reference nodes and members
// are re-resolved to their translated counterparts. Load data is not carried
// over; the analysis options are shared.
func (t *Transformer) Translate(src *model.Model, v geometry.Vec) (*model.Model, error) {
	out := model.NewWithAllocator(src.IDs())
	out.AnalysisOptions = src.AnalysisOptions

	nodes := make(map[int]*model.Node)
	for _, n := range src.AllNodes() {
		nodes[n.ID] = copyNode(out, n, v)
	}

	members := make(map[int]*model.Member)
	var created []pending
	for _, set := range src.MemberSets {
		newSet := out.NewMemberSet(set.Classification)
		newSet.LY, newSet.LZ = set.LY, set.LZ
		for _, mem := range set.Members {
			dup, ok := members[mem.ID]
			if !ok {
				var err error
				dup, err = copyMember(out, mem, nodes[mem.StartNode.ID], nodes[mem.EndNode.ID])
				if err != nil {
					return nil, err
				}
				members[mem.ID] = dup
				created = append(created, pending{src: mem, dup: dup})
			}
			newSet.Members = append(newSet.Members, dup)
		}
		out.AddMemberSet(newSet)
	}

	for _, p := range created {
		if ref := p.src.ReferenceNode; ref != nil {
			n, ok := nodes[ref.ID]
			if !ok {
				return nil, &DanglingReferenceError{MemberID: p.src.ID, Kind: model.KindNode, TargetID: ref.ID}
			}
			p.dup.ReferenceNode = n
		}
		if ref := p.src.ReferenceMember; ref != nil {
			m, ok := members[ref.ID]
			if !ok {
				return nil, &DanglingReferenceError{MemberID: p.src.ID, Kind: model.KindMember, TargetID: ref.ID}
			}
			p.dup.ReferenceMember = m
		}
	}

	t.logger.Debug("translated model",
		zap.Float64("dx", v.X), zap.Float64("dy", v.Y), zap.Float64("dz", v.Z),
		zap.Int("nodes", len(nodes)),
		zap.Int("members", len(members)),
	)
	return out, nil
}

type pending struct {
	src  *model.Member
	dup  *model.Member
	copy int
}

// ReplicatePattern returns a model holding the source member sets unchanged
// followed by count-1 copies, copy i offset by i*spacing.
//
// A copied node landing on the coordinates of a source node or of a node
// from an earlier copy is merged with it, so abutting copies stay connected.
// Source nodes are shared, never modified.
// Reference nodes and members of a duplicate point into the same copy; a
// reference outside the replicated graph is a *DanglingReferenceError.
func (t *Transformer) ReplicatePattern(src *model.Model, count int, spacing geometry.Vec) (*model.Model, error) {
	if count < 1 {
		return nil, &model.ValidationError{Field: "count", Msg: fmt.Sprintf("must be at least 1, got %d", count)}
	}

	out := model.NewWithAllocator(src.IDs())
	out.AnalysisOptions = src.AnalysisOptions
	out.AddMemberSet(src.MemberSets...)

	srcNodes := src.AllNodes()
	nodes := make(map[copyKey]*model.Node, len(srcNodes)*(count-1))
	byCoord := make(map[geometry.Vec]*model.Node, len(srcNodes)*count)
	for _, n := range srcNodes {
		if _, ok := byCoord[n.Position()]; !ok {
			byCoord[n.Position()] = n
		}
	}
	merged := 0
	for i := 1; i < count; i++ {
		offset := r3.Scale(float64(i), spacing)
		for _, n := range srcNodes {
			p := r3.Add(n.Position(), offset)
			if existing, ok := byCoord[p]; ok {
				nodes[copyKey{n.ID, i}] = existing
				merged++
				continue
			}
			dup := copyNode(out, n, offset)
			byCoord[p] = dup
			nodes[copyKey{n.ID, i}] = dup
		}
	}

	// duplicates[id][i-1] is the copy-i duplicate of source member id
	duplicates := make(map[int][]*model.Member)
	var created []pending
	for i := 1; i < count; i++ {
		for _, set := range src.MemberSets {
			newSet := out.NewMemberSet(set.Classification)
			newSet.LY, newSet.LZ = set.LY, set.LZ
			for _, mem := range set.Members {
				if dups := duplicates[mem.ID]; len(dups) >= i {
					newSet.Members = append(newSet.Members, dups[i-1])
					continue
				}
				dup, err := copyMember(out, mem, nodes[copyKey{mem.StartNode.ID, i}], nodes[copyKey{mem.EndNode.ID, i}])
				if err != nil {
					return nil, fmt.Errorf("copy %d: %w", i, err)
				}
				if ref := mem.ReferenceNode; ref != nil {
					n, ok := nodes[copyKey{ref.ID, i}]
					if !ok {
						return nil, &DanglingReferenceError{MemberID: mem.ID, Kind: model.KindNode, TargetID: ref.ID, Copy: i}
					}
					dup.ReferenceNode = n
				}
				duplicates[mem.ID] = append(duplicates[mem.ID], dup)
				created = append(created, pending{src: mem, dup: dup, copy: i})
				newSet.Members = append(newSet.Members, dup)
			}
			out.AddMemberSet(newSet)
		}
		t.logger.Debug("replicated copy", zap.Int("copy", i), zap.Int("member_sets", len(src.MemberSets)))
	}

	if err := resolveReferenceMembers(created, duplicates); err != nil {
		return nil, err
	}

	t.logger.Info("replicated pattern",
		zap.Int("count", count),
		zap.Int("member_sets", len(out.MemberSets)),
		zap.Int("merged_nodes", merged),
	)
	return out, nil
}

// resolveReferenceMembers points every duplicate's reference member at the
// duplicate of the original reference from the same copy.
func resolveReferenceMembers(created []pending, duplicates map[int][]*model.Member) error {
	for _, p := range created {
		ref := p.src.ReferenceMember
		if ref == nil {
			continue
		}
		dups := duplicates[ref.ID]
		if len(dups) < p.copy {
			return &DanglingReferenceError{MemberID: p.src.ID, Kind: model.KindMember, TargetID: ref.ID, Copy: p.copy}
		}
		p.dup.ReferenceMember = dups[p.copy-1]
	}
	return nil
}

// TranslateMemberSet copies one member set moved by v into m. Nodes shared by
// members of the set stay shared. References to members and nodes inside the
// set are re-resolved; references outside it keep pointing at the original.
func TranslateMemberSet(m *model.Model, set *model.MemberSet, v geometry.Vec) (*model.MemberSet, error) {
	nodes := make(map[int]*model.Node)
	nodeFor := func(n *model.Node) *model.Node {
		if dup, ok := nodes[n.ID]; ok {
			return dup
		}
		dup := copyNode(m, n, v)
		nodes[n.ID] = dup
		return dup
	}

	members := make(map[int]*model.Member)
	out := m.NewMemberSet(set.Classification)
	out.LY, out.LZ = set.LY, set.LZ
	for _, mem := range set.Members {
		dup, err := copyMember(m, mem, nodeFor(mem.StartNode), nodeFor(mem.EndNode))
		if err != nil {
			return nil, err
		}
		members[mem.ID] = dup
		out.Members = append(out.Members, dup)
	}
	for i, mem := range set.Members {
		dup := out.Members[i]
		if ref := mem.ReferenceNode; ref != nil {
			dup.ReferenceNode = ref
			if n, ok := nodes[ref.ID]; ok {
				dup.ReferenceNode = n
			}
		}
		if ref := mem.ReferenceMember; ref != nil {
			dup.ReferenceMember = ref
			if r, ok := members[ref.ID]; ok {
				dup.ReferenceMember = r
			}
		}
	}
	return out, nil
}

func copyNode(m *model.Model, n *model.Node, offset geometry.Vec) *model.Node {
	dup := m.NewNodeAt(r3.Add(n.Position(), offset))
	dup.Support = n.Support
	dup.Classification = n.Classification
	return dup
}

func copyMember(m *model.Model, src *model.Member, start, end *model.Node) (*model.Member, error) {
	dup, err := m.NewMember(start, end, src.Section)
	if err != nil {
		return nil, fmt.Errorf("member %d: %w", src.ID, err)
	}
	dup.StartHinge = src.StartHinge
	dup.EndHinge = src.EndHinge
	dup.RotationAngle = src.RotationAngle
	dup.Chi = src.Chi
	dup.Classification = src.Classification
	return dup, nil
}
