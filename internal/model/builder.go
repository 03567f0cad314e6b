package model

// MemberSetOptions are applied to every member created by CreateMemberSet.
type MemberSetOptions struct {
	Classification  string
	RotationAngle   float64
	Chi             float64
	ReferenceMember *Member
	LY              float64
	LZ              float64
}

// CreateMemberSet chains members through start, the intermediate nodes and
// end. The set is not added to the model.
func (m *Model) CreateMemberSet(start, end *Node, section *Section, intermediate []*Node, opts MemberSetOptions) (*MemberSet, error) {
	nodes := make([]*Node, 0, len(intermediate)+2)
	nodes = append(nodes, start)
	nodes = append(nodes, intermediate...)
	nodes = append(nodes, end)

	members := make([]*Member, 0, len(nodes)-1)
	for i := 0; i < len(nodes)-1; i++ {
		mem, err := m.NewMember(nodes[i], nodes[i+1], section)
		if err != nil {
			return nil, err
		}
		mem.Classification = opts.Classification
		mem.RotationAngle = opts.RotationAngle
		mem.Chi = opts.Chi
		mem.ReferenceMember = opts.ReferenceMember
		members = append(members, mem)
	}

	set := m.NewMemberSet(opts.Classification, members...)
	set.LY = opts.LY
	set.LZ = opts.LZ
	return set, nil
}

// CombineMemberSets returns a new set holding the members of all sets in order.
// Members are shared, not copied.
func (m *Model) CombineMemberSets(sets ...*MemberSet) *MemberSet {
	var members []*Member
	for _, s := range sets {
		members = append(members, s.Members...)
	}
	return m.NewMemberSet("", members...)
}
