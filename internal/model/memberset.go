package model

// MemberSet groups members that act as one continuous structural element.
// Chaining of consecutive members is not enforced.
type MemberSet struct {
	ID             int
	Members        []*Member
	Classification string

	// Effective buckling lengths; zero means not set.
	LY float64
	LZ float64
}

// Nodes returns the unique nodes of the set in first-seen order.
func (s *MemberSet) Nodes() []*Node {
	seen := make(map[int]bool)
	var nodes []*Node
	for _, m := range s.Members {
		for _, n := range []*Node{m.StartNode, m.EndNode} {
			if !seen[n.ID] {
				seen[n.ID] = true
				nodes = append(nodes, n)
			}
		}
	}
	return nodes
}

// Length sums the lengths of the members.
func (s *MemberSet) Length() float64 {
	var total float64
	for _, m := range s.Members {
		total += m.Length()
	}
	return total
}
