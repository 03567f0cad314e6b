package model

import "sync"

// Kind identifies an entity family that draws ids from its own counter.
type Kind int

const (
	KindNode Kind = iota
	KindMember
	KindMemberSet
	KindNodalSupport
	KindMemberHinge
	KindLoadCase
	KindLoadCombination
	KindImperfectionCase
	kindCount
)

var kindNames = [...]string{
	KindNode:             "node",
	KindMember:           "member",
	KindMemberSet:        "member set",
	KindNodalSupport:     "nodal support",
	KindMemberHinge:      "member hinge",
	KindLoadCase:         "load case",
	KindLoadCombination:  "load combination",
	KindImperfectionCase: "imperfection case",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IDAllocator hands out monotonically increasing ids per entity kind for one
// model-construction session. Ids start at 1.
type IDAllocator struct {
	mu   sync.Mutex
	last [kindCount]int
}

// NewIDAllocator returns an allocator with every counter at its baseline.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns the next id for kind k.
func (a *IDAllocator) Next(k Kind) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last[k]++
	return a.last[k]
}

// Observe makes sure ids handed out later for kind k are greater than id.
// Used when a model is rebuilt from a document that already carries ids.
func (a *IDAllocator) Observe(k Kind, id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id > a.last[k] {
		a.last[k] = id
	}
}

// Last returns the most recently issued id for kind k, 0 if none.
func (a *IDAllocator) Last(k Kind) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last[k]
}

// Reset restarts every counter at once.
func (a *IDAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last = [kindCount]int{}
}
