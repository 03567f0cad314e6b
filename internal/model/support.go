package model

// ConditionKind is the restraint state of one degree of freedom.
type ConditionKind string

const (
	Fixed  ConditionKind = "Fixed"
	Free   ConditionKind = "Free"
	Spring ConditionKind = "Spring"
)

// Condition restrains a single degree of freedom. Stiffness is only used by Spring.
type Condition struct {
	Kind      ConditionKind
	Stiffness float64
}

// Conditions holds one Condition per global axis.
type Conditions struct {
	X Condition
	Y Condition
	Z Condition
}

// AllConditions returns c for every axis.
func AllConditions(c Condition) Conditions {
	return Conditions{X: c, Y: c, Z: c}
}

// NodalSupport is a boundary condition. One support may be shared by many nodes.
type NodalSupport struct {
	ID           int
	Displacement Conditions
	Rotation     Conditions
}

// Release describes how one force or moment component is transferred at a
// member end. A released component with zero stiffness is a perfect hinge.
type Release struct {
	Released  bool
	Stiffness float64
}

// MemberHinge is a set of releases at a member end, expressed in local axes.
type MemberHinge struct {
	ID   int
	Type string

	Vx Release
	Vy Release
	Vz Release
	Mx Release
	My Release
	Mz Release
}
