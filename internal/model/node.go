package model

import "github.com/alexiusacademia/gofers/internal/geometry"

// Node is a point of the frame. Its support is shared, not owned.
type Node struct {
	ID             int
	X              float64
	Y              float64
	Z              float64
	Support        *NodalSupport
	Classification string
}

// Position returns the node coordinates as a vector.
func (n *Node) Position() geometry.Vec {
	return geometry.Vec{X: n.X, Y: n.Y, Z: n.Z}
}
