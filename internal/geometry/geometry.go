package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a 3-D vector in either the global or a member-local frame.
type Vec = r3.Vec

// ErrDegenerateTriad is returned when local axes are not orthonormal.
var ErrDegenerateTriad = errors.New("degenerate local triad")

// Tolerance used when checking unit length and orthogonality of a triad.
const Tolerance = 1e-9

// Triad holds the local x, y and z axes of a member expressed in global coordinates.
type Triad struct {
	X Vec
	Y Vec
	Z Vec
}

// NewTriad checks that x, y and z form a right-handed orthonormal set.
func NewTriad(x, y, z Vec) (Triad, error) {
	t := Triad{X: x, Y: y, Z: z}
	for i, v := range []Vec{x, y, z} {
		if math.Abs(r3.Norm(v)-1) > Tolerance {
			return Triad{}, fmt.Errorf("%w: local %c axis has length %.6g", ErrDegenerateTriad, "xyz"[i], r3.Norm(v))
		}
	}
	if math.Abs(r3.Dot(x, y)) > Tolerance || math.Abs(r3.Dot(y, z)) > Tolerance || math.Abs(r3.Dot(x, z)) > Tolerance {
		return Triad{}, fmt.Errorf("%w: axes are not mutually orthogonal", ErrDegenerateTriad)
	}
	if r3.Dot(r3.Cross(x, y), z) < 0 {
		return Triad{}, fmt.Errorf("%w: axes are left-handed", ErrDegenerateTriad)
	}
	return t, nil
}

// Rotation returns the rotation matrix of the triad.
func (t Triad) Rotation() *mat.Dense {
	return RotationMatrix(t.X, t.Y, t.Z)
}

// RotationMatrix stacks the local axes as columns. The result maps local-frame
// coordinates to the global frame. The axes are used as given; non-orthonormal
// input produces a non-rigid mapping.
func RotationMatrix(localX, localY, localZ Vec) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		localX.X, localY.X, localZ.X,
		localX.Y, localY.Y, localZ.Y,
		localX.Z, localY.Z, localZ.Z,
	})
}

// ToLocal maps a global nodal displacement and rotation into the frame of R
// using the transpose of R.
func ToLocal(displacement, rotation Vec, R mat.Matrix) (Vec, Vec) {
	return mulTransposed(R, displacement), mulTransposed(R, rotation)
}

// ToGlobal is the inverse of ToLocal for a single vector.
func ToGlobal(local Vec, R mat.Matrix) Vec {
	var out mat.VecDense
	out.MulVec(R, mat.NewVecDense(3, []float64{local.X, local.Y, local.Z}))
	return Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

func mulTransposed(R mat.Matrix, v Vec) Vec {
	var out mat.VecDense
	out.MulVec(R.T(), mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// RotateAbout rotates v by angle (radians) about the unit axis using Rodrigues' formula.
func RotateAbout(v, axis Vec, angle float64) Vec {
	c, s := math.Cos(angle), math.Sin(angle)
	term1 := r3.Scale(c, v)
	term2 := r3.Scale(s, r3.Cross(axis, v))
	term3 := r3.Scale(r3.Dot(axis, v)*(1-c), axis)
	return r3.Add(r3.Add(term1, term2), term3)
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return r3.Norm(r3.Sub(b, a))
}
