package nscp

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gofers/internal/model"
)

// NSCP 2015 Material Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Poisson's ratios used to derive the shear modulus
	NuConcrete = 0.2
	NuSteel    = 0.3

	// Unit weights as mass densities
	DensityConcrete = 2400.0 // kg/m³
	DensitySteel    = 7850.0 // kg/m³

	mpa = 1e6 // Pa
)

// ConcreteModulus returns Ec = 4700√f'c in MPa for normal-weight concrete
// NSCP 2015 Section 419.2.2.1
func ConcreteModulus(fc float64) float64 {
	return 4700 * math.Sqrt(fc)
}

// Concrete returns a normal-weight concrete material in SI units (Pa, kg/m³).
// fc is in MPa and is stored as the material strength.
func Concrete(fc float64) (*model.Material, error) {
	if fc <= 0 {
		return nil, &model.ValidationError{Field: "Concrete.fc", Msg: "f'c must be positive"}
	}
	e := ConcreteModulus(fc) * mpa
	return model.NewMaterial(
		fmt.Sprintf("Concrete fc=%g", fc),
		e,
		e/(2*(1+NuConcrete)),
		DensityConcrete,
		fc*mpa,
	)
}

// Steel returns a structural or reinforcing steel in SI units (Pa, kg/m³).
// fy is in MPa.
func Steel(fy float64) (*model.Material, error) {
	if fy <= 0 {
		return nil, &model.ValidationError{Field: "Steel.fy", Msg: "fy must be positive"}
	}
	e := Es * mpa
	return model.NewMaterial(
		fmt.Sprintf("Steel fy=%g", fy),
		e,
		e/(2*(1+NuSteel)),
		DensitySteel,
		fy*mpa,
	)
}
