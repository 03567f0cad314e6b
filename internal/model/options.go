package model

// AnalysisOptions are forwarded unchanged to the analysis engine.
type AnalysisOptions struct {
	Order          string  `validate:"oneof=first second"`
	Solver         string  `validate:"required"`
	Tolerance      float64 `validate:"gt=0"`
	MaxIterations  int     `validate:"gte=1"`
	Dimensionality string  `validate:"oneof=2D 3D"`
}

// DefaultAnalysisOptions returns a linear first-order 3D analysis setup.
func DefaultAnalysisOptions() *AnalysisOptions {
	return &AnalysisOptions{
		Order:          "first",
		Solver:         "newton_raphson",
		Tolerance:      1e-6,
		MaxIterations:  20,
		Dimensionality: "3D",
	}
}
