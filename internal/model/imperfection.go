package model

import (
	"github.com/alexiusacademia/gofers/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// TranslationImperfection shifts a member set by Magnitude along Axis
// during analysis.
type TranslationImperfection struct {
	MemberSet *MemberSet
	Magnitude float64
	Axis      geometry.Vec
}

// ImperfectionCase applies imperfections to the listed load combinations.
type ImperfectionCase struct {
	ID                       int
	LoadCombinations         []*LoadCombination
	TranslationImperfections []*TranslationImperfection
}

// AddTranslationImperfection appends an imperfection for set.
func (ic *ImperfectionCase) AddTranslationImperfection(set *MemberSet, magnitude float64, axis geometry.Vec) (*TranslationImperfection, error) {
	if set == nil {
		return nil, &ValidationError{Field: "TranslationImperfection.MemberSet", Msg: "member set is required"}
	}
	if r3.Norm(axis) == 0 {
		return nil, &ValidationError{Field: "TranslationImperfection.Axis", Msg: "axis must be non-zero"}
	}
	ti := &TranslationImperfection{MemberSet: set, Magnitude: magnitude, Axis: axis}
	ic.TranslationImperfections = append(ic.TranslationImperfections, ti)
	return ti, nil
}
