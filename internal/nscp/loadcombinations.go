package nscp

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gofers/internal/model"
)

// LoadType is the source of a load case as used by the combination tables.
type LoadType string

const (
	Dead       LoadType = "D"
	Live       LoadType = "L"
	Roof       LoadType = "Lr"
	Wind       LoadType = "W"
	Earthquake LoadType = "E"
	Rain       LoadType = "R"
)

// LoadTypes lists every load type in table order.
var LoadTypes = []LoadType{Dead, Live, Roof, Wind, Earthquake, Rain}

// ParseLoadType accepts the symbols D, L, Lr, W, E and R (case-insensitive).
func ParseLoadType(s string) (LoadType, error) {
	for _, t := range LoadTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown load type %q", s)
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations for common beam design scenarios
// These are the most frequently used combinations for gravity loads
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Factor returns the factor applied to load type t.
func (lc LoadCombination) Factor(t LoadType) float64 {
	switch t {
	case Dead:
		return lc.Dead
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	}
	return 0
}

// Name is the combination name used in the model.
func (lc LoadCombination) Name() string {
	return fmt.Sprintf("NSCP %s: %s", lc.ID, lc.Description)
}

// Apply creates one model load combination per template. Load cases are
// assigned to load types by cases; a type without cases drops out of the
// combination. Templates that reduce to an already created set of factors
// are skipped. A dead load case is required.
func Apply(m *model.Model, templates []LoadCombination, cases map[LoadType][]*model.LoadCase) ([]*model.LoadCombination, error) {
	if len(cases[Dead]) == 0 {
		return nil, &model.ValidationError{Field: "LoadCombination", Msg: "at least one dead load case is required"}
	}

	var created []*model.LoadCombination
	seen := make(map[string]bool)
	for _, tpl := range templates {
		var factors []model.CaseFactor
		key := ""
		for _, t := range LoadTypes {
			f := tpl.Factor(t)
			if f == 0 {
				continue
			}
			for _, lc := range cases[t] {
				factors = append(factors, model.CaseFactor{LoadCase: lc, Factor: f})
				key += fmt.Sprintf("%d:%g;", lc.ID, f)
			}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		created = append(created, m.CreateLoadCombination(tpl.Name(), factors, "ULS", "ALL"))
	}
	return created, nil
}
