package section

import (
	"encoding/json"
	"os"

	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/alexiusacademia/gofers/internal/nscp"
)

// LoadFromFile loads a section definition from a JSON file
func LoadFromFile(filepath string) (*Section, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var section Section
	if err := json.Unmarshal(data, &section); err != nil {
		return nil, err
	}

	if err := section.Validate(); err != nil {
		return nil, err
	}

	return &section, nil
}

// Material returns the NSCP material preset matching Fc or Fy
func (s *Section) Material() (*model.Material, error) {
	if s.Fc > 0 {
		return nscp.Concrete(s.Fc)
	}
	return nscp.Steel(s.Fy)
}

// ToModelSection converts the section to model units (m, m², m⁴)
func (s *Section) ToModelSection() (*model.Section, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	mat, err := s.Material()
	if err != nil {
		return nil, err
	}

	props := s.CalculateProperties()
	const (
		mm  = 1e-3
		mm2 = mm * mm
		mm4 = mm2 * mm2
	)
	out, err := model.NewSection(s.Name, mat, props.Area*mm2, props.IY*mm4, props.IZ*mm4, props.J*mm4)
	if err != nil {
		return nil, err
	}
	out.H = props.Height * mm
	out.B = props.Width * mm
	return out, nil
}
