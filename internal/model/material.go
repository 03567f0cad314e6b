package model

// Material holds the elastic and strength properties shared by sections.
// Units follow the model: typically N and m.
type Material struct {
	Name           string  `validate:"required"`
	ElasticModulus float64 `validate:"gt=0"`
	ShearModulus   float64 `validate:"gte=0"`
	Density        float64 `validate:"gte=0"`
	YieldStress    float64 `validate:"gte=0"`
}

// Section is a cross-section assigned to members. Sections and their material
// are shared by reference and never copied when the graph is transformed.
type Section struct {
	Name     string    `validate:"required"`
	Material *Material `validate:"required"`
	Area     float64   `validate:"gt=0"`
	IY       float64   `validate:"gt=0"` // second moment about local y
	IZ       float64   `validate:"gt=0"` // second moment about local z
	J        float64   `validate:"gte=0"`
	H        float64   `validate:"gte=0"`
	B        float64   `validate:"gte=0"`
}

// NewMaterial validates and returns a material.
func NewMaterial(name string, elasticModulus, shearModulus, density, yieldStress float64) (*Material, error) {
	m := &Material{
		Name:           name,
		ElasticModulus: elasticModulus,
		ShearModulus:   shearModulus,
		Density:        density,
		YieldStress:    yieldStress,
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// NewSection validates and returns a section made of material.
func NewSection(name string, material *Material, area, iy, iz, j float64) (*Section, error) {
	s := &Section{Name: name, Material: material, Area: area, IY: iy, IZ: iz, J: j}
	if err := Validate(s); err != nil {
		return nil, err
	}
	if err := Validate(material); err != nil {
		return nil, err
	}
	return s, nil
}
