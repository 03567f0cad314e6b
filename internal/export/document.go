package export

// Vec3 is a vector serialized as [x, y, z].
type Vec3 [3]float64

// Document is the hand-off format exchanged with the analysis engine.
// Shared entities (materials, sections, supports, hinges, nodes) are listed
// once and referenced by name or id.
type Document struct {
	DocumentID string `json:"document_id" yaml:"document_id"`

	Materials     []MaterialDoc `json:"materials" yaml:"materials"`
	Sections      []SectionDoc  `json:"sections" yaml:"sections"`
	NodalSupports []SupportDoc  `json:"nodal_supports" yaml:"nodal_supports"`
	MemberHinges  []HingeDoc    `json:"member_hinges" yaml:"member_hinges"`
	Nodes         []NodeDoc     `json:"nodes" yaml:"nodes"`

	MemberSets        []MemberSetDoc        `json:"member_sets" yaml:"member_sets"`
	LoadCases         []LoadCaseDoc         `json:"load_cases" yaml:"load_cases"`
	LoadCombinations  []LoadCombinationDoc  `json:"load_combinations" yaml:"load_combinations"`
	ImperfectionCases []ImperfectionCaseDoc `json:"imperfection_cases" yaml:"imperfection_cases"`

	AnalysisOptions *OptionsDoc `json:"analysis_options,omitempty" yaml:"analysis_options,omitempty"`
	Results         *ResultsDoc `json:"results,omitempty" yaml:"results,omitempty"`
}

type MaterialDoc struct {
	Name           string  `json:"name" yaml:"name"`
	ElasticModulus float64 `json:"e_mod" yaml:"e_mod"`
	ShearModulus   float64 `json:"g_mod" yaml:"g_mod"`
	Density        float64 `json:"density" yaml:"density"`
	YieldStress    float64 `json:"yield_stress" yaml:"yield_stress"`
}

type SectionDoc struct {
	Name     string  `json:"name" yaml:"name"`
	Material string  `json:"material" yaml:"material"`
	Area     float64 `json:"area" yaml:"area"`
	IY       float64 `json:"i_y" yaml:"i_y"`
	IZ       float64 `json:"i_z" yaml:"i_z"`
	J        float64 `json:"j" yaml:"j"`
	H        float64 `json:"h,omitempty" yaml:"h,omitempty"`
	B        float64 `json:"b,omitempty" yaml:"b,omitempty"`
}

// ConditionDoc is a restraint. Stiffness is only written for springs.
type ConditionDoc struct {
	Kind      string  `json:"condition_type" yaml:"condition_type"`
	Stiffness float64 `json:"stiffness,omitempty" yaml:"stiffness,omitempty"`
}

type SupportDoc struct {
	ID           int                     `json:"id" yaml:"id"`
	Displacement map[string]ConditionDoc `json:"displacement_conditions" yaml:"displacement_conditions"`
	Rotation     map[string]ConditionDoc `json:"rotation_conditions" yaml:"rotation_conditions"`
}

type ReleaseDoc struct {
	Released  bool    `json:"released" yaml:"released"`
	Stiffness float64 `json:"stiffness,omitempty" yaml:"stiffness,omitempty"`
}

type HingeDoc struct {
	ID   int        `json:"id" yaml:"id"`
	Type string     `json:"hinge_type" yaml:"hinge_type"`
	Vx   ReleaseDoc `json:"vx" yaml:"vx"`
	Vy   ReleaseDoc `json:"vy" yaml:"vy"`
	Vz   ReleaseDoc `json:"vz" yaml:"vz"`
	Mx   ReleaseDoc `json:"mx" yaml:"mx"`
	My   ReleaseDoc `json:"my" yaml:"my"`
	Mz   ReleaseDoc `json:"mz" yaml:"mz"`
}

type NodeDoc struct {
	ID             int     `json:"id" yaml:"id"`
	X              float64 `json:"X" yaml:"X"`
	Y              float64 `json:"Y" yaml:"Y"`
	Z              float64 `json:"Z" yaml:"Z"`
	Support        *int    `json:"nodal_support,omitempty" yaml:"nodal_support,omitempty"`
	Classification string  `json:"classification,omitempty" yaml:"classification,omitempty"`
}

type MemberDoc struct {
	ID              int     `json:"id" yaml:"id"`
	StartNode       int     `json:"start_node" yaml:"start_node"`
	EndNode         int     `json:"end_node" yaml:"end_node"`
	Section         string  `json:"section" yaml:"section"`
	StartHinge      *int    `json:"start_hinge,omitempty" yaml:"start_hinge,omitempty"`
	EndHinge        *int    `json:"end_hinge,omitempty" yaml:"end_hinge,omitempty"`
	RotationAngle   float64 `json:"rotation_angle" yaml:"rotation_angle"`
	Chi             float64 `json:"chi" yaml:"chi"`
	ReferenceMember *int    `json:"reference_member,omitempty" yaml:"reference_member,omitempty"`
	ReferenceNode   *int    `json:"reference_node,omitempty" yaml:"reference_node,omitempty"`
	Classification  string  `json:"classification,omitempty" yaml:"classification,omitempty"`
}

type MemberSetDoc struct {
	ID             int         `json:"id" yaml:"id"`
	Classification string      `json:"classification,omitempty" yaml:"classification,omitempty"`
	LY             float64     `json:"l_y,omitempty" yaml:"l_y,omitempty"`
	LZ             float64     `json:"l_z,omitempty" yaml:"l_z,omitempty"`
	Members        []MemberDoc `json:"members" yaml:"members"`
}

type NodalLoadDoc struct {
	Node      int     `json:"node" yaml:"node"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
	Direction Vec3    `json:"direction" yaml:"direction,flow"`
}

type LineLoadDoc struct {
	Member    int     `json:"member" yaml:"member"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
	Direction Vec3    `json:"direction" yaml:"direction,flow"`
	StartFrac float64 `json:"start_frac" yaml:"start_frac"`
	EndFrac   float64 `json:"end_frac" yaml:"end_frac"`
}

type LoadCaseDoc struct {
	ID         int            `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	NodalLoads []NodalLoadDoc `json:"nodal_loads" yaml:"nodal_loads"`
	LineLoads  []LineLoadDoc  `json:"line_loads" yaml:"line_loads"`
}

type LoadCombinationDoc struct {
	ID        int             `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Factors   map[int]float64 `json:"load_cases_factors" yaml:"load_cases_factors"`
	Situation string          `json:"situation,omitempty" yaml:"situation,omitempty"`
	Check     string          `json:"check,omitempty" yaml:"check,omitempty"`
}

type TranslationImperfectionDoc struct {
	MemberSet int     `json:"member_set" yaml:"member_set"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
	Axis      Vec3    `json:"axis" yaml:"axis,flow"`
}

type ImperfectionCaseDoc struct {
	ID                       int                          `json:"id" yaml:"id"`
	LoadCombinations         []int                        `json:"load_combinations" yaml:"load_combinations,flow"`
	TranslationImperfections []TranslationImperfectionDoc `json:"translation_imperfections" yaml:"translation_imperfections"`
}

type OptionsDoc struct {
	Order          string  `json:"analysis_order" yaml:"analysis_order"`
	Solver         string  `json:"solver" yaml:"solver"`
	Tolerance      float64 `json:"tolerance" yaml:"tolerance"`
	MaxIterations  int     `json:"max_iterations" yaml:"max_iterations"`
	Dimensionality string  `json:"dimensionality" yaml:"dimensionality"`
}

// ResultsDoc is the engine output. Node results are keyed by node id.
type ResultsDoc struct {
	LoadCases        map[string]CaseResultDoc `json:"loadcases,omitempty" yaml:"loadcases,omitempty"`
	LoadCombinations map[string]CaseResultDoc `json:"loadcombinations,omitempty" yaml:"loadcombinations,omitempty"`
}

type CaseResultDoc struct {
	Name              string                `json:"name,omitempty" yaml:"name,omitempty"`
	DisplacementNodes map[int]NodeResultDoc `json:"displacement_nodes" yaml:"displacement_nodes"`
}

type NodeResultDoc struct {
	Dx float64 `json:"dx" yaml:"dx"`
	Dy float64 `json:"dy" yaml:"dy"`
	Dz float64 `json:"dz" yaml:"dz"`
	Rx float64 `json:"rx" yaml:"rx"`
	Ry float64 `json:"ry" yaml:"ry"`
	Rz float64 `json:"rz" yaml:"rz"`
}
