package section

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectangle(b, h float64) *Section {
	return &Section{
		Name:     "R",
		Fc:       28,
		Vertices: []Point{{0, 0}, {b, 0}, {b, h}, {0, h}},
	}
}

func TestCalculateProperties_Rectangle(t *testing.T) {
	props := rectangle(300, 500).CalculateProperties()

	assert.InDelta(t, 150000, props.Area, 1e-6)
	assert.InDelta(t, 150, props.CentroidX, 1e-9)
	assert.InDelta(t, 250, props.CentroidY, 1e-9)
	assert.Equal(t, 300.0, props.Width)
	assert.Equal(t, 500.0, props.Height)
	assert.InDelta(t, 300*500*500*500/12.0, props.IY, 1)
	assert.InDelta(t, 500*300*300*300/12.0, props.IZ, 1)
	assert.Greater(t, props.J, 0.0)
}

func TestCalculateProperties_OrientationIndependent(t *testing.T) {
	ccw := rectangle(200, 400)
	cw := rectangle(200, 400)
	cw.Vertices = []Point{{0, 0}, {0, 400}, {200, 400}, {200, 0}}

	a, b := ccw.CalculateProperties(), cw.CalculateProperties()
	assert.InDelta(t, a.Area, b.Area, 1e-9)
	assert.InDelta(t, a.CentroidY, b.CentroidY, 1e-9)
	assert.InDelta(t, a.IY, b.IY, 1e-3)
	assert.InDelta(t, a.IZ, b.IZ, 1e-3)
}

func TestCalculateProperties_TSection(t *testing.T) {
	// 600 x 100 flange on a 200 x 400 web
	s := &Section{Name: "T", Fc: 21, Vertices: []Point{
		{200, 0}, {400, 0}, {400, 400}, {600, 400}, {600, 500},
		{0, 500}, {0, 400}, {200, 400},
	}}
	props := s.CalculateProperties()

	// A = 80000 + 60000, ȳ = (80000*200 + 60000*450) / 140000
	assert.InDelta(t, 140000, props.Area, 1e-6)
	cy := (80000*200.0 + 60000*450.0) / 140000
	assert.InDelta(t, cy, props.CentroidY, 1e-9)
	iy := 200*400*400*400/12.0 + 80000*(200-cy)*(200-cy) +
		600*100*100*100/12.0 + 60000*(450-cy)*(450-cy)
	assert.InDelta(t, iy, props.IY, 1)

	assert.InDelta(t, 600, s.WidthAtDepth(50), 1e-9)
	assert.InDelta(t, 200, s.WidthAtDepth(300), 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(s *Section)
	}{
		{"no name", func(s *Section) { s.Name = "" }},
		{"two vertices", func(s *Section) { s.Vertices = s.Vertices[:2] }},
		{"no material", func(s *Section) { s.Fc = 0 }},
		{"two materials", func(s *Section) { s.Fy = 415 }},
		{"collinear", func(s *Section) { s.Vertices = []Point{{0, 0}, {1, 1}, {2, 2}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := rectangle(300, 500)
			tt.edit(s)
			var verr *ValidationError
			assert.ErrorAs(t, s.Validate(), &verr)
		})
	}
	assert.NoError(t, rectangle(300, 500).Validate())
}

func TestToModelSection(t *testing.T) {
	s := rectangle(300, 500)
	ms, err := s.ToModelSection()
	require.NoError(t, err)

	assert.Equal(t, "R", ms.Name)
	assert.InDelta(t, 0.15, ms.Area, 1e-12)
	assert.InDelta(t, 0.3*0.5*0.5*0.5/12, ms.IY, 1e-12)
	assert.InDelta(t, 0.5, ms.H, 1e-12)
	assert.InDelta(t, 0.3, ms.B, 1e-12)
	assert.Equal(t, "Concrete fc=28", ms.Material.Name)

	s.Fc, s.Fy = 0, 248
	ms, err = s.ToModelSection()
	require.NoError(t, err)
	assert.Equal(t, 200e9, ms.Material.ElasticModulus)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"name": "C300x500",
		"fc": 28,
		"vertices": [{"x": 0, "y": 0}, {"x": 300, "y": 0}, {"x": 300, "y": 500}, {"x": 0, "y": 500}]
	}`), 0o644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "C300x500", s.Name)
	assert.Len(t, s.Vertices, 4)

	require.NoError(t, os.WriteFile(path, []byte(`{"name": "bad", "fc": 28, "vertices": []}`), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}
