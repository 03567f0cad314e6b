package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gofers/internal/deflection"
	"github.com/alexiusacademia/gofers/internal/frames"
	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/alexiusacademia/gofers/internal/section"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beamShapes(t *testing.T) (*model.Model, []*deflection.Shape) {
	t.Helper()
	m := model.New()
	f := &frames.PortalFrame{Width: 6, Height: 4, Segments: 2}
	require.NoError(t, f.Build(m))

	res := &model.CaseResult{Name: "Dead", Nodes: map[int]model.NodeResult{}}
	for _, n := range m.AllNodes() {
		res.Nodes[n.ID] = model.NodeResult{Displacement: geometry.Vec{Z: -0.001 * n.X}}
	}
	shapes, err := deflection.ForMemberSet(f.Beam, res, 5)
	require.NoError(t, err)
	return m, shapes
}

func TestProject(t *testing.T) {
	v := geometry.Vec{X: 1, Y: 2, Z: 3}
	for plane, want := range map[string][2]float64{"xy": {1, 2}, "xz": {1, 3}, "yz": {2, 3}, "": {1, 3}} {
		x, y, err := Project(v, plane)
		require.NoError(t, err)
		assert.Equal(t, want, [2]float64{x, y}, plane)
	}
	_, _, err := Project(v, "zz")
	assert.Error(t, err)
}

func TestDeflectionSeries_SharedStations(t *testing.T) {
	_, shapes := beamShapes(t)
	require.Len(t, shapes, 2)

	y, z := DeflectionSeries(shapes, 1000)
	assert.Len(t, y, 9, "two members of 5 stations share one")
	assert.Len(t, z, 9)
	for _, v := range y {
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestDrawDeflectionChart(t *testing.T) {
	_, shapes := beamShapes(t)
	out := DrawDeflectionChart("beam / Dead", shapes, 6)
	assert.Contains(t, out, "beam / Dead")
	assert.Contains(t, out, "[mm]")

	assert.Empty(t, DrawDeflectionChart("none", nil, 6))
}

func TestDrawSummaryBox(t *testing.T) {
	content := []string{"Members: 5", "Nodes: 6"}
	out := DrawSummaryBox("MODEL", content)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// borders, title and separator around the content lines
	require.Len(t, lines, len(content)+4)
	assert.Contains(t, lines[1], "MODEL")
	assert.Contains(t, lines[3], "Members: 5")
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
	assert.Contains(t, out, "Members: 5")
}

func TestExportModelDiagram(t *testing.T) {
	m, shapes := beamShapes(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "out", "model.png")
	require.NoError(t, ExportModelDiagram(m, shapes, 100, Options{Plane: "xz"}, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	require.NoError(t, ExportModelDiagram(m, nil, 1, Options{Plane: "xy", WidthIn: 4, HeightIn: 3}, filepath.Join(dir, "plan")))
	_, err = os.Stat(filepath.Join(dir, "plan.png"))
	assert.NoError(t, err)

	assert.Error(t, ExportModelDiagram(m, nil, 1, Options{Plane: "ab"}, filepath.Join(dir, "bad.png")))
}

func TestExportSectionDiagram(t *testing.T) {
	s := &section.Section{Name: "R", Fc: 28, Vertices: []section.Point{{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 500}, {X: 0, Y: 500}}}
	path := filepath.Join(t.TempDir(), "section.svg")
	require.NoError(t, ExportSectionDiagram(s, path))
	_, err := os.Stat(path)
	assert.NoError(t, err)

	assert.Error(t, ExportSectionDiagram(&section.Section{Name: "empty"}, path))
}
