package frames

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/geometry"
	"github.com/alexiusacademia/gofers/internal/model"
)

// PortalFrame is a single-bay steel portal in the X-Z plane: two fixed
// columns, a beam across their heads and a diagonal brace. Columns and beam
// are split into Segments members so the model has intermediate nodes.
type PortalFrame struct {
	Width    float64
	Height   float64
	Segments int

	ColumnSection *model.Section
	BeamSection   *model.Section

	DeadLoad float64 // line load on the beam, acting in -Z
	WindLoad float64 // nodal load at the left column head, acting in +X

	LeftColumn  *model.MemberSet
	RightColumn *model.MemberSet
	Beam        *model.MemberSet
	Brace       *model.MemberSet

	Dead *model.LoadCase
	Wind *model.LoadCase

	m *model.Model
}

// Model returns the model built by Build.
func (f *PortalFrame) Model() *model.Model {
	return f.m
}

// Build creates the portal in m, adds its member sets and load cases.
func (f *PortalFrame) Build(m *model.Model) error {
	if f.Width <= 0 || f.Height <= 0 {
		return &model.ValidationError{Field: "PortalFrame", Msg: fmt.Sprintf("invalid size %.3f x %.3f", f.Width, f.Height)}
	}
	if f.Segments < 1 {
		f.Segments = 1
	}
	if f.ColumnSection == nil || f.BeamSection == nil {
		col, beam, err := DefaultSections()
		if err != nil {
			return err
		}
		if f.ColumnSection == nil {
			f.ColumnSection = col
		}
		if f.BeamSection == nil {
			f.BeamSection = beam
		}
	}
	f.m = m

	support := m.NewFixedSupport()
	hinge := m.NewMemberHinge("pinned")
	hinge.My = model.Release{Released: true}
	hinge.Mz = model.Release{Released: true}

	leftBase := m.NewNode(0, 0, 0)
	rightBase := m.NewNode(f.Width, 0, 0)
	leftBase.Support = support
	rightBase.Support = support
	leftBase.Classification = "base"
	rightBase.Classification = "base"
	leftHead := m.NewNode(0, 0, f.Height)
	rightHead := m.NewNode(f.Width, 0, f.Height)

	var err error
	f.LeftColumn, err = m.CreateMemberSet(leftBase, leftHead, f.ColumnSection,
		f.between(m, leftBase, leftHead), model.MemberSetOptions{Classification: "column_left", LY: f.Height, LZ: f.Height})
	if err != nil {
		return fmt.Errorf("left column: %w", err)
	}
	f.RightColumn, err = m.CreateMemberSet(rightBase, rightHead, f.ColumnSection,
		f.between(m, rightBase, rightHead), model.MemberSetOptions{Classification: "column_right", LY: f.Height, LZ: f.Height})
	if err != nil {
		return fmt.Errorf("right column: %w", err)
	}
	f.Beam, err = m.CreateMemberSet(leftHead, rightHead, f.BeamSection,
		f.between(m, leftHead, rightHead), model.MemberSetOptions{
			Classification:  "beam",
			ReferenceMember: f.LeftColumn.Members[0],
			LY:              f.Width,
			LZ:              f.Width,
		})
	if err != nil {
		return fmt.Errorf("beam: %w", err)
	}

	brace, err := m.NewMember(leftBase, rightHead, f.ColumnSection)
	if err != nil {
		return fmt.Errorf("brace: %w", err)
	}
	brace.Classification = "brace"
	brace.StartHinge = hinge
	brace.EndHinge = hinge
	brace.ReferenceNode = leftHead
	f.Brace = m.NewMemberSet("brace", brace)

	m.AddMemberSet(f.LeftColumn, f.RightColumn, f.Beam, f.Brace)

	f.Dead = m.CreateLoadCase("Dead")
	if f.DeadLoad != 0 {
		for _, mem := range f.Beam.Members {
			if _, err := f.Dead.AddLineLoad(mem, f.DeadLoad, geometry.Vec{Z: -1}); err != nil {
				return err
			}
		}
	}
	f.Wind = m.CreateLoadCase("Wind")
	if f.WindLoad != 0 {
		if _, err := f.Wind.AddNodalLoad(leftHead, f.WindLoad, geometry.Vec{X: 1}); err != nil {
			return err
		}
	}
	return nil
}

// between creates the Segments-1 evenly spaced nodes strictly between a and b.
func (f *PortalFrame) between(m *model.Model, a, b *model.Node) []*model.Node {
	var nodes []*model.Node
	for i := 1; i < f.Segments; i++ {
		t := float64(i) / float64(f.Segments)
		nodes = append(nodes, m.NewNode(
			a.X+(b.X-a.X)*t,
			a.Y+(b.Y-a.Y)*t,
			a.Z+(b.Z-a.Z)*t,
		))
	}
	return nodes
}

// DefaultSections returns an HEB 200 column and an IPE 300 beam in S235 steel (SI units).
func DefaultSections() (column, beam *model.Section, err error) {
	steel, err := model.NewMaterial("S235", 210e9, 81e9, 7850, 235e6)
	if err != nil {
		return nil, nil, err
	}
	column, err = model.NewSection("HEB200", steel, 78.1e-4, 2003e-8, 5696e-8, 59.3e-8)
	if err != nil {
		return nil, nil, err
	}
	beam, err = model.NewSection("IPE300", steel, 53.8e-4, 604e-8, 8356e-8, 20.1e-8)
	if err != nil {
		return nil, nil, err
	}
	column.H, column.B = 0.2, 0.2
	beam.H, beam.B = 0.3, 0.15
	return column, beam, nil
}
