package model

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var wordToken = regexp.MustCompile(`^\w+$`)

// MemberSetsByClassification filters member sets by classification. A plain
// word is matched as a substring; anything else is compiled as a regular
// expression and searched for.
func (m *Model) MemberSetsByClassification(pattern string) ([]*MemberSet, error) {
	var match func(string) bool
	if wordToken.MatchString(pattern) {
		match = func(c string) bool { return strings.Contains(c, pattern) }
	} else {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("classification pattern %q: %w", pattern, err)
		}
		match = re.MatchString
	}

	var out []*MemberSet
	for _, set := range m.MemberSets {
		if match(set.Classification) {
			out = append(out, set)
		}
	}
	return out, nil
}

// UniqueMaterials returns the materials in use, keyed by name, first-seen order.
func (m *Model) UniqueMaterials() []*Material {
	seen := make(map[string]bool)
	var out []*Material
	for _, mem := range m.AllMembers() {
		if mem.Section == nil {
			continue
		}
		mat := mem.Section.Material
		if mat == nil || seen[mat.Name] {
			continue
		}
		seen[mat.Name] = true
		out = append(out, mat)
	}
	return out
}

// UniqueSections returns the sections in use, keyed by name, first-seen order.
func (m *Model) UniqueSections() []*Section {
	seen := make(map[string]bool)
	var out []*Section
	for _, mem := range m.AllMembers() {
		if seen[mem.Section.Name] {
			continue
		}
		seen[mem.Section.Name] = true
		out = append(out, mem.Section)
	}
	return out
}

// UniqueMaterialNames lists material names once each.
func (m *Model) UniqueMaterialNames() []string {
	var names []string
	for _, mat := range m.UniqueMaterials() {
		names = append(names, mat.Name)
	}
	return names
}

// UniqueSectionNames lists section names once each.
func (m *Model) UniqueSectionNames() []string {
	var names []string
	for _, s := range m.UniqueSections() {
		names = append(names, s.Name)
	}
	return names
}

// UniqueNodalSupports returns the supports in use, keyed by id, first-seen order.
func (m *Model) UniqueNodalSupports() []*NodalSupport {
	seen := make(map[int]bool)
	var out []*NodalSupport
	for _, n := range m.AllNodes() {
		if n.Support == nil || seen[n.Support.ID] {
			continue
		}
		seen[n.Support.ID] = true
		out = append(out, n.Support)
	}
	return out
}

// SupportDetail lists the nodes sharing one support.
type SupportDetail struct {
	Support *NodalSupport
	NodeIDs []int
}

// NodalSupportDetails groups node ids by support.
func (m *Model) NodalSupportDetails() []SupportDetail {
	index := make(map[int]int)
	var out []SupportDetail
	for _, n := range m.AllNodes() {
		if n.Support == nil {
			continue
		}
		i, ok := index[n.Support.ID]
		if !ok {
			i = len(out)
			index[n.Support.ID] = i
			out = append(out, SupportDetail{Support: n.Support})
		}
		out[i].NodeIDs = append(out[i].NodeIDs, n.ID)
	}
	return out
}

// UniqueMemberHinges returns the hinges in use, keyed by id, first-seen order.
func (m *Model) UniqueMemberHinges() []*MemberHinge {
	seen := make(map[int]bool)
	var out []*MemberHinge
	for _, mem := range m.AllMembers() {
		for _, h := range []*MemberHinge{mem.StartHinge, mem.EndHinge} {
			if h == nil || seen[h.ID] {
				continue
			}
			seen[h.ID] = true
			out = append(out, h)
		}
	}
	return out
}

// LoadCombinationSituations returns the situation of every combination, in order.
func (m *Model) LoadCombinationSituations() []string {
	out := make([]string, 0, len(m.LoadCombinations))
	for _, lc := range m.LoadCombinations {
		out = append(out, lc.Situation)
	}
	return out
}

// UniqueSituations returns the non-empty situations once each.
func (m *Model) UniqueSituations() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range m.LoadCombinationSituations() {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// LoadCaseByName returns the first load case called name.
func (m *Model) LoadCaseByName(name string) (*LoadCase, bool) {
	for _, lc := range m.LoadCases {
		if lc.Name == name {
			return lc, true
		}
	}
	return nil, false
}

// LoadCombinationByName returns the first load combination called name.
func (m *Model) LoadCombinationByName(name string) (*LoadCombination, bool) {
	for _, lc := range m.LoadCombinations {
		if lc.Name == name {
			return lc, true
		}
	}
	return nil, false
}

// LoadCombinationByID returns the load combination with id.
func (m *Model) LoadCombinationByID(id int) (*LoadCombination, bool) {
	for _, lc := range m.LoadCombinations {
		if lc.ID == id {
			return lc, true
		}
	}
	return nil, false
}

// IndexedMaterial is a material entry of an external program's material table.
type IndexedMaterial struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// SectionMaterial is a section/material pair resolved against an external index.
type SectionMaterial struct {
	Section       string
	Material      string
	MaterialIndex int
}

// SectionMaterialCombinations resolves the section/material pairs of the model
// against an external material table. Materials without an entry are logged,
// collected in unmatched and skipped. Sections without a material are
// skipped, as in UniqueMaterials.
func (m *Model) SectionMaterialCombinations(index []IndexedMaterial, logger *zap.Logger) (combos []SectionMaterial, unmatched []string) {
	if logger == nil {
		logger = zap.NewNop()
	}
	byName := make(map[string]int, len(index))
	for _, im := range index {
		byName[im.Name] = im.Index
	}

	seen := make(map[SectionMaterial]bool)
	missing := make(map[string]bool)
	for _, mem := range m.AllMembers() {
		if mem.Section == nil || mem.Section.Material == nil {
			continue
		}
		matName := mem.Section.Material.Name
		idx, ok := byName[matName]
		if !ok {
			if !missing[matName] {
				missing[matName] = true
				unmatched = append(unmatched, matName)
				logger.Warn("no external material index for material",
					zap.String("material", matName),
					zap.String("section", mem.Section.Name),
				)
			}
			continue
		}
		c := SectionMaterial{Section: mem.Section.Name, Material: matName, MaterialIndex: idx}
		if !seen[c] {
			seen[c] = true
			combos = append(combos, c)
		}
	}
	return combos, unmatched
}

// Summary lists the member set ids and the load case and combination names.
type Summary struct {
	MemberSets       []int
	LoadCases        []string
	LoadCombinations []string
}

// Summary returns an overview of the model contents.
func (m *Model) Summary() Summary {
	s := Summary{}
	for _, set := range m.MemberSets {
		s.MemberSets = append(s.MemberSets, set.ID)
	}
	for _, lc := range m.LoadCases {
		s.LoadCases = append(s.LoadCases, lc.Name)
	}
	for _, lc := range m.LoadCombinations {
		s.LoadCombinations = append(s.LoadCombinations, lc.Name)
	}
	return s
}
