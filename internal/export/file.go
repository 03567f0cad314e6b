package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gofers/internal/model"
	"gopkg.in/yaml.v3"
)

// Format selects the document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown document format %q", s)
}

// FormatFor picks the format from the file extension, falling back to def.
func FormatFor(path string, def Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	}
	return def
}

// Encode writes doc to w.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return fmt.Errorf("unknown document format %q", format)
}

// Decode reads a document from r.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
	case JSON, "":
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
	return &doc, nil
}

// SaveFile exports m to path. The format follows the extension, then def.
func SaveFile(path string, m *model.Model, def Format) (*Document, error) {
	doc, err := FromModel(m)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := Encode(f, doc, FormatFor(path, def)); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return doc, f.Close()
}

// LoadFile reads a document from path and rebuilds its model.
func LoadFile(path string) (*model.Model, *Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	doc, err := Decode(f, FormatFor(path, JSON))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := ToModel(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, doc, nil
}

// LoadResultsFile reads an engine result file and attaches it to m.
// The file holds either a bare results object or a full document.
func LoadResultsFile(path string, m *model.Model) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rd, err := decodeResults(data, FormatFor(path, JSON))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	m.Results = ResultsFromDoc(rd)
	return nil
}

func decodeResults(data []byte, format Format) (*ResultsDoc, error) {
	unmarshal := json.Unmarshal
	if format == YAML {
		unmarshal = yaml.Unmarshal
	}
	var wrapped struct {
		Results *ResultsDoc `json:"results" yaml:"results"`
	}
	if err := unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Results != nil {
		return wrapped.Results, nil
	}
	var rd ResultsDoc
	if err := unmarshal(data, &rd); err != nil {
		return nil, err
	}
	if rd.LoadCases == nil && rd.LoadCombinations == nil {
		return nil, model.ErrResultsNotFound
	}
	return &rd, nil
}
