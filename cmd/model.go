package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/export"
	"github.com/alexiusacademia/gofers/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect and transform model documents",
	Long: `Inspect and transform frame model documents.

A model document is the JSON or YAML file exchanged with the analysis
engine. The format is chosen by the file extension (.json, .yaml, .yml).

Subcommands:
  summary    - Counts, materials, sections, supports, hinges and loads
  query      - Member sets by classification
  translate  - Move the whole model by a vector
  replicate  - Repeat the model along a spacing vector
  combos     - Add NSCP 2015 load combinations

Example:
  fers example portal -o portal.json
  fers model summary -f portal.json`,
}

func init() {
	rootCmd.AddCommand(modelCmd)
}

func loadModel(path string) (*model.Model, error) {
	m, doc, err := export.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("model loaded",
		zap.String("file", path),
		zap.String("document_id", doc.DocumentID),
		zap.Int("members", m.NumberOfElements()),
		zap.Int("nodes", m.NumberOfNodes()),
	)
	return m, nil
}

func saveModel(path string, m *model.Model) error {
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		return err
	}
	doc, err := export.SaveFile(path, m, format)
	if err != nil {
		return err
	}
	logger.Info("model written",
		zap.String("file", path),
		zap.String("document_id", doc.DocumentID),
	)
	fmt.Printf("Model written to: %s\n", path)
	return nil
}
