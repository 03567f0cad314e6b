package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gofers/internal/config"
	"github.com/alexiusacademia/gofers/internal/logging"
	"github.com/alexiusacademia/gofers/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fers",
	Short: "Frame structure model builder",
	Long: `fers - Frame Element Model Builder

A CLI tool for building 3D frame models for an external analysis engine
and for post-processing its results.

This tool helps structural engineers:
  - Build member sets, supports, hinges, load cases and combinations
  - Translate and replicate frame patterns
  - Query models by classification
  - Reconstruct deflected member shapes from nodal results
  - Compute polygon section properties

Load combinations follow NSCP 2015 (Volume 1) Section 203.3.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		l, err := logging.New(loaded.LogLevel, loaded.Environment)
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		logger.Debug("configuration loaded", zap.Strings("sources", cfg.Sources))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   fers v%-50s║\n", version.Version)
		fmt.Println("  ║   Frame Element Model Builder                             ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for building frame models for an analysis engine")
		fmt.Println("  and reconstructing member deflections from its results.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Frame model documents in JSON and YAML")
		fmt.Println("    • Translation and pattern replication of frames")
		fmt.Println("    • NSCP 2015 load combinations")
		fmt.Println("    • Deflected shapes by cubic Hermite interpolation")
		fmt.Println("    • Polygon section properties")
		fmt.Println()
		fmt.Println("  Use 'fers --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file (default $"+config.EnvConfig+")")
}
