package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofers/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fers",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fers %s\n", version.String())
		fmt.Println("Frame Element Model Builder")
		fmt.Printf("Built: %s\n", version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
