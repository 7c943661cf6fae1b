// Package cli wires the ssmde command surface. One file per command;
// commands register themselves on rootCmd in init().
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"ssmde/internal/manifest"
)

var manifestSource string

var rootCmd = &cobra.Command{
	Use:   "ssmde",
	Short: "Align-and-emit audit records from raw signed observations",
	Long: "Fuses bounded raw observations into a single align score, classifies it\n" +
		"into a policy band from the session manifest, and emits hash-chained,\n" +
		"content-addressed audit records.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&manifestSource, "manifest", "",
		"manifest as inline JSON or a path to a .json/.yaml file (default: built-in)")
}

// sessionManifest resolves the effective manifest from the --manifest flag.
func sessionManifest() (*manifest.Manifest, error) {
	if manifestSource == "" {
		return manifest.Default(), nil
	}
	return manifest.Load(manifestSource)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
