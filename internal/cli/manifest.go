package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ssmde/internal/manifest"
)

var manifestDumpOut string

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.AddCommand(manifestValidateCmd)
	manifestCmd.AddCommand(manifestDumpCmd)
	manifestCmd.AddCommand(manifestCardCmd)
	manifestCmd.AddCommand(manifestInitCmd)
	manifestDumpCmd.Flags().StringVar(&manifestDumpOut, "out", "", "write normalized manifest to this path (default: stdout)")
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Manifest operations",
	Long:  "Commands for validating, inspecting, and generating band manifests.",
}

var manifestValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the session manifest",
	Long: "Checks the band set for structural failures (out-of-range or overlapping\n" +
		"intervals) and advisory issues (gaps, ordering, unusual epsilons).\n" +
		"Exits 0 on pass, 1 on fail; warnings alone do not fail.",
	RunE: runManifestValidate,
}

var manifestDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the effective manifest as normalized JSON",
	RunE:  runManifestDump,
}

var manifestCardCmd = &cobra.Command{
	Use:   "card",
	Short: "Print a compact band table for the effective manifest",
	RunE:  runManifestCard,
}

var manifestInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a self-describing manifest template",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifestInit,
}

func runManifestValidate(cmd *cobra.Command, args []string) error {
	m, err := sessionManifest()
	if err != nil {
		return err
	}

	r := manifest.Validate(m)
	if r.Valid {
		fmt.Println("MANIFEST VALIDATION: PASS")
	} else {
		fmt.Println("MANIFEST VALIDATION: FAIL")
	}
	for _, msg := range r.Messages {
		fmt.Printf("- [%s] %s\n", msg.Level, msg.Text)
	}
	if !r.Valid {
		os.Exit(1)
	}
	return nil
}

func runManifestDump(cmd *cobra.Command, args []string) error {
	m, err := sessionManifest()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(m.Dump(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	out = append(out, '\n')

	if manifestDumpOut == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(manifestDumpOut, out, 0600); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	fmt.Printf("Wrote effective manifest: %s\n", manifestDumpOut)
	return nil
}

func runManifestCard(cmd *cobra.Command, args []string) error {
	m, err := sessionManifest()
	if err != nil {
		return err
	}

	fmt.Println("Band card — effective manifest")
	fmt.Printf("manifest_id: %s\n", m.ID)
	fmt.Printf("eps_a: %v, eps_w: %v\n", m.EpsA, m.EpsW)
	for _, b := range m.Bands {
		open := "("
		if b.IncludesLower {
			open = "["
		}
		fmt.Printf("- %s: %s%v, %v]\n", b.Name, open, b.Lo, b.Hi)
	}
	return nil
}

func runManifestInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing file: %s", path)
	}
	if err := os.WriteFile(path, []byte(manifest.TemplateJSON()), 0600); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	fmt.Printf("Wrote manifest template: %s\n", path)
	return nil
}
