package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ssmde/internal/record"
	"ssmde/internal/stamp"
)

var (
	buildValue   string
	buildARaw    string
	buildWeights string
	buildPrev    string
	buildPretty  bool
)

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildValue, "value", "", `JSON object for the value payload (e.g. '{"temperature_K":279.92}')`)
	buildCmd.Flags().StringVar(&buildARaw, "a-raw", "", `JSON array of raw observations (e.g. "[-0.6,-0.64,-0.62]")`)
	buildCmd.Flags().StringVar(&buildWeights, "weights", "", "optional JSON array of weights, same length as a-raw")
	buildCmd.Flags().StringVar(&buildPrev, "prev", "", "previous stamp digest (hex) to chain from")
	buildCmd.Flags().BoolVar(&buildPretty, "pretty", false, "pretty-print the record")
	buildCmd.MarkFlagRequired("value")
	buildCmd.MarkFlagRequired("a-raw")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a single stamped record",
	Long: "Fuses the raw series, classifies the align score against the session\n" +
		"manifest, and prints the stamped record. Pass --prev to continue an\n" +
		"existing chain; hash the printed stamp to obtain the next prev digest.",
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	m, err := sessionManifest()
	if err != nil {
		return err
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(buildValue), &value); err != nil {
		return fmt.Errorf("--value must be a JSON object: %w", err)
	}
	var series []float64
	if err := json.Unmarshal([]byte(buildARaw), &series); err != nil {
		return fmt.Errorf("--a-raw must be a JSON array of numbers: %w", err)
	}
	var weights []float64
	if buildWeights != "" {
		if err := json.Unmarshal([]byte(buildWeights), &weights); err != nil {
			return fmt.Errorf("--weights must be a JSON array of numbers: %w", err)
		}
	}

	rec, err := record.Build(value, series, m, weights, buildPrev)
	if err != nil {
		return err
	}

	return printRecord(rec, buildPretty)
}

func printRecord(rec *record.Record, pretty bool) error {
	if pretty {
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	out, err := stamp.CanonicalJSON(rec)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
