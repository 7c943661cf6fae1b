package cli

import (
	"github.com/spf13/cobra"

	"ssmde/internal/record"
)

var demoPretty bool

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().BoolVar(&demoPretty, "pretty", false, "pretty-print the records")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print three chained example records",
	Long: "Builds three records across different domains, chaining each stamp to\n" +
		"the digest of the previous one, and prints them as JSON.",
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	m, err := sessionManifest()
	if err != nil {
		return err
	}

	samples := []struct {
		value map[string]any
		aRaw  []float64
	}{
		{map[string]any{"temperature_K": 279.92, "a_phase": -0.62}, []float64{-0.60, -0.64, -0.62}},
		{map[string]any{"refund_amount_usd": 184.50, "model_score": 0.912, "stress_score": 0.35}, []float64{0.10, 0.05, 0.20}},
		{map[string]any{"V_rms": 253.7, "pf": 0.81, "stress_score": 0.72}, []float64{-0.55, -0.68, -0.75}},
	}

	prev := ""
	for _, s := range samples {
		rec, err := record.Build(s.value, s.aRaw, m, nil, prev)
		if err != nil {
			return err
		}
		if err := printRecord(rec, demoPretty); err != nil {
			return err
		}
		prev = rec.StampDigest()
	}
	return nil
}
