package cli

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ssmde/internal/record"
	"ssmde/internal/stamp"
)

var (
	examplesOut   string
	examplesCount int
	examplesSeed  int64
)

func init() {
	rootCmd.AddCommand(examplesCmd)
	examplesCmd.Flags().StringVar(&examplesOut, "out", "", "output JSONL path (required)")
	examplesCmd.Flags().IntVar(&examplesCount, "count", 10, "number of example records")
	examplesCmd.Flags().Int64Var(&examplesSeed, "seed", 0, "RNG seed for reproducible examples (0 = nondeterministic)")
	examplesCmd.MarkFlagRequired("out")
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Generate a chained stream of example records",
	Long: "Writes synthetic records spanning several domains, each fused from a\n" +
		"jittered raw series and chained to its predecessor's stamp digest.",
	RunE: runExamples,
}

// examplePool is a rotation of plausible value payloads with target align
// levels; the raw series jitters around each target.
var examplePool = []struct {
	align float64
	value map[string]any
}{
	{-0.60, map[string]any{"temperature_K": 279.9, "a_phase": -0.62}},
	{-0.50, map[string]any{"V_rms": 253.7, "pf": 0.81, "stress_score": 0.72}},
	{-0.10, map[string]any{"cash_collected_usd": 18420.77}},
	{0.40, map[string]any{"model_score": 0.912, "uncertainty": 0.18}},
	{0.75, map[string]any{"spo2": 0.95, "hr_bpm": 78}},
	{-0.88, map[string]any{"strain_micro": 220.5, "temp_K": 315.3}},
	{0.60, map[string]any{"throughput_mbps": 512, "error_rate": 0.0012}},
	{-0.92, map[string]any{"power_kw": 42.3, "temp_K": 330.2}},
	{-0.15, map[string]any{"co2_ppm": 980, "voc_index": 0.22}},
	{-0.45, map[string]any{"wind_speed_ms": 18.4, "gust_ms": 26.9}},
}

func runExamples(cmd *cobra.Command, args []string) error {
	m, err := sessionManifest()
	if err != nil {
		return err
	}

	seed := examplesSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	f, err := os.Create(examplesOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	prev := ""
	for i := 0; i < examplesCount; i++ {
		t := examplePool[i%len(examplePool)]

		aRaw := make([]float64, 3)
		for j := range aRaw {
			v := t.align + rng.Float64()*0.06 - 0.03
			if v > 0.999999 {
				v = 0.999999
			}
			if v < -0.999999 {
				v = -0.999999
			}
			aRaw[j] = v
		}

		rec, err := record.Build(t.value, aRaw, m, nil, prev)
		if err != nil {
			return err
		}
		line, err := stamp.CanonicalJSON(rec)
		if err != nil {
			return err
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("write example: %w", err)
		}
		prev = rec.StampDigest()
	}

	fmt.Printf("Wrote %d examples: %s\n", examplesCount, examplesOut)
	return nil
}
