package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ssmde/internal/record"
)

var (
	convertFrom string
	convertTo   string
)

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "input JSONL with {value,a_raw,weights?,prev?} lines (required)")
	convertCmd.Flags().StringVar(&convertTo, "to", "", "output JSONL of stamped records (required)")
	convertCmd.MarkFlagRequired("from")
	convertCmd.MarkFlagRequired("to")
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Batch-convert a JSONL feed into a chained record stream",
	Long: "Reads one observation object per line, builds a stamped record per line,\n" +
		"and writes canonical JSON records. The stamp chain threads across the\n" +
		"whole file; a per-line prev field overrides the threaded digest.",
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	m, err := sessionManifest()
	if err != nil {
		return err
	}

	in, err := os.Open(convertFrom)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(convertTo)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	n, err := record.ConvertJSONL(in, out, m)
	if err != nil {
		return err
	}
	fmt.Printf("Converted %d records -> %s\n", n, convertTo)
	return nil
}
