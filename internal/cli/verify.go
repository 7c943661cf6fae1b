package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ssmde/internal/record"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <records.jsonl>",
	Short: "Verify the stamp chain of an emitted record stream",
	Long: "Walks a JSONL record stream, recomputes each content digest, and checks\n" +
		"that every stamp references the digest of its predecessor.\n" +
		"Exits 0 if the chain is intact, 1 if broken.",
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open records: %w", err)
	}
	defer f.Close()

	result := record.VerifyChain(f)
	if result.Valid {
		fmt.Printf("OK: %d records verified\n", result.Records)
		return nil
	}
	fmt.Fprintf(os.Stderr, "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	os.Exit(1)
	return nil
}
