// ssmde — align-and-emit audit tool.
// Fuses raw signed observations into a bounded align score, classifies it
// into a manifest band, and emits hash-chained audit records.
package main

import "ssmde/internal/cli"

func main() {
	cli.Execute()
}
