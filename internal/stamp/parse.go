package stamp

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Stamp is a parsed stamp string.
type Stamp struct {
	Timestamp time.Time
	Theta     float64
	Digest    string // content digest, lowercase hex
	Prev      string // previous stamp digest, or NoPrev
}

var stampRE = regexp.MustCompile(
	`^` + Tag + `\|` +
		`(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z)\|` +
		`theta=(\d+\.\d{2})\|` +
		`sha256=([0-9a-f]{64})\|` +
		`prev=([0-9a-f]{64}|` + NoPrev + `)$`)

// Parse validates a stamp string against the fixed grammar and extracts
// its fields.
func Parse(s string) (Stamp, error) {
	m := stampRE.FindStringSubmatch(s)
	if m == nil {
		return Stamp{}, fmt.Errorf("stamp: malformed stamp string: %q", s)
	}

	ts, err := time.Parse("2006-01-02T15:04:05Z", m[1])
	if err != nil {
		return Stamp{}, fmt.Errorf("stamp: bad timestamp: %w", err)
	}
	theta, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Stamp{}, fmt.Errorf("stamp: bad theta: %w", err)
	}

	return Stamp{Timestamp: ts, Theta: theta, Digest: m[3], Prev: m[4]}, nil
}
