// Package stamp produces the chained audit stamp attached to every record.
// A stamp binds a wall-clock timestamp, a derived clock angle, the SHA-256
// digest of the record's canonical content, and a reference to the digest
// of the previous stamp in the chain. It is an audit and freshness
// mechanism, not a security protocol: timestamps are wall-clock and the
// chain only proves textual linkage between stamp strings.
package stamp

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Tag is the fixed protocol tag leading every stamp string.
const Tag = "SSMCLOCK1"

// NoPrev is the sentinel written to the prev field when no valid previous
// digest was supplied. A previous digest is considered valid when it is at
// least minPrevLen characters.
const NoPrev = "NONE"

const minPrevLen = 8

// CanonicalJSON serializes v deterministically: object keys sorted, no
// insignificant whitespace. Identical logical content always produces
// identical bytes, which is what makes the content digest reproducible.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("stamp: marshal content: %w", err)
	}
	// Round-trip through any so maps re-marshal with sorted keys
	// regardless of how the caller structured the value.
	var norm any
	if err := json.Unmarshal(raw, &norm); err != nil {
		return nil, fmt.Errorf("stamp: normalize content: %w", err)
	}
	out, err := json.Marshal(norm)
	if err != nil {
		return nil, fmt.Errorf("stamp: remarshal content: %w", err)
	}
	return out, nil
}

// Theta maps a time of day onto a clock angle in degrees, rounded to two
// decimals. Purely a human-auditable freshness indicator.
func Theta(t time.Time) float64 {
	sod := t.Hour()*3600 + t.Minute()*60 + t.Second()
	return math.Round(float64(sod%86400)*360.0/86400.0*100) / 100
}

// Make builds a stamp for content at the current UTC time.
func Make(content any, prev string) (string, error) {
	return MakeAt(content, prev, time.Now())
}

// MakeAt builds a stamp for content at a fixed time. The time is converted
// to UTC and truncated to whole seconds.
func MakeAt(content any, prev string, t time.Time) (string, error) {
	canon, err := CanonicalJSON(content)
	if err != nil {
		return "", err
	}

	ts := t.UTC().Truncate(time.Second)
	digest := sha256.Sum256(canon)

	prevRef := NoPrev
	if len(prev) >= minPrevLen {
		prevRef = prev
	}

	return fmt.Sprintf("%s|%s|theta=%.2f|sha256=%s|prev=%s",
		Tag,
		ts.Format("2006-01-02T15:04:05Z"),
		Theta(ts),
		hex.EncodeToString(digest[:]),
		prevRef,
	), nil
}

// Digest returns the lowercase hex SHA-256 of a stamp string. The caller
// threads this value into the next Make call as prev; no chain state lives
// in this package.
func Digest(stampStr string) string {
	h := sha256.Sum256([]byte(stampStr))
	return hex.EncodeToString(h[:])
}
