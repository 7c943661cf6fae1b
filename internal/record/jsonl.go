package record

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"ssmde/internal/manifest"
	"ssmde/internal/stamp"
)

// inputLine is one line of batch input.
type inputLine struct {
	Value   map[string]any `json:"value"`
	ARaw    []float64      `json:"a_raw"`
	Weights []float64      `json:"weights"`
	Prev    string         `json:"prev"`
}

// ConvertJSONL reads input lines ({"value":{...},"a_raw":[...],"prev":?}),
// builds a record per line, and writes canonical JSON records one per
// line. The chain digest threads from each produced record into the next;
// an explicit per-line prev overrides the threaded value. Returns the
// number of records written. Malformed lines fail fast with the line
// number.
func ConvertJSONL(r io.Reader, w io.Writer, m *manifest.Manifest) (int, error) {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)

	lineNum := 0
	count := 0
	chainPrev := ""

	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var in inputLine
		if err := json.Unmarshal(line, &in); err != nil {
			return count, fmt.Errorf("record: line %d: parse: %w", lineNum, err)
		}
		if in.Value == nil {
			return count, fmt.Errorf("record: line %d: value object is required", lineNum)
		}
		if len(in.ARaw) == 0 {
			return count, fmt.Errorf("record: line %d: a_raw must have at least one element", lineNum)
		}

		prev := chainPrev
		if in.Prev != "" {
			prev = in.Prev
		}

		rec, err := Build(in.Value, in.ARaw, m, in.Weights, prev)
		if err != nil {
			return count, fmt.Errorf("record: line %d: %w", lineNum, err)
		}

		encoded, err := stamp.CanonicalJSON(rec)
		if err != nil {
			return count, fmt.Errorf("record: line %d: encode: %w", lineNum, err)
		}
		if _, err := out.Write(append(encoded, '\n')); err != nil {
			return count, fmt.Errorf("record: line %d: write: %w", lineNum, err)
		}

		chainPrev = rec.StampDigest()
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("record: scan input: %w", err)
	}
	if err := out.Flush(); err != nil {
		return count, fmt.Errorf("record: flush output: %w", err)
	}
	return count, nil
}

// ChainResult holds the outcome of verifying a stream of emitted records.
type ChainResult struct {
	Valid     bool   `json:"valid"`
	Records   int    `json:"records"`
	Error     string `json:"error,omitempty"`
	ErrorLine int    `json:"error_line,omitempty"`
}

// VerifyChain walks a JSONL stream of records and validates each stamp's
// grammar, recomputes the content digest, and checks that every record
// after the first references the digest of its predecessor's stamp. The
// first record may carry NONE or an external digest; either is a valid
// chain head.
func VerifyChain(r io.Reader) ChainResult {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	count := 0
	prevDigest := ""

	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return ChainResult{Error: fmt.Sprintf("parse error: %v", err), ErrorLine: lineNum}
		}

		parsed, err := stamp.Parse(rec.Stamp)
		if err != nil {
			return ChainResult{Error: fmt.Sprintf("bad stamp: %v", err), ErrorLine: lineNum}
		}

		canon, err := rec.ContentDigestInput()
		if err != nil {
			return ChainResult{Error: fmt.Sprintf("canonicalize: %v", err), ErrorLine: lineNum}
		}
		h := sha256.Sum256(canon)
		if parsed.Digest != hex.EncodeToString(h[:]) {
			return ChainResult{
				Error:     fmt.Sprintf("content digest mismatch: stamp carries %s", parsed.Digest),
				ErrorLine: lineNum,
			}
		}

		if count > 0 && parsed.Prev != prevDigest {
			return ChainResult{
				Error:     fmt.Sprintf("chain break: prev=%s, expected digest of preceding stamp %s", parsed.Prev, prevDigest),
				ErrorLine: lineNum,
			}
		}

		prevDigest = stamp.Digest(rec.Stamp)
		count++
	}
	if err := scanner.Err(); err != nil {
		return ChainResult{Error: fmt.Sprintf("scan: %v", err)}
	}

	return ChainResult{Valid: true, Records: count}
}
