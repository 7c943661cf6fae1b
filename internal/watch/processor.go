package watch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ssmde/internal/manifest"
	"ssmde/internal/record"
)

// Report is the sidecar written next to each converted job.
type Report struct {
	RunID      string    `json:"run_id"`
	Job        string    `json:"job"`
	ManifestID string    `json:"manifest_id"`
	Records    int       `json:"records"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Error      string    `json:"error,omitempty"`
}

// Processor converts inbox job files into outbox record files. Safe for
// concurrent use: each job owns its files and the manifest is read-only.
type Processor struct {
	Outbox   string
	Done     string
	Manifest *manifest.Manifest
}

// NewProcessor creates a processor writing into outbox and archiving
// finished jobs into done.
func NewProcessor(outbox, done string, m *manifest.Manifest) *Processor {
	return &Processor{Outbox: outbox, Done: done, Manifest: m}
}

// Process converts one job file. The record file and sidecar report are
// written atomically (tmp+rename) to the outbox, then the job moves to the
// done directory. The returned report is also persisted; conversion errors
// are recorded in it and returned.
func (p *Processor) Process(jobPath string) (*Report, error) {
	rep := &Report{
		RunID:      uuid.NewString(),
		Job:        filepath.Base(jobPath),
		ManifestID: p.Manifest.ID,
		StartedAt:  time.Now().UTC(),
	}

	data, err := os.ReadFile(jobPath)
	if err != nil {
		rep.Error = err.Error()
		rep.FinishedAt = time.Now().UTC()
		_ = p.writeReport(rep)
		return rep, fmt.Errorf("watch: read job: %w", err)
	}

	var out bytes.Buffer
	n, convErr := record.ConvertJSONL(bytes.NewReader(data), &out, p.Manifest)
	rep.Records = n
	rep.FinishedAt = time.Now().UTC()

	if convErr != nil {
		rep.Error = convErr.Error()
		_ = p.writeReport(rep)
		return rep, convErr
	}

	base := strings.TrimSuffix(filepath.Base(jobPath), ".jsonl")
	if err := atomicWrite(filepath.Join(p.Outbox, base+".records.jsonl"), out.Bytes()); err != nil {
		rep.Error = err.Error()
		_ = p.writeReport(rep)
		return rep, err
	}
	if err := p.writeReport(rep); err != nil {
		return rep, err
	}

	if p.Done != "" {
		if err := os.MkdirAll(p.Done, 0750); err != nil {
			return rep, fmt.Errorf("watch: create done dir: %w", err)
		}
		if err := os.Rename(jobPath, filepath.Join(p.Done, filepath.Base(jobPath))); err != nil {
			return rep, fmt.Errorf("watch: archive job: %w", err)
		}
	}

	return rep, nil
}

func (p *Processor) writeReport(rep *Report) error {
	base := strings.TrimSuffix(rep.Job, ".jsonl")
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("watch: marshal report: %w", err)
	}
	return atomicWrite(filepath.Join(p.Outbox, base+".report.json"), data)
}

// atomicWrite writes via a .tmp sibling and renames into place, so the
// watcher on the far side never observes a partial file.
func atomicWrite(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return fmt.Errorf("watch: create directory: %w", err)
	}
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("watch: write temp file: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("watch: rename to final: %w", err)
	}
	return nil
}
