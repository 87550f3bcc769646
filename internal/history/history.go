// Package history keeps a jsonl ledger of past comparison runs.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/blamecmp/blamecmp/internal/report"
)

// Record is one completed run as stored in the ledger.
type Record struct {
	RanAt      time.Time            `json:"ran_at"`
	WorkTree   string               `json:"work_tree"`
	Baseline   string               `json:"baseline"`
	Comparison string               `json:"comparison"`
	Summary    report.CorpusSummary `json:"summary"`
}

// Path returns the ledger location: $BLAMECMP_HISTORY if set, otherwise
// ~/.blamecmp/history.jsonl.
func Path() (string, error) {
	if p := os.Getenv("BLAMECMP_HISTORY"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".blamecmp", "history.jsonl"), nil
}

// Append stores one run record. Ledger failures never fail a run; callers
// surface the error as a warning at most.
func Append(rec *Record) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if rec.RanAt.IsZero() {
		rec.RanAt = time.Now().UTC()
	}
	return appendRecord(path, rec)
}

// List returns up to limit records, most recent first. A non-positive limit
// returns everything.
func List(limit int) ([]Record, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	records, err := readRecords[Record](path)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].RanAt.After(records[j].RanAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
