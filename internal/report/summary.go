// Package report aggregates per-file comparison outcomes into corpus-wide
// statistics and renders them for humans or machines.
package report

import (
	"github.com/blamecmp/blamecmp/internal/compare"
)

// FileResult pairs one tracked file with its classified outcome.
type FileResult struct {
	Path    string          `json:"path"`
	Outcome compare.Outcome `json:"outcome"`
}

// CorpusSummary holds derived counts for one run. File counts partition the
// corpus by outcome kind; the line counters cover only files where a
// line-level judgment was possible (matched and partially matched files —
// the failure kinds contribute zero lines to either counter).
type CorpusSummary struct {
	TotalFiles        int `json:"total_files"`
	MatchedFiles      int `json:"matched_files"`
	PartialFiles      int `json:"partially_matched_files"`
	LineCountFiles    int `json:"line_count_mismatch_files"`
	ParseFailureFiles int `json:"parse_failure_files"`
	ExecFailureFiles  int `json:"execution_failure_files"`
	MatchingLines     int `json:"matching_lines"`
	MismatchedLines   int `json:"mismatched_lines"`
}

// Summarize folds the ordered result sequence into a CorpusSummary.
func Summarize(results []FileResult) *CorpusSummary {
	s := &CorpusSummary{TotalFiles: len(results)}
	for _, r := range results {
		switch r.Outcome.Kind {
		case compare.KindMatched:
			s.MatchedFiles++
			s.MatchingLines += r.Outcome.MatchingLines
		case compare.KindPartiallyMatched:
			s.PartialFiles++
			s.MatchingLines += r.Outcome.MatchingLines
			s.MismatchedLines += len(r.Outcome.MismatchedLines)
		case compare.KindLineCountMismatch:
			s.LineCountFiles++
		case compare.KindParseFailure:
			s.ParseFailureFiles++
		case compare.KindExecutionFailure:
			s.ExecFailureFiles++
		}
	}
	return s
}

// NonMatchingFiles counts every file that did not fully match.
func (s *CorpusSummary) NonMatchingFiles() int {
	return s.TotalFiles - s.MatchedFiles
}

// MatchPercent returns matching lines as a percentage of all judged lines.
// ok is false when no line was judged at all; the percentage is undefined
// then and must not be shown.
func (s *CorpusSummary) MatchPercent() (pct float64, ok bool) {
	total := s.MatchingLines + s.MismatchedLines
	if total == 0 {
		return 0, false
	}
	return float64(s.MatchingLines) / float64(total) * 100, true
}
