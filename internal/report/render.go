package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
)

// DefaultMaxDetail caps how many disagreement rows Render lists.
const DefaultMaxDetail = 256

// Render produces the human-readable run report: the corpus summary followed
// by one row per non-matching file, capped at maxDetail rows.
func Render(results []FileResult, s *CorpusSummary, maxDetail int) string {
	var b strings.Builder

	if s.NonMatchingFiles() == 0 {
		b.WriteString("done, all blames matched\n")
	} else {
		b.WriteString(fmt.Sprintf("done, number of matches: %d, number of non-matches: %d\n",
			s.MatchedFiles, s.NonMatchingFiles()))
	}

	b.WriteString(fmt.Sprintf("files: %d total, %d matched, %d partially matched, %d line count mismatches, %d parse failures, %d execution failures\n",
		s.TotalFiles, s.MatchedFiles, s.PartialFiles, s.LineCountFiles, s.ParseFailureFiles, s.ExecFailureFiles))

	if pct, ok := s.MatchPercent(); ok {
		b.WriteString(fmt.Sprintf("lines: %d matching, %d mismatched (%.2f%% matching)\n",
			s.MatchingLines, s.MismatchedLines, pct))
	} else {
		b.WriteString("lines: no line-level judgment was possible (percentage n/a)\n")
	}

	if s.NonMatchingFiles() == 0 {
		return b.String()
	}

	if maxDetail <= 0 {
		maxDetail = DefaultMaxDetail
	}

	b.WriteString("\n")
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	shown := 0
	omitted := 0
	for _, r := range results {
		if r.Outcome.Matches() {
			continue
		}
		if shown == maxDetail {
			omitted++
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\n", r.Path, r.Outcome.Describe())
		shown++
	}
	w.Flush()
	if omitted > 0 {
		b.WriteString(fmt.Sprintf("  … and %d more\n", omitted))
	}

	return b.String()
}

type jsonReport struct {
	Summary *CorpusSummary `json:"summary"`
	Results []FileResult   `json:"results"`
}

// JSON returns the full run report as indented JSON.
func JSON(results []FileResult, s *CorpusSummary) ([]byte, error) {
	return json.MarshalIndent(jsonReport{Summary: s, Results: results}, "", "  ")
}
