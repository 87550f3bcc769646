package compare

import (
	"strings"

	"github.com/blamecmp/blamecmp/internal/format"
)

// CompatibleRevisions reports whether two revision identifiers refer to the
// same revision, tolerating abbreviation in either direction: true iff one
// identifier is a prefix of the other. Comparison is case-sensitive over the
// lowercase hex the parser guarantees; equal-length unequal identifiers are
// never compatible.
func CompatibleRevisions(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// File compares the complete captured blame outputs for one file and returns
// a single classified Outcome. It is a pure function of its inputs: no file
// state, no side effects, same Outcome on every invocation.
func File(refOut, candOut []byte, refFmt, candFmt *format.Format) Outcome {
	refLines := splitLines(refOut)
	candLines := splitLines(candOut)

	// Positional alignment is meaningless on differing lengths; there is no
	// reliable resynchronization point in two free-text streams.
	if len(refLines) != len(candLines) {
		return Outcome{Kind: KindLineCountMismatch}
	}

	matching := 0
	var mismatched []int
	for i := range refLines {
		ref, err := refFmt.Parse(refLines[i])
		if err != nil {
			return Outcome{Kind: KindParseFailure}
		}
		cand, err := candFmt.Parse(candLines[i])
		if err != nil {
			return Outcome{Kind: KindParseFailure}
		}

		if CompatibleRevisions(ref.Revision, cand.Revision) {
			matching++
		} else {
			mismatched = append(mismatched, i)
		}
	}

	if len(mismatched) == 0 {
		return Outcome{Kind: KindMatched, MatchingLines: matching}
	}
	return Outcome{Kind: KindPartiallyMatched, MatchingLines: matching, MismatchedLines: mismatched}
}

// splitLines splits captured output into its non-empty lines, tolerating a
// trailing newline and CRLF terminators.
func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
