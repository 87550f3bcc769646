package compare

import (
	"fmt"
	"strings"
)

// OutcomeKind classifies the result of comparing one file's two blame outputs.
type OutcomeKind string

const (
	// KindMatched means every line pair held compatible revisions.
	KindMatched OutcomeKind = "matched"
	// KindPartiallyMatched means the outputs aligned but some lines disagreed.
	KindPartiallyMatched OutcomeKind = "partially_matched"
	// KindLineCountMismatch means the two outputs had different line counts;
	// no per-line comparison was attempted.
	KindLineCountMismatch OutcomeKind = "line_count_mismatch"
	// KindParseFailure means a line in either output did not conform to its
	// expected format; the whole file is distrusted.
	KindParseFailure OutcomeKind = "parse_failure"
	// KindExecutionFailure means one of the two blame invocations did not
	// complete successfully; no output is trusted.
	KindExecutionFailure OutcomeKind = "execution_failure"
)

// Outcome is the classified result for one file. MatchingLines and
// MismatchedLines are populated only for matched and partially matched
// outcomes; MismatchedLines holds 0-based positions in strictly increasing
// order and is empty exactly when the outcome is KindMatched.
type Outcome struct {
	Kind            OutcomeKind `json:"kind"`
	MatchingLines   int         `json:"matching_lines,omitempty"`
	MismatchedLines []int       `json:"mismatched_lines,omitempty"`
}

// Matches reports whether the file agreed completely.
func (o Outcome) Matches() bool { return o.Kind == KindMatched }

// maxExampleLines bounds how many mismatched line numbers Describe lists.
const maxExampleLines = 10

// Describe renders the outcome as a single line of text. Mismatched line
// numbers are shown 1-based, capped at maxExampleLines examples.
func (o Outcome) Describe() string {
	switch o.Kind {
	case KindMatched:
		return fmt.Sprintf("all %d lines matched", o.MatchingLines)
	case KindPartiallyMatched:
		total := o.MatchingLines + len(o.MismatchedLines)
		pct := float64(o.MatchingLines) / float64(total) * 100
		examples := make([]string, 0, maxExampleLines)
		for _, idx := range o.MismatchedLines {
			if len(examples) == maxExampleLines {
				break
			}
			examples = append(examples, fmt.Sprintf("%d", idx+1))
		}
		desc := fmt.Sprintf("%d of %d lines matched (%.2f%%), mismatches at lines %s",
			o.MatchingLines, total, pct, strings.Join(examples, ", "))
		if more := len(o.MismatchedLines) - len(examples); more > 0 {
			desc += fmt.Sprintf(" (+%d more)", more)
		}
		return desc
	case KindLineCountMismatch:
		return "line counts differ between the two outputs"
	case KindParseFailure:
		return "a line did not match its expected blame format"
	case KindExecutionFailure:
		return "a blame invocation did not complete successfully"
	default:
		return string(o.Kind)
	}
}
