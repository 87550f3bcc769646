package compare

import (
	"reflect"
	"strings"
	"testing"

	"github.com/blamecmp/blamecmp/internal/format"
)

func formatsForTest(t *testing.T) (ref, cand *format.Format) {
	t.Helper()
	ref, err := format.For("git")
	if err != nil {
		t.Fatalf("resolving reference format: %v", err)
	}
	cand, err = format.For("gix")
	if err != nil {
		t.Fatalf("resolving candidate format: %v", err)
	}
	return ref, cand
}

func stream(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestCompatibleRevisions(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"abc123", "abc123", true},
		{"abc1", "abc123", true},
		{"abc123", "abc1", true},
		{"a", "abc123", true},
		{"def456", "deadbeef", false},
		{"abc123", "abc124", false},
		{"abc123", "bbc123", false},
	}

	for _, tc := range cases {
		if got := CompatibleRevisions(tc.a, tc.b); got != tc.want {
			t.Errorf("CompatibleRevisions(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		// Prefix compatibility is symmetric.
		if got := CompatibleRevisions(tc.b, tc.a); got != tc.want {
			t.Errorf("CompatibleRevisions(%q, %q) = %v, want %v", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestFileAllLinesMatch(t *testing.T) {
	ref, cand := formatsForTest(t)

	refOut := stream(
		"abc123 (Alice 1) foo",
		"def456 (Bob 2) bar",
		"abc123 (Alice 3) baz",
	)
	candOut := stream(
		"abc1 1 1 foo",
		"def456aa90 2 2 bar",
		"abc123 3 3 baz",
	)

	outcome := File(refOut, candOut, ref, cand)
	want := Outcome{Kind: KindMatched, MatchingLines: 3}
	if !reflect.DeepEqual(outcome, want) {
		t.Fatalf("File = %+v, want %+v", outcome, want)
	}
}

func TestFilePartialMatchRecordsOrderedIndices(t *testing.T) {
	ref, cand := formatsForTest(t)

	refOut := stream(
		"abc123 (Alice 1) foo",
		"def456 (Bob 2) bar",
	)
	candOut := stream(
		"abc1 1 1 foo",
		"deadbeef 2 2 bar",
	)

	outcome := File(refOut, candOut, ref, cand)
	want := Outcome{Kind: KindPartiallyMatched, MatchingLines: 1, MismatchedLines: []int{1}}
	if !reflect.DeepEqual(outcome, want) {
		t.Fatalf("File = %+v, want %+v", outcome, want)
	}
}

func TestFileMismatchIndicesStrictlyIncreasing(t *testing.T) {
	ref, cand := formatsForTest(t)

	refLines := make([]string, 6)
	candLines := make([]string, 6)
	for i := range refLines {
		refLines[i] = "abc123 (Alice 1) foo"
		if i%2 == 1 {
			candLines[i] = "deadbeef 1 1 foo"
		} else {
			candLines[i] = "abc1 1 1 foo"
		}
	}

	outcome := File(stream(refLines...), stream(candLines...), ref, cand)
	if outcome.Kind != KindPartiallyMatched {
		t.Fatalf("Kind = %s, want %s", outcome.Kind, KindPartiallyMatched)
	}
	if want := []int{1, 3, 5}; !reflect.DeepEqual(outcome.MismatchedLines, want) {
		t.Fatalf("MismatchedLines = %v, want %v", outcome.MismatchedLines, want)
	}
	if outcome.MatchingLines != 3 {
		t.Fatalf("MatchingLines = %d, want 3", outcome.MatchingLines)
	}
}

func TestFileLineCountMismatch(t *testing.T) {
	ref, cand := formatsForTest(t)

	refOut := stream(
		"abc123 (Alice 1) foo",
		"abc123 (Alice 2) bar",
		"abc123 (Alice 3) baz",
	)
	candOut := stream(
		"abc123 1 1 foo",
		"abc123 2 2 bar",
	)

	outcome := File(refOut, candOut, ref, cand)
	if outcome.Kind != KindLineCountMismatch {
		t.Fatalf("Kind = %s, want %s", outcome.Kind, KindLineCountMismatch)
	}
	// No line-level judgment happened.
	if outcome.MatchingLines != 0 || outcome.MismatchedLines != nil {
		t.Fatalf("line counters populated on length mismatch: %+v", outcome)
	}
}

func TestFileParseFailureAbortsWholeFile(t *testing.T) {
	ref, cand := formatsForTest(t)

	refOut := stream(
		"abc123 (Alice 1) foo",
		"abc123 (Alice 2) bar",
		"abc123 (Alice 3) baz",
		"abc123 (Alice 4) qux",
	)
	// Three well-formed lines, then one missing its revision field.
	candOut := stream(
		"abc123 1 1 foo",
		"abc123 2 2 bar",
		"abc123 3 3 baz",
		"4 qux",
	)

	outcome := File(refOut, candOut, ref, cand)
	if outcome.Kind != KindParseFailure {
		t.Fatalf("Kind = %s, want %s", outcome.Kind, KindParseFailure)
	}
	if outcome.MatchingLines != 0 {
		t.Fatalf("partial results leaked through a parse failure: %+v", outcome)
	}
}

func TestFileIsIdempotent(t *testing.T) {
	ref, cand := formatsForTest(t)

	refOut := stream(
		"abc123 (Alice 1) foo",
		"def456 (Bob 2) bar",
	)
	candOut := stream(
		"abc1 1 1 foo",
		"deadbeef 2 2 bar",
	)

	first := File(refOut, candOut, ref, cand)
	second := File(refOut, candOut, ref, cand)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("outcomes differ across runs: %+v vs %+v", first, second)
	}
}

func TestFileToleratesTrailingNewlineAndCRLF(t *testing.T) {
	ref, cand := formatsForTest(t)

	refOut := []byte("abc123 (Alice 1) foo\r\nabc123 (Alice 2) bar\r\n")
	candOut := []byte("abc123 1 1 foo\nabc123 2 2 bar")

	outcome := File(refOut, candOut, ref, cand)
	want := Outcome{Kind: KindMatched, MatchingLines: 2}
	if !reflect.DeepEqual(outcome, want) {
		t.Fatalf("File = %+v, want %+v", outcome, want)
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{
			"matched",
			Outcome{Kind: KindMatched, MatchingLines: 10},
			"all 10 lines matched",
		},
		{
			"partial",
			Outcome{Kind: KindPartiallyMatched, MatchingLines: 1, MismatchedLines: []int{1}},
			"1 of 2 lines matched (50.00%), mismatches at lines 2",
		},
		{
			"line count mismatch",
			Outcome{Kind: KindLineCountMismatch},
			"line counts differ between the two outputs",
		},
		{
			"parse failure",
			Outcome{Kind: KindParseFailure},
			"a line did not match its expected blame format",
		},
		{
			"execution failure",
			Outcome{Kind: KindExecutionFailure},
			"a blame invocation did not complete successfully",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outcome.Describe(); got != tc.want {
				t.Fatalf("Describe = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDescribeCapsExampleLines(t *testing.T) {
	mismatched := make([]int, 25)
	for i := range mismatched {
		mismatched[i] = i
	}
	o := Outcome{Kind: KindPartiallyMatched, MatchingLines: 75, MismatchedLines: mismatched}

	got := o.Describe()
	if !strings.Contains(got, "75 of 100 lines matched (75.00%)") {
		t.Errorf("Describe missing counts: %q", got)
	}
	if !strings.Contains(got, "1, 2, 3, 4, 5, 6, 7, 8, 9, 10") {
		t.Errorf("Describe missing first ten examples: %q", got)
	}
	if strings.Contains(got, "11") {
		t.Errorf("Describe lists more than ten examples: %q", got)
	}
	if !strings.Contains(got, "(+15 more)") {
		t.Errorf("Describe missing overflow note: %q", got)
	}
}
