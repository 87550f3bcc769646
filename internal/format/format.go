package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies which blame implementation produced an output stream.
type Kind string

const (
	// KindReference is the baseline implementation; its executable is named "git".
	KindReference Kind = "reference"
	// KindCandidate is the implementation under test; its executable is named "gix".
	KindCandidate Kind = "candidate"
)

// ErrUnknownExecutable is returned when an executable name maps to no known
// blame line format. This is a configuration error, not a per-file fault.
var ErrUnknownExecutable = errors.New("executable is not associated with a blame line format")

// ErrLineFormat is returned when a blame output line does not match its
// expected format.
var ErrLineFormat = errors.New("line did not match blame format")

// Format binds a Kind to the compiled pattern that decodes one line of that
// tool's blame output. Formats are built once at init and never mutated.
type Format struct {
	kind Kind
	re   *regexp.Regexp
}

var (
	// Reference lines: optional boundary caret, hex revision, an optional
	// filename field (present in whole-repository blame), the parenthesized
	// author/line-number annotation, then the source text. The parenthesized
	// group is the structural anchor; the filename match must not cross it.
	referenceRE = regexp.MustCompile(`^\^?([0-9a-f]+) (?:([^(^)]+)\s+)?\((.*) (\d+)\) (.*)$`)

	// Candidate lines: hex revision, an optional sub-variant token, the
	// original line number, the final line number, then the source text.
	candidateRE = regexp.MustCompile(`^([0-9a-f]+) (?:\S+ )?(\d+) (\d+) (.*)$`)
)

var formats = map[Kind]*Format{
	KindReference: {kind: KindReference, re: referenceRE},
	KindCandidate: {kind: KindCandidate, re: candidateRE},
}

// Kind returns the executable kind this format decodes.
func (f *Format) Kind() Kind { return f.kind }

// ResolveKind classifies an executable by its final path segment.
// Directories are ignored; unknown names are a configuration error.
func ResolveKind(executable string) (Kind, error) {
	switch filepath.Base(executable) {
	case "git":
		return KindReference, nil
	case "gix":
		return KindCandidate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExecutable, executable)
	}
}

// For resolves an executable path to its Format.
func For(executable string) (*Format, error) {
	kind, err := ResolveKind(executable)
	if err != nil {
		return nil, err
	}
	return formats[kind], nil
}

// Line is the structured result of parsing one raw blame output line.
// Revision is always set and is lowercase hex; the remaining fields are
// filled only where the producing format encodes them, and are never used
// for comparison.
type Line struct {
	Revision   string
	Filename   string
	Annotation string
	OrigLine   int
	FinalLine  int
}

// Parse applies the format to one line of text. A line that does not match
// the pattern returns ErrLineFormat; no partial result is retained.
func (f *Format) Parse(line string) (Line, error) {
	m := f.re.FindStringSubmatch(line)
	if m == nil {
		return Line{}, fmt.Errorf("%w (%s): %q", ErrLineFormat, f.kind, line)
	}

	switch f.kind {
	case KindReference:
		return Line{
			Revision:   m[1],
			Filename:   strings.TrimSpace(m[2]),
			Annotation: m[3],
			FinalLine:  mustInt(m[4]),
		}, nil
	default:
		return Line{
			Revision:  m[1],
			OrigLine:  mustInt(m[2]),
			FinalLine: mustInt(m[3]),
		}, nil
	}
}

// mustInt converts a digit-only submatch; the pattern guarantees digits.
func mustInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
