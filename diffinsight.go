// Package diffinsight provides domain types for previewing pasted diffs and
// analyzing them for issues and solutions.
package diffinsight

import (
	"context"
	"iter"
	"strings"
)

// LineCategory is the display category of a single diff line.
type LineCategory int

// Line categories.
const (
	Neutral LineCategory = iota
	Addition
	Deletion
)

// String returns the lower-case name of the category.
func (c LineCategory) String() string {
	switch c {
	case Addition:
		return "addition"
	case Deletion:
		return "deletion"
	default:
		return "neutral"
	}
}

// DiffLine is one line of the input buffer together with its category.
// Text is the exact line without its trailing newline.
type DiffLine struct {
	Text     string
	Category LineCategory
}

// Display returns the text to render for the line. Empty lines render as a
// single space so they keep their height.
func (l DiffLine) Display() string {
	if l.Text == "" {
		return " "
	}
	return l.Text
}

// Split returns the line's diff marker and the code after it. Additions and
// deletions give up their first character; a context line gives up one
// leading space. Other lines have no marker. marker+body always equals Text.
func (l DiffLine) Split() (marker, body string) {
	if l.Category != Neutral || strings.HasPrefix(l.Text, " ") {
		return l.Text[:1], l.Text[1:]
	}
	return "", l.Text
}

// Classify returns the category of a single line. The first character decides:
// '+' is an addition, '-' a deletion, anything else is neutral.
func Classify(line string) LineCategory {
	switch {
	case strings.HasPrefix(line, "+"):
		return Addition
	case strings.HasPrefix(line, "-"):
		return Deletion
	default:
		return Neutral
	}
}

// Lines returns the lines of buffer in order, split on '\n'. The sequence is
// lazy and can be ranged over any number of times. An empty buffer yields a
// single empty line, and a trailing newline yields a trailing empty line, so
// joining the Text fields with '\n' always reproduces buffer.
func Lines(buffer string) iter.Seq[DiffLine] {
	return func(yield func(DiffLine) bool) {
		for text := range strings.SplitSeq(buffer, "\n") {
			if !yield(DiffLine{Text: text, Category: Classify(text)}) {
				return
			}
		}
	}
}

// CollectLines returns all lines of buffer as a slice.
func CollectLines(buffer string) []DiffLine {
	lines := make([]DiffLine, 0, strings.Count(buffer, "\n")+1)
	for line := range Lines(buffer) {
		lines = append(lines, line)
	}
	return lines
}

// LineStats counts lines per category.
type LineStats struct {
	Added   int
	Deleted int
	Neutral int
}

// Total returns the number of lines counted.
func (s LineStats) Total() int {
	return s.Added + s.Deleted + s.Neutral
}

// CountLines returns per-category line counts for buffer.
func CountLines(buffer string) LineStats {
	var stats LineStats
	for line := range Lines(buffer) {
		switch line.Category {
		case Addition:
			stats.Added++
		case Deletion:
			stats.Deleted++
		default:
			stats.Neutral++
		}
	}
	return stats
}

// AnalysisResult holds the findings of one analysis. Issues and Solutions are
// independent lists; their order is the display and copy order.
type AnalysisResult struct {
	Issues    []string `json:"issues" msgpack:"issues"`
	Solutions []string `json:"solutions" msgpack:"solutions"`
}

// Clone returns a deep copy of r.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	return &AnalysisResult{
		Issues:    append([]string(nil), r.Issues...),
		Solutions: append([]string(nil), r.Solutions...),
	}
}

// Analyzer turns raw diff text into an AnalysisResult.
type Analyzer interface {
	Analyze(ctx context.Context, diff string) (*AnalysisResult, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// DiffSource provides diff text from an external tool such as git.
type DiffSource interface {
	// Diff returns the working tree diff of the repository at repoPath.
	Diff(ctx context.Context, repoPath string, args ...string) (string, error)
}
