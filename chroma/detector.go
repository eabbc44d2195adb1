package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.LanguageDetector = (*Detector)(nil)

// Detector detects the language of pasted code using chroma lexers.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the language of source. A hint may be a language name or
// alias ("go", "Python") or a file name ("main.rs"). Without a usable hint the
// file named in a "+++ b/path" header is tried, then chroma's content analysis.
func (d *Detector) Detect(hint, source string) string {
	if hint != "" {
		if lexer := lexers.Get(hint); lexer != nil {
			return lexer.Config().Name
		}
		if lang := d.DetectFromPath(hint); lang != "" {
			return lang
		}
	}

	for line := range strings.SplitSeq(source, "\n") {
		path, ok := strings.CutPrefix(line, "+++ ")
		if !ok || path == "/dev/null" {
			continue
		}
		if lang := d.DetectFromPath(path); lang != "" {
			return lang
		}
	}

	if lexer := lexers.Analyse(Code(source)); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}

// DetectFromPath returns the language name for the given path,
// or an empty string if the language cannot be determined.
// Strips "a/" or "b/" prefixes common in diff output.
func (d *Detector) DetectFromPath(path string) string {
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}

// Code returns source with the leading diff marker of each line removed,
// leaving code that a lexer can read. Lines keep their positions.
func Code(source string) string {
	var sb strings.Builder
	first := true
	for line := range diffinsight.Lines(source) {
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		_, body := line.Split()
		sb.WriteString(body)
	}
	return sb.String()
}
