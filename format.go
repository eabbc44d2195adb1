package diffinsight

import (
	"fmt"
	"strings"
)

// PromptFormatter renders diff text as structured text for LLM prompts.
type PromptFormatter interface {
	Format(diff string) string
}

// DefaultFormatter implements PromptFormatter with the standard format.
type DefaultFormatter struct{}

// Format renders the diff with a short summary followed by the numbered lines.
func (f *DefaultFormatter) Format(diff string) string {
	var sb strings.Builder

	stats := CountLines(diff)
	sb.WriteString("<summary>\n")
	fmt.Fprintf(&sb, "Lines: %d (+%d/-%d, %d unchanged)\n",
		stats.Total(), stats.Added, stats.Deleted, stats.Neutral)
	sb.WriteString("</summary>\n\n")

	sb.WriteString("<diff>\n")
	n := 1
	for line := range Lines(diff) {
		fmt.Fprintf(&sb, "%4d %s %s\n", n, categoryMarker(line.Category), line.Text)
		n++
	}
	sb.WriteString("</diff>")
	return sb.String()
}

func categoryMarker(c LineCategory) string {
	switch c {
	case Addition:
		return "A"
	case Deletion:
		return "D"
	default:
		return " "
	}
}
