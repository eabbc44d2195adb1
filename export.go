package diffinsight

import (
	"strconv"
	"strings"
)

// List labels used in copy notifications.
const (
	LabelIssues    = "Issues"
	LabelSolutions = "Solutions"
)

// FormatNumbered renders items as "1. first\n2. second", in order.
func FormatNumbered(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(item)
	}
	return sb.String()
}

// Export writes the numbered rendering of items to the clipboard.
func Export(cb Clipboard, items []string) error {
	return cb.Copy(FormatNumbered(items))
}
