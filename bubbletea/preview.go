package bubbletea

import (
	"github.com/fwojciec/diffinsight"
)

// Preview renders input the way the preview panel shows it, for printing
// outside a running program. Lines wider than width are truncated and
// shorter ones padded; a width of zero or less leaves them as they are.
// Theme, renderer, language and tokenizer options apply as for NewModel.
func Preview(input string, width int, opts ...ModelOption) string {
	m := NewModel(nil, append(opts, WithInput(input))...)
	defer m.cancel()
	return m.renderPreview(diffinsight.CollectLines(input), width)
}
