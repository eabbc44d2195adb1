package bubbletea

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/diffinsight"
)

// Viewer runs the analyzer screen as a full-screen terminal program.
type Viewer struct {
	analyzer    diffinsight.Analyzer
	opts        []ModelOption
	programOpts []tea.ProgramOption
}

// NewViewer creates a Viewer that analyzes with analyzer. Options are
// applied to every Model it runs.
func NewViewer(analyzer diffinsight.Analyzer, opts ...ModelOption) *Viewer {
	return &Viewer{
		analyzer:    analyzer,
		opts:        opts,
		programOpts: []tea.ProgramOption{tea.WithAltScreen()},
	}
}

// WithProgramOptions replaces the Bubble Tea program options. The default
// runs in the alternate screen.
func (v *Viewer) WithProgramOptions(opts ...tea.ProgramOption) *Viewer {
	v.programOpts = opts
	return v
}

// Run shows the screen with input in the buffer and blocks until the user
// quits or ctx is cancelled. Cancellation is not an error.
func (v *Viewer) Run(ctx context.Context, input string) error {
	opts := append([]ModelOption{WithContext(ctx), WithInput(input)}, v.opts...)
	m := NewModel(v.analyzer, opts...)

	p := tea.NewProgram(m, append(slices.Clone(v.programOpts), tea.WithContext(ctx))...)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
