// Package clipboard provides clipboard implementations: the system clipboard,
// OSC 52 terminal escapes for remote sessions, and macOS pbcopy.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var (
	_ diffinsight.Clipboard = (*System)(nil)
	_ diffinsight.Clipboard = (*OSC52)(nil)
	_ diffinsight.Clipboard = (*PBCopy)(nil)
	_ diffinsight.Clipboard = Fallback(nil)
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard: no clipboard utility available")

// System implements Clipboard using the platform clipboard utility
// (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(content)
}

// OSC52 implements Clipboard by emitting an OSC 52 escape sequence, which
// most terminal emulators turn into a clipboard write, also over SSH.
type OSC52 struct {
	out io.Writer
	env func(string) string
}

// NewOSC52 returns an OSC52 clipboard writing escape sequences to out.
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out, env: os.Getenv}
}

// Copy writes content to the terminal clipboard.
func (o *OSC52) Copy(content string) error {
	seq := osc52.New(content)
	switch {
	case o.env("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(o.env("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(o.out); err != nil {
		return fmt.Errorf("clipboard: write osc52 sequence: %w", err)
	}
	return nil
}

// PBCopy implements Clipboard using macOS pbcopy command.
type PBCopy struct{}

// NewPBCopy returns a new PBCopy clipboard.
func NewPBCopy() *PBCopy {
	return &PBCopy{}
}

// Copy writes content to the system clipboard using pbcopy.
func (p *PBCopy) Copy(content string) error {
	cmd := exec.Command("pbcopy")
	cmd.Stdin = strings.NewReader(content)
	return cmd.Run()
}

// Fallback tries each clipboard in order and stops at the first success.
type Fallback []diffinsight.Clipboard

// Copy writes content with the first clipboard that accepts it. If all fail
// the errors are joined.
func (f Fallback) Copy(content string) error {
	if len(f) == 0 {
		return ErrUnsupported
	}
	var errs []error
	for _, cb := range f {
		err := cb.Copy(content)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// New returns the clipboard registered under name: "system" (system clipboard
// falling back to OSC 52), "osc52", or "pbcopy". OSC 52 sequences go to out.
func New(name string, out io.Writer) (diffinsight.Clipboard, error) {
	switch name {
	case "", "system":
		return Fallback{NewSystem(), NewOSC52(out)}, nil
	case "osc52":
		return NewOSC52(out), nil
	case "pbcopy":
		return NewPBCopy(), nil
	default:
		return nil, fmt.Errorf("clipboard: unknown clipboard %q", name)
	}
}
