package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/fwojciec/diffinsight"
)

// printer colors command output.
type printer struct {
	heading *color.Color
	success *color.Color
	failure *color.Color
	info    *color.Color
}

// newPrinter returns a printer for the --color mode: "auto" follows the
// terminal, "on" and "off" force colors.
func newPrinter(mode string) (printer, error) {
	p := printer{
		heading: color.New(color.FgYellow, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
		info:    color.New(color.FgCyan),
	}
	all := []*color.Color{p.heading, p.success, p.failure, p.info}
	switch mode {
	case "auto":
	case "on":
		for _, c := range all {
			c.EnableColor()
		}
	case "off":
		for _, c := range all {
			c.DisableColor()
		}
	default:
		return printer{}, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return p, nil
}

// list writes a heading followed by the numbered items, or "(none)".
func (p printer) list(w io.Writer, heading string, items []string) {
	p.heading.Fprintln(w, heading)
	if len(items) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	fmt.Fprintln(w, diffinsight.FormatNumbered(items))
}

func (p printer) severity(s diffinsight.Severity) *color.Color {
	switch s {
	case diffinsight.SeveritySuccess:
		return p.success
	case diffinsight.SeverityError:
		return p.failure
	default:
		return p.info
	}
}

// printNotifier writes notifications as single colored lines.
type printNotifier struct {
	w io.Writer
	p printer
}

func (n printNotifier) Notify(note diffinsight.Notification) {
	n.p.severity(note.Severity).Fprintf(n.w, "%s: %s\n", note.Title, note.Description)
}

// logNotifier records notifications in the debug log.
type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Notify(note diffinsight.Notification) {
	level := slog.LevelInfo
	if note.Severity == diffinsight.SeverityError {
		level = slog.LevelWarn
	}
	n.logger.Log(context.Background(), level, "notification",
		"title", note.Title,
		"description", note.Description,
		"severity", note.Severity.String())
}

// notifiers fans a notification out to each notifier in order.
type notifiers []diffinsight.Notifier

func (ns notifiers) Notify(note diffinsight.Notification) {
	for _, n := range ns {
		n.Notify(note)
	}
}

// loggingAnalyzer logs each analysis call with its duration.
type loggingAnalyzer struct {
	inner  diffinsight.Analyzer
	logger *slog.Logger
}

func (a loggingAnalyzer) Analyze(ctx context.Context, diff string) (*diffinsight.AnalysisResult, error) {
	start := time.Now()
	a.logger.Debug("analysis started", "lines", diffinsight.CountLines(diff).Total())

	result, err := a.inner.Analyze(ctx, diff)
	if err != nil {
		a.logger.Error("analysis failed", "err", err, "elapsed", time.Since(start))
		return nil, err
	}
	if result != nil {
		a.logger.Info("analysis finished",
			"issues", len(result.Issues),
			"solutions", len(result.Solutions),
			"elapsed", time.Since(start))
	}
	return result, nil
}
