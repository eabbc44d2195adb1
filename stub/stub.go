// Package stub provides an analyzer that answers every diff with a fixed set
// of findings after a fixed delay.
package stub

import (
	"context"
	"time"

	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.Analyzer = (*Analyzer)(nil)

// DefaultDelay is how long Analyze waits before answering.
const DefaultDelay = 2 * time.Second

// Issues and Solutions are the fixed findings, in display order.
var (
	Issues = []string{
		"Potential null pointer exception in line 15",
		"Memory leak detected in async operation",
		"Deprecated API usage found",
		"Missing error handling for database operations",
		"Performance bottleneck in nested loops",
	}
	Solutions = []string{
		"Add null checks before accessing object properties",
		"Implement proper cleanup for event listeners and timers",
		"Update to the latest API version with better security",
		"Add try-catch blocks around database queries",
		"Consider using more efficient data structures or algorithms",
	}
)

// Analyzer implements diffinsight.Analyzer with a constant payload.
type Analyzer struct {
	delay time.Duration
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDelay sets the simulated latency. Zero answers immediately.
func WithDelay(d time.Duration) Option {
	return func(a *Analyzer) {
		a.delay = d
	}
}

// NewAnalyzer creates an Analyzer with DefaultDelay.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{delay: DefaultDelay}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze waits for the configured delay and returns a fresh copy of the
// fixed findings. It returns the context error if ctx ends first.
func (a *Analyzer) Analyze(ctx context.Context, _ string) (*diffinsight.AnalysisResult, error) {
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Result(), nil
}

// Result returns a copy of the fixed findings.
func Result() *diffinsight.AnalysisResult {
	return &diffinsight.AnalysisResult{
		Issues:    append([]string(nil), Issues...),
		Solutions: append([]string(nil), Solutions...),
	}
}
