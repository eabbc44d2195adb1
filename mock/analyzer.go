// Package mock provides test doubles for diffinsight interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of diffinsight.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, diff string) (*diffinsight.AnalysisResult, error)
}

func (a *Analyzer) Analyze(ctx context.Context, diff string) (*diffinsight.AnalysisResult, error) {
	return a.AnalyzeFn(ctx, diff)
}
