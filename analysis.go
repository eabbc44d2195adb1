package diffinsight

import (
	"context"
	"time"
)

// DefaultAnalysisTimeout bounds a single analysis call.
const DefaultAnalysisTimeout = 60 * time.Second

// Outcome is the result of one analysis call: exactly one of Result and Err
// is set.
type Outcome struct {
	Result *AnalysisResult
	Err    *AnalysisError
}

// Succeeded reports whether the call produced a result.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// RunAnalysis calls analyzer with the snapshot carried by req. A positive
// timeout bounds the call. Errors are classified into an AnalysisError and a
// nil result without error is treated as a malformed response.
func RunAnalysis(ctx context.Context, analyzer Analyzer, req Request, timeout time.Duration) Outcome {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := analyzer.Analyze(ctx, req.Input)
	if err != nil {
		return Outcome{Err: NewAnalysisError(err)}
	}
	if result == nil {
		return Outcome{Err: &AnalysisError{Kind: KindMalformedResponse, Err: ErrMalformedResponse}}
	}
	return Outcome{Result: result}
}
