// Package eval provides test helpers for LLM-as-judge evaluation of analyzer
// output.
package eval

import (
	"os"
	"testing"

	"github.com/fwojciec/diffinsight"
)

// Eval provides assertion helpers for LLM-based test evaluation.
type Eval struct {
	judge diffinsight.RubricJudge
}

// New creates a new Eval with the given judge.
func New(judge diffinsight.RubricJudge) *Eval {
	return &Eval{judge: judge}
}

// AssertRubric evaluates whether the output satisfies the given criterion.
// If the criterion is not satisfied, the test is marked as failed.
func (e *Eval) AssertRubric(tb testing.TB, criterion, output string) bool {
	tb.Helper()

	result, err := e.judge.Judge(tb.Context(), criterion, output)
	if err != nil {
		tb.Errorf("rubric evaluation failed: %v", err)
		return false
	}

	if !result.Passed {
		tb.Errorf("rubric criterion not satisfied: %q\nOutput:\n%s\nReasoning: %s", criterion, output, result.Reasoning)
		return false
	}
	return true
}

// AssertAnalysis judges every criterion of rubric against result and reports
// whether all of them passed. Failures are reported individually.
func (e *Eval) AssertAnalysis(tb testing.TB, result *diffinsight.AnalysisResult, rubric diffinsight.Rubric) bool {
	tb.Helper()

	passed := true
	for _, c := range rubric.Criteria(result) {
		if !e.AssertRubric(tb, c[0], c[1]) {
			passed = false
		}
	}
	return passed
}

// SkipUnlessEvals skips the test unless GOEVALS environment variable is set.
// Use at the start of eval tests to make them opt-in.
func SkipUnlessEvals(tb testing.TB) {
	tb.Helper()
	if os.Getenv("GOEVALS") == "" {
		tb.Skip("GOEVALS not set")
	}
}
