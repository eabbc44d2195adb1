package eval_test

import (
	"context"
	"testing"

	"github.com/fwojciec/diffinsight"
	"github.com/fwojciec/diffinsight/eval"
	"github.com/fwojciec/diffinsight/mock"
	"github.com/stretchr/testify/assert"
)

func TestEval_AssertRubric_Passes(t *testing.T) {
	t.Parallel()

	var gotCriterion, gotOutput string
	judge := &mock.RubricJudge{
		JudgeFn: func(ctx context.Context, criterion, output string) (*diffinsight.RubricResult, error) {
			gotCriterion, gotOutput = criterion, output
			return &diffinsight.RubricResult{Passed: true}, nil
		},
	}

	ok := eval.New(judge).AssertRubric(t, "mentions errors", "1. error ignored")

	assert.True(t, ok)
	assert.Equal(t, "mentions errors", gotCriterion)
	assert.Equal(t, "1. error ignored", gotOutput)
}

func TestEval_AssertAnalysis(t *testing.T) {
	t.Parallel()

	var got [][2]string
	judge := &mock.RubricJudge{
		JudgeFn: func(ctx context.Context, criterion, output string) (*diffinsight.RubricResult, error) {
			got = append(got, [2]string{criterion, output})
			return &diffinsight.RubricResult{Passed: true}, nil
		},
	}
	result := &diffinsight.AnalysisResult{Issues: []string{"a"}, Solutions: []string{"b", "c"}}

	ok := eval.New(judge).AssertAnalysis(t, result, diffinsight.Rubric{
		Issues:    []string{"flags a"},
		Solutions: []string{"fixes a"},
	})

	assert.True(t, ok)
	assert.Equal(t, [][2]string{
		{"flags a", "1. a"},
		{"fixes a", "1. b\n2. c"},
	}, got)
}

func TestSkipUnlessEvals(t *testing.T) {
	t.Setenv("GOEVALS", "")

	skipped := true
	t.Run("skips", func(t *testing.T) {
		eval.SkipUnlessEvals(t)
		skipped = false
	})

	assert.True(t, skipped)
}
