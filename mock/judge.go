package mock

import (
	"context"

	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.RubricJudge = (*RubricJudge)(nil)

// RubricJudge is a mock implementation of diffinsight.RubricJudge.
type RubricJudge struct {
	JudgeFn func(ctx context.Context, criterion, output string) (*diffinsight.RubricResult, error)
}

func (j *RubricJudge) Judge(ctx context.Context, criterion, output string) (*diffinsight.RubricResult, error) {
	return j.JudgeFn(ctx, criterion, output)
}
