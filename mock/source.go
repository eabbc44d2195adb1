package mock

import (
	"context"

	"github.com/fwojciec/diffinsight"
)

// Compile-time interface verification.
var _ diffinsight.DiffSource = (*DiffSource)(nil)

// DiffSource is a mock implementation of diffinsight.DiffSource.
type DiffSource struct {
	DiffFn func(ctx context.Context, repoPath string, args ...string) (string, error)
}

func (s *DiffSource) Diff(ctx context.Context, repoPath string, args ...string) (string, error) {
	return s.DiffFn(ctx, repoPath, args...)
}
