package mock

import "github.com/fwojciec/diffinsight"

// Compile-time interface verification.
var _ diffinsight.Clipboard = (*Clipboard)(nil)

// Clipboard is a mock implementation of diffinsight.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}
