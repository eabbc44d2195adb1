package mock

import "github.com/fwojciec/diffinsight"

// Compile-time interface verification.
var _ diffinsight.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of diffinsight.Notifier.
type Notifier struct {
	NotifyFn func(n diffinsight.Notification)
}

func (m *Notifier) Notify(n diffinsight.Notification) {
	m.NotifyFn(n)
}
