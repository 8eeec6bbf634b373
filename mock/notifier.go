package mock

import (
	"sync"

	"github.com/fwojciec/tldr"
)

var _ tldr.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of tldr.Notifier that records warnings.
type Notifier struct {
	mu       sync.Mutex
	warnings []string
}

func (n *Notifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}

// Warnings returns a copy of all recorded warnings.
func (n *Notifier) Warnings() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.warnings...)
}
