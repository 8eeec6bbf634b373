// Package color provides a terminal tldr.Notifier that prints warnings in colour.
package color

import (
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/fwojciec/tldr"
)

// Ensure Notifier implements tldr.Notifier at compile time.
var _ tldr.Notifier = (*Notifier)(nil)

// Notifier writes warnings to w, coloured when w is a terminal.
type Notifier struct {
	mu      sync.Mutex
	w       io.Writer
	warning *color.Color
}

// NewNotifier creates a Notifier writing to w.
// Colour output follows fatih/color's terminal and NO_COLOR detection.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{
		w:       w,
		warning: color.New(color.FgYellow, color.Bold),
	}
}

// NoColor disables colour output.
func (n *Notifier) NoColor() *Notifier {
	n.warning.DisableColor()
	return n
}

// ForceColor enables colour output even when w is not a terminal.
func (n *Notifier) ForceColor() *Notifier {
	n.warning.EnableColor()
	return n
}

// Warn prints msg prefixed with "warning:".
func (n *Notifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = n.warning.Fprint(n.w, "warning:")
	_, _ = io.WriteString(n.w, " "+msg+"\n")
}
