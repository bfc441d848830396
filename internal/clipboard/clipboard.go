// Package clipboard forwards %pane-set-clipboard payloads to the local
// system clipboard.
package clipboard

import "github.com/atotto/clipboard"

// Sink is the clipboard write target the connection manager dispatches
// %pane-set-clipboard payloads to.
type Sink interface {
	Write(data []byte) error
}

// System writes to the local OS clipboard.
type System struct{}

// Write copies data to the system clipboard as text.
func (System) Write(data []byte) error {
	return clipboard.WriteAll(string(data))
}
