// Package browser defines the boundary through which the core drives the
// hosting browser: tab enumeration, message delivery into pages, and detector
// script injection.
//
// The callback-style APIs of extension hosts are rendered here as awaitable
// operations returning a value or an error; implementations live on the shell
// side of the transport.
package browser

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/episodic-ext/episodic/protocol"
)

// ErrTabNotFound marks a tab id that no longer resolves to an open tab.
var ErrTabNotFound = errors.New("tab not found")

// ErrNoReceiver marks a message that could not be delivered because no
// detector is listening in the target page (the page loaded before the
// extension, or navigated since).
var ErrNoReceiver = errors.New("no receiver in tab")

// Host is the set of asynchronous browser operations the scan orchestrator
// suspends on. Every call may block on an inter-context round trip and must
// honor ctx cancellation.
type Host interface {
	// Tabs lists every open tab.
	Tabs(ctx context.Context) ([]protocol.Tab, error)

	// TabByID fetches one tab, returning ErrTabNotFound if it was closed.
	TabByID(ctx context.Context, id int) (protocol.Tab, error)

	// SendMessage delivers a message to the detector in a tab and returns its
	// reply. Returns ErrNoReceiver when nothing in the page is listening.
	SendMessage(ctx context.Context, tabID int, msg protocol.Envelope) (json.RawMessage, error)

	// InjectDetector injects the link detector script into a tab and reports
	// the injection outcome as a discrete result.
	InjectDetector(ctx context.Context, tabID int) error
}
