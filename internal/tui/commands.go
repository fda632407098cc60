package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/hive/internal/store"
)

// eventMsg is sent when the store published a change.
type eventMsg struct {
	source store.Source
}

// loadedMsg is sent when a full load from the backend finished.
type loadedMsg struct {
	err error
}

// opDoneMsg is sent when a store mutation finished.
type opDoneMsg struct {
	op       string // verb used in error messages, e.g. "add link"
	err      error
	selectID string // node to select on success
	success  string // status message on success
}

// statusMsg sets the status line.
type statusMsg struct {
	typ  MessageType
	text string
}

// listen waits for the next store event.
func (a App) listen() tea.Cmd {
	events := a.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{source: ev.Source}
	}
}

// load refreshes the tree from the backend.
func (a App) load() tea.Cmd {
	s, ctx := a.store, a.ctx
	return func() tea.Msg {
		return loadedMsg{err: s.Load(ctx)}
	}
}

// run executes fn against the store off the UI goroutine.
func (a *App) run(op, success string, fn func(ctx context.Context, s *store.Store) (string, error)) tea.Cmd {
	a.pending++
	s, ctx := a.store, a.ctx
	return func() tea.Msg {
		id, err := fn(ctx, s)
		return opDoneMsg{op: op, err: err, selectID: id, success: success}
	}
}

// OpenBrowser opens rawURL with the platform's default handler.
func OpenBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux", "freebsd", "openbsd":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("opening browser: unsupported platform %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	// Reap the child; the handler detaches on its own
	go func() { _ = cmd.Wait() }()
	return nil
}
