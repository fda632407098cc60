package store

import (
	"errors"
	"fmt"

	"github.com/nikbrunner/hive/internal/model"
)

// Source says what triggered a state change.
type Source string

const (
	SourceCache    Source = "cache"    // hydrated or kept from the local cache
	SourceRemote   Source = "remote"   // replaced by a backend fetch
	SourceLocal    Source = "local"    // confirmed or optimistic user mutation
	SourceRollback Source = "rollback" // optimistic change undone
)

// Notice is a user-facing message about a failed operation.
type Notice struct {
	Op        string
	Message   string
	Retryable bool
}

// State is an immutable snapshot of the store.
type State struct {
	Tree           *model.Tree
	ActiveFolderID *string
	Loading        bool
	Stale          bool // backend unreachable, showing cached data
	Notice         *Notice
}

// ActiveFolder returns the active top-level folder.
func (s State) ActiveFolder() (model.Node, bool) {
	if s.ActiveFolderID == nil {
		return model.Node{}, false
	}
	return s.Tree.Find(*s.ActiveFolderID)
}

// ActiveChildren returns the children of the active folder.
func (s State) ActiveChildren() []model.Node {
	if s.ActiveFolderID == nil {
		return nil
	}
	return s.Tree.Children(*s.ActiveFolderID)
}

// Event is delivered to subscribers after every state change.
type Event struct {
	State  State
	Source Source
}

// noticeFor builds the message shown for a failed operation.
func noticeFor(op string, err error) *Notice {
	var reason string
	var ve *model.ValidationError
	switch {
	case errors.Is(err, model.ErrOffline):
		reason = "you appear to be offline"
	case errors.Is(err, model.ErrNetwork):
		reason = "the server could not be reached"
	case errors.As(err, &ve):
		reason = ve.Message
	default:
		reason = err.Error()
	}
	return &Notice{
		Op:        op,
		Message:   fmt.Sprintf("Could not %s: %s", op, reason),
		Retryable: model.IsRetryable(err),
	}
}
