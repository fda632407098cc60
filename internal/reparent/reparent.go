// Package reparent turns drag-and-drop gestures into tree moves.
package reparent

import (
	"context"
	"errors"
	"sync"

	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/store"
)

// ErrNoDrag is returned by Drop when nothing is being dragged.
var ErrNoDrag = errors.New("no drag in progress")

// Mover is the part of the store the controller needs.
type Mover interface {
	State() store.State
	MoveNode(ctx context.Context, id, targetFolderID string) error
}

// Controller tracks a single drag gesture.
type Controller struct {
	mu       sync.Mutex
	mover    Mover
	dragging string
	over     string
}

// New creates a Controller that moves nodes through mover.
func New(mover Mover) *Controller {
	return &Controller{mover: mover}
}

// BeginDrag picks up a node.
func (c *Controller) BeginDrag(nodeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = nodeID
	c.over = ""
}

// Dragging returns the id of the picked-up node.
func (c *Controller) Dragging() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging, c.dragging != ""
}

// DragEnter marks folderID as the highlighted drop target.
func (c *Controller) DragEnter(folderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging != "" {
		c.over = folderID
	}
}

// DragLeave clears the highlight if it is on folderID.
func (c *Controller) DragLeave(folderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.over == folderID {
		c.over = ""
	}
}

// IsDragOver reports whether folderID should be highlighted.
func (c *Controller) IsDragOver(folderID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging != "" && c.over == folderID
}

// Cancel abandons the current drag.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = ""
	c.over = ""
}

// Drop ends the drag on targetFolderID. Dropping onto the node's current
// parent does nothing; otherwise exactly one move is issued.
// Reports whether a move was issued.
func (c *Controller) Drop(ctx context.Context, targetFolderID string) (bool, error) {
	c.mu.Lock()
	nodeID := c.dragging
	c.dragging = ""
	c.over = ""
	c.mu.Unlock()

	if nodeID == "" {
		return false, ErrNoDrag
	}

	node, ok := c.mover.State().Tree.Find(nodeID)
	if !ok {
		return false, model.ErrNodeNotFound
	}
	if node.Parent() == targetFolderID {
		return false, nil
	}

	return true, c.mover.MoveNode(ctx, nodeID, targetFolderID)
}
