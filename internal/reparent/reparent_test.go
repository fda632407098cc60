package reparent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/reparent"
	"github.com/nikbrunner/hive/internal/store"
)

type move struct{ id, target string }

type fakeMover struct {
	tree  *model.Tree
	moves []move
	err   error
}

func (f *fakeMover) State() store.State {
	return store.State{Tree: f.tree.Clone()}
}

func (f *fakeMover) MoveNode(_ context.Context, id, target string) error {
	f.moves = append(f.moves, move{id, target})
	return f.err
}

func newMover(t *testing.T) *fakeMover {
	t.Helper()
	tree := model.NewTree()
	require.NoError(t, tree.InsertChild("", model.Node{ID: "f1", Kind: model.KindFolder, Title: "Work"}))
	require.NoError(t, tree.InsertChild("", model.Node{ID: "f2", Kind: model.KindFolder, Title: "Home"}))
	require.NoError(t, tree.InsertChild("f1", model.Node{ID: "l1", Kind: model.KindLink, Title: "Docs", URL: "https://docs.example.com"}))
	return &fakeMover{tree: tree}
}

func TestDrop_IssuesExactlyOneMove(t *testing.T) {
	m := newMover(t)
	c := reparent.New(m)

	c.BeginDrag("l1")
	moved, err := c.Drop(context.Background(), "f2")
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []move{{"l1", "f2"}}, m.moves)

	_, dragging := c.Dragging()
	assert.False(t, dragging)
}

func TestDrop_OntoCurrentParentIsNoop(t *testing.T) {
	m := newMover(t)
	c := reparent.New(m)

	c.BeginDrag("l1")
	moved, err := c.Drop(context.Background(), "f1")
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, m.moves)
}

func TestDrop_WithoutDrag(t *testing.T) {
	c := reparent.New(newMover(t))
	_, err := c.Drop(context.Background(), "f2")
	assert.ErrorIs(t, err, reparent.ErrNoDrag)
}

func TestDrop_UnknownNode(t *testing.T) {
	m := newMover(t)
	c := reparent.New(m)

	c.BeginDrag("ghost")
	_, err := c.Drop(context.Background(), "f2")
	assert.ErrorIs(t, err, model.ErrNodeNotFound)
	assert.Empty(t, m.moves)
}

func TestDrop_PropagatesMoveError(t *testing.T) {
	m := newMover(t)
	m.err = errors.New("boom")
	c := reparent.New(m)

	c.BeginDrag("l1")
	moved, err := c.Drop(context.Background(), "f2")
	assert.True(t, moved)
	assert.EqualError(t, err, "boom")
}

func TestDragOverIsVisualOnly(t *testing.T) {
	m := newMover(t)
	c := reparent.New(m)

	// Hovering without a drag does nothing.
	c.DragEnter("f2")
	assert.False(t, c.IsDragOver("f2"))

	c.BeginDrag("l1")
	c.DragEnter("f2")
	assert.True(t, c.IsDragOver("f2"))
	assert.False(t, c.IsDragOver("f1"))

	c.DragLeave("f1")
	assert.True(t, c.IsDragOver("f2"))
	c.DragLeave("f2")
	assert.False(t, c.IsDragOver("f2"))

	c.DragEnter("f2")
	c.Cancel()
	assert.False(t, c.IsDragOver("f2"))
	assert.Empty(t, m.moves)
}

var _ reparent.Mover = (*store.Store)(nil)

func TestDrop_FolderIntoFolder(t *testing.T) {
	m := newMover(t)
	c := reparent.New(m)
	c.BeginDrag("f2")
	moved, err := c.Drop(context.Background(), "f1")
	require.NoError(t, err)
	assert.True(t, moved)
}
