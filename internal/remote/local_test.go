package remote_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/remote"
)

func TestLocal_Lifecycle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tree.json")
	l := remote.NewLocal(path)

	tree, err := l.FetchTree(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Len())

	work, err := l.CreateNode(ctx, model.NodeDraft{Kind: model.KindFolder, Title: "Work"})
	require.NoError(t, err)
	assert.NotEmpty(t, work.ID)
	assert.False(t, work.CreatedAt.IsZero())

	home, err := l.CreateNode(ctx, model.NodeDraft{Kind: model.KindFolder, Title: "Home"})
	require.NoError(t, err)

	docs, err := l.CreateNode(ctx, model.NodeDraft{
		Kind:     model.KindLink,
		Title:    "Docs",
		URL:      "https://docs.example.com",
		ParentID: model.StringPtr(work.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, work.ID, docs.Parent())

	title := "Reference"
	require.NoError(t, l.UpdateNode(ctx, docs.ID, model.NodePatch{Title: &title, ParentID: model.StringPtr(home.ID)}))

	// A fresh instance sees the persisted state.
	reopened := remote.NewLocal(path)
	tree, err = reopened.FetchTree(ctx)
	require.NoError(t, err)
	got, ok := tree.Find(docs.ID)
	require.True(t, ok)
	assert.Equal(t, "Reference", got.Title)
	assert.Equal(t, home.ID, got.Parent())

	require.NoError(t, reopened.DeleteNode(ctx, home.ID))
	tree, err = reopened.FetchTree(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
}

func TestLocal_Errors(t *testing.T) {
	ctx := context.Background()
	l := remote.NewLocal(filepath.Join(t.TempDir(), "tree.json"))

	_, err := l.CreateNode(ctx, model.NodeDraft{Kind: model.KindLink, Title: "x", ParentID: model.StringPtr("missing")})
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, l.DeleteNode(ctx, "missing"), model.ErrNotFound)

	title := "x"
	assert.ErrorIs(t, l.UpdateNode(ctx, "missing", model.NodePatch{Title: &title}), model.ErrNotFound)

	f, err := l.CreateNode(ctx, model.NodeDraft{Kind: model.KindFolder, Title: "f"})
	require.NoError(t, err)
	err = l.UpdateNode(ctx, f.ID, model.NodePatch{ParentID: model.StringPtr(f.ID)})
	assert.True(t, model.IsValidation(err))
}

func TestLocal_FailedSaveLeavesTreeUnchanged(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tree.json")
	l := remote.NewLocal(path)

	work, err := l.CreateNode(ctx, model.NodeDraft{Kind: model.KindFolder, Title: "Work"})
	require.NoError(t, err)
	home, err := l.CreateNode(ctx, model.NodeDraft{Kind: model.KindFolder, Title: "Home"})
	require.NoError(t, err)
	docs, err := l.CreateNode(ctx, model.NodeDraft{
		Kind:     model.KindLink,
		Title:    "Docs",
		URL:      "https://docs.example.com",
		ParentID: model.StringPtr(work.ID),
	})
	require.NoError(t, err)
	before, err := l.FetchTree(ctx)
	require.NoError(t, err)

	// A directory in place of the file makes every save fail.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	title := "Reference"
	err = l.UpdateNode(ctx, docs.ID, model.NodePatch{Title: &title, ParentID: model.StringPtr(home.ID)})
	require.Error(t, err)
	err = l.DeleteNode(ctx, work.ID)
	require.Error(t, err)

	after, err := l.FetchTree(ctx)
	require.NoError(t, err)
	assert.True(t, after.Equal(before))
	got, ok := after.Find(docs.ID)
	require.True(t, ok)
	assert.Equal(t, "Docs", got.Title)
	assert.Equal(t, work.ID, got.Parent())
}
