package tui_test

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestView_EmptyTree(t *testing.T) {
	f := newFixture(t, nil)
	view := f.app().View()

	assert.Assert(t, is.Contains(view, "hive"))
	assert.Assert(t, is.Contains(view, "No folders yet. Press A to create one."))
}

func TestView_TabsAndTiles(t *testing.T) {
	f := seeded(t)
	view := f.app().View()

	for _, want := range []string{
		"1 Dev", "2 News",                          // tabs
		"GitHub", "github.com", "GitLab", "go.dev", // tiles
		"add",                                      // the add tile
		"Enter:open",
	} {
		assert.Assert(t, is.Contains(view, want))
	}
	assert.Assert(t, !strings.Contains(view, "Hacker News"), "inactive folder's links are hidden")
}

func TestView_Modals(t *testing.T) {
	f := seeded(t)
	a := f.app()

	tests := []struct {
		keys []string
		want string
	}{
		{[]string{"a"}, "Add Link"},
		{[]string{"A"}, "New Folder"},
		{[]string{"w"}, "Add Widget"},
		{[]string{"e"}, "Edit Link"},
		{[]string{"E"}, "Rename Folder"},
		{[]string{"m"}, "Move Item"},
		{[]string{"?"}, "add widget"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := press(a, tt.keys...)
			assert.Assert(t, is.Contains(got.View(), tt.want))
		})
	}
}

func TestView_FolderDeleteWarnsAboutContents(t *testing.T) {
	f := seeded(t)
	a := press(f.app(), "D")

	assert.Assert(t, is.Contains(a.View(), "(3 items)"))
}

func TestView_Search(t *testing.T) {
	f := seeded(t)
	a := press(f.app(), "/")

	view := a.View()
	assert.Assert(t, is.Contains(view, "Open link (4)"))
	assert.Assert(t, is.Contains(view, "Hacker News"))
}
