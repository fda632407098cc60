package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/hive/internal/model"
)

// writeConfig points every path of the config into a temp dir.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`backend:
  local_path: %s
cache:
  backend: file
  path: %s
logging:
  level: info
  file: %s
`, filepath.Join(dir, "tree.json"), filepath.Join(dir, "cache.json"), filepath.Join(dir, "hive.log"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, configFile string, args ...string) (string, error) {
	t.Helper()

	// Flags are package state and survive between executions
	showIDs, rmYes, openPrint, openFirst, checkPrune, checkYes, verbose = false, false, false, false, false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", configFile}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, configFile string, args ...string) string {
	t.Helper()
	out, err := run(t, configFile, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLI_EditingRoundTrip(t *testing.T) {
	cfgFile := writeConfig(t)

	assert.Contains(t, mustRun(t, cfgFile, "add", "folder", "Dev"), "Created folder Dev")
	mustRun(t, cfgFile, "add", "folder", "News")
	assert.Contains(t, mustRun(t, cfgFile, "add", "link", "dev", "GitHub", "github.com"), "Added GitHub https://github.com to Dev")
	assert.Contains(t, mustRun(t, cfgFile, "add", "widget", "News", "Trains"), "[LRT]")

	out := mustRun(t, cfgFile, "tree")
	assert.Contains(t, out, "Dev/ (1)")
	assert.Contains(t, out, "GitHub  https://github.com")
	assert.Contains(t, out, "Trains [LRT]")
	assert.Contains(t, out, "● News/", "the last created folder is active")

	mustRun(t, cfgFile, "rename", "GitHub", "GitHub Home")
	mustRun(t, cfgFile, "edit", "GitHub Home", "GitHub Home", "https://github.com/home")
	assert.Contains(t, mustRun(t, cfgFile, "tree"), "GitHub Home  https://github.com/home")

	assert.Contains(t, mustRun(t, cfgFile, "move", "GitHub Home", "News"), "Moved GitHub Home to News")
	assert.Contains(t, mustRun(t, cfgFile, "move", "GitHub Home", "News"), "already in News")

	_, err := run(t, cfgFile, "rename", "Trains", "Buses")
	assert.ErrorContains(t, err, "cannot rename a widget")

	_, err = run(t, cfgFile, "rm", "News")
	assert.ErrorContains(t, err, "and 2 items inside; pass --yes")

	assert.Contains(t, mustRun(t, cfgFile, "rm", "News", "--yes"), `Deleted folder "News"`)
	out = mustRun(t, cfgFile, "tree")
	assert.NotContains(t, out, "News")
	assert.Contains(t, out, "● Dev/", "remaining folder becomes active")
}

func TestCLI_ValidationErrors(t *testing.T) {
	cfgFile := writeConfig(t)
	mustRun(t, cfgFile, "add", "folder", "Dev")

	_, err := run(t, cfgFile, "add", "link", "Dev", "  ", "go.dev")
	assert.ErrorContains(t, err, "title: is required")

	_, err = run(t, cfgFile, "add", "link", "Nope", "Go", "go.dev")
	assert.ErrorIs(t, err, errNoMatch)

	_, err = run(t, cfgFile, "add", "widget", "Dev", "Clock", "CLOCK")
	assert.ErrorContains(t, err, "unknown widget type")
}

func TestCLI_ImportExport(t *testing.T) {
	cfgFile := writeConfig(t)
	dir := t.TempDir()

	input := filepath.Join(dir, "bookmarks.html")
	require.NoError(t, os.WriteFile(input, []byte(`<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Dev</H3>
    <DL><p>
        <DT><A HREF="https://go.dev">Go</A>
        <DT><A HREF="https://go.dev">Go again</A>
    </DL><p>
    <DT><A HREF="https://example.com">Loose</A>
</DL><p>`), 0644))

	out := mustRun(t, cfgFile, "import", input)
	assert.Contains(t, out, "Imported 2 links, 2 new folders")
	assert.Contains(t, out, "(1 skipped)")

	output := filepath.Join(dir, "export.html")
	assert.Contains(t, mustRun(t, cfgFile, "export", output), "Exported 2 links")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<A HREF="https://go.dev"`)
	assert.Contains(t, string(data), "<H3>Imported</H3>")
}

func TestCLI_OpenPrint(t *testing.T) {
	cfgFile := writeConfig(t)
	mustRun(t, cfgFile, "add", "folder", "Dev")
	mustRun(t, cfgFile, "add", "link", "Dev", "GitHub", "github.com")

	out := mustRun(t, cfgFile, "open", "gith", "--print")
	assert.Equal(t, "https://github.com\n", out)

	_, err := run(t, cfgFile, "open", "zzz")
	assert.ErrorIs(t, err, errNoMatch)
}

func TestCLI_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfgFile := writeConfig(t)
	mustRun(t, cfgFile, "add", "folder", "Dev")
	mustRun(t, cfgFile, "add", "link", "Dev", "Alive", srv.URL+"/ok")
	mustRun(t, cfgFile, "add", "link", "Dev", "Gone", srv.URL+"/gone")

	out := mustRun(t, cfgFile, "check")
	assert.Contains(t, out, "✗ dead 404  Gone")
	assert.Contains(t, out, "2 links: 1 healthy, 1 dead, 0 unreachable")

	_, err := run(t, cfgFile, "check", "--prune")
	assert.ErrorContains(t, err, "pass --yes")

	assert.Contains(t, mustRun(t, cfgFile, "check", "--prune", "--yes"), "Deleted 1 dead links")
	assert.NotContains(t, mustRun(t, cfgFile, "tree"), "Gone")
}

func TestCLI_Layout(t *testing.T) {
	cfgFile := writeConfig(t)

	out := mustRun(t, cfgFile, "layout", "7", "600")
	assert.Contains(t, out, "per row 5, rows 2, size 624x210")
	assert.Contains(t, out, "   5  left    56  top    90")
	assert.Contains(t, out, "   +  left   280  top    90")

	_, err := run(t, cfgFile, "layout", "x", "600")
	assert.ErrorContains(t, err, "count must be")
}

func TestResolve(t *testing.T) {
	tree := model.NewTree()
	require.NoError(t, tree.InsertChild("", model.Node{ID: "f1", Kind: model.KindFolder, Title: "Dev"}))
	require.NoError(t, tree.InsertChild("", model.Node{ID: "f2", Kind: model.KindFolder, Title: "News"}))
	require.NoError(t, tree.InsertChild("f1", model.Node{ID: "l1", Kind: model.KindLink, Title: "Docs", URL: "https://go.dev"}))
	require.NoError(t, tree.InsertChild("f2", model.Node{ID: "l2", Kind: model.KindLink, Title: "docs", URL: "https://news.dev"}))
	require.NoError(t, tree.InsertChild("f2", model.Node{ID: "l3", Kind: model.KindLink, Title: "Dev", URL: "https://dev.to"}))

	tests := []struct {
		name    string
		ref     string
		folders bool
		wantID  string
		wantErr error
	}{
		{name: "by id", ref: "l2", wantID: "l2"},
		{name: "by title ignoring case", ref: "news", wantID: "f2"},
		{name: "ambiguous title", ref: "DOCS", wantErr: errAmbiguous},
		{name: "missing", ref: "nope", wantErr: errNoMatch},
		{name: "folder wins over link of same title", ref: "Dev", folders: true, wantID: "f1"},
		{name: "link id is not a folder", ref: "l1", folders: true, wantErr: errNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n model.Node
			var err error
			if tt.folders {
				n, err = resolveFolder(tree, tt.ref)
			} else {
				n, err = resolveNode(tree, tt.ref)
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, n.ID)
		})
	}
}
