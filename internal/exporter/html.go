package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/hive/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/hive-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("hive-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the tree in Netscape bookmark HTML format.
// Widgets have no url and are left out.
func ExportHTML(tree *model.Tree) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeItems(&b, tree, "", 1)

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// WriteFile exports the tree to path, creating parent directories.
func WriteFile(path string, tree *model.Tree) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(ExportHTML(tree)), 0644)
}

// writeItems writes the children of parentID in tree order.
func writeItems(b *strings.Builder, tree *model.Tree, parentID string, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, node := range tree.Children(parentID) {
		switch node.Kind {
		case model.KindFolder:
			fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(node.Title))
			fmt.Fprintf(b, "%s<DL><p>\n", prefix)
			writeItems(b, tree, node.ID, indent+1)
			fmt.Fprintf(b, "%s</DL><p>\n", prefix)

		case model.KindLink:
			fmt.Fprintf(b, "%s<DT><A HREF=\"%s\"%s>%s</A>\n",
				prefix,
				html.EscapeString(node.URL),
				addDate(node.CreatedAt),
				html.EscapeString(node.Title),
			)
		}
	}
}

// addDate renders the ADD_DATE attribute, or nothing for an unknown time.
func addDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf(" ADD_DATE=\"%d\"", t.Unix())
}
