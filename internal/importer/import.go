package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/store"
)

// UnsortedFolder receives links that sit outside of any folder in the file.
const UnsortedFolder = "Imported"

// Creator is the part of the store an import writes through.
type Creator interface {
	State() store.State
	CreateFolder(ctx context.Context, title string) (model.Node, error)
	CreateLink(ctx context.Context, title, rawURL, folderID string) (model.Node, error)
}

// Summary reports what an import did.
type Summary struct {
	Folders int // folders created
	Links   int // links created
	Skipped int // duplicates and invalid entries
}

// Import merges doc into the tree behind c. Every parsed folder maps to a
// top-level folder, reusing an existing one with the same title. Links in
// nested folders are flattened into their top-level ancestor. A link whose
// url already exists in the target folder is skipped.
func Import(ctx context.Context, c Creator, doc Document, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	imp := &importRun{creator: c, logger: logger.With("component", "importer")}

	if len(doc.Links) > 0 {
		if err := imp.folder(ctx, UnsortedFolder, doc.Links); err != nil {
			return imp.summary, err
		}
	}
	for _, f := range doc.Folders {
		if err := imp.folder(ctx, f.Title, flatten(f)); err != nil {
			return imp.summary, err
		}
	}
	return imp.summary, nil
}

type importRun struct {
	creator Creator
	logger  *slog.Logger
	summary Summary
}

func (r *importRun) folder(ctx context.Context, title string, links []Link) error {
	title = truncate(title, model.MaxFolderTitleLength)
	tree := r.creator.State().Tree

	folderID := ""
	for _, f := range tree.TopLevelFolders() {
		if f.Title == title {
			folderID = f.ID
			break
		}
	}
	if folderID == "" {
		node, err := r.creator.CreateFolder(ctx, title)
		if err != nil {
			return fmt.Errorf("creating folder %q: %w", title, err)
		}
		folderID = node.ID
		r.summary.Folders++
	}

	// Seed with what the folder already holds
	seen := make(map[string]bool)
	for _, child := range r.creator.State().Tree.Children(folderID) {
		if child.URL != "" {
			seen[child.URL] = true
		}
	}

	for _, l := range links {
		u, err := model.NormalizeURL(l.URL)
		if err != nil {
			r.logger.Debug("skipping link", "url", l.URL, "error", err)
			r.summary.Skipped++
			continue
		}
		if seen[u] {
			r.summary.Skipped++
			continue
		}

		if _, err := r.creator.CreateLink(ctx, truncate(l.Title, model.MaxTitleLength), u, folderID); err != nil {
			if model.IsValidation(err) {
				r.logger.Debug("skipping link", "url", u, "error", err)
				r.summary.Skipped++
				continue
			}
			return fmt.Errorf("creating link %q: %w", l.Title, err)
		}
		seen[u] = true
		r.summary.Links++
	}
	return nil
}

// flatten collects the links of f and all of its subfolders, depth first.
func flatten(f *Folder) []Link {
	links := append([]Link(nil), f.Links...)
	for _, sub := range f.Folders {
		links = append(links, flatten(sub)...)
	}
	return links
}

// truncate trims s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
