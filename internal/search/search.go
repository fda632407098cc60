package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/hive/internal/model"
)

// Result is a fuzzy match on a link.
type Result struct {
	Node           model.Node
	Folder         string // titles of the containing folders, joined by " / "
	MatchedIndexes []int // indexes into Node.Title
	Score          int
}

// linkTitles implements fuzzy.Source over link titles.
type linkTitles []model.Node

func (l linkTitles) String(i int) string {
	return l[i].Title
}

func (l linkTitles) Len() int {
	return len(l)
}

// Links fuzzy-matches query against the titles of every link in tree.
// Results are sorted by score, best first. An empty query matches nothing.
func Links(tree *model.Tree, query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	links := linkTitles(tree.Links())
	matches := fuzzy.FindFrom(query, links)

	results := make([]Result, len(matches))
	for i, m := range matches {
		node := links[m.Index]
		results[i] = Result{
			Node:           node,
			Folder:         FolderPath(tree, node.ID),
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// All returns every link in document order as unscored results.
func All(tree *model.Tree) []Result {
	links := tree.Links()
	results := make([]Result, len(links))
	for i, node := range links {
		results[i] = Result{Node: node, Folder: FolderPath(tree, node.ID)}
	}
	return results
}

// FolderPath returns the titles of the folders containing id.
func FolderPath(tree *model.Tree, id string) string {
	path := tree.Path(id)
	if len(path) <= 1 {
		return ""
	}
	titles := make([]string, 0, len(path)-1)
	for _, n := range path[:len(path)-1] {
		titles = append(titles, n.Title)
	}
	return strings.Join(titles, " / ")
}
