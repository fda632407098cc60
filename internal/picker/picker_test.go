package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/hive/internal/model"
)

func testTree(t *testing.T) *model.Tree {
	t.Helper()
	tree := model.NewTree()
	nodes := []struct {
		parent string
		node   model.Node
	}{
		{"", model.Node{ID: "f1", Kind: model.KindFolder, Title: "Dev"}},
		{"f1", model.Node{ID: "b1", Kind: model.KindLink, Title: "GitHub", URL: "https://github.com"}},
		{"f1", model.Node{ID: "b2", Kind: model.KindLink, Title: "GitLab", URL: "https://gitlab.com"}},
		{"f1", model.Node{ID: "b3", Kind: model.KindLink, Title: "Hacker News", URL: "https://news.ycombinator.com"}},
	}
	for _, n := range nodes {
		if err := tree.InsertChild(n.parent, n.node); err != nil {
			t.Fatalf("insert %s: %v", n.node.ID, err)
		}
	}
	return tree
}

func update(p Picker, msg tea.Msg) Picker {
	m, _ := p.Update(msg)
	return m.(Picker)
}

func TestPicker_InitialState(t *testing.T) {
	p := New(testTree(t), "git")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
}

func TestPicker_EmptyQueryListsAllLinks(t *testing.T) {
	p := New(testTree(t), "")
	if len(p.results) != 3 {
		t.Errorf("expected 3 results, got %d", len(p.results))
	}
}

func TestPicker_TypingFilters(t *testing.T) {
	p := New(testTree(t), "")
	p = update(p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hn")})

	if len(p.results) != 1 {
		t.Fatalf("expected 1 result for 'hn', got %d", len(p.results))
	}
	if p.results[0].Node.ID != "b3" {
		t.Errorf("expected b3, got %s", p.results[0].Node.ID)
	}
}

func TestPicker_Navigate(t *testing.T) {
	p := New(testTree(t), "")

	p = update(p, tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}

	p = update(p, tea.KeyMsg{Type: tea.KeyCtrlP})
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}

	// Bounds
	p = update(p, tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", p.cursor)
	}
	for range 5 {
		p = update(p, tea.KeyMsg{Type: tea.KeyCtrlN})
	}
	if p.cursor != 2 {
		t.Errorf("expected cursor at last result, got %d", p.cursor)
	}
}

func TestPicker_Select(t *testing.T) {
	p := New(testTree(t), "")
	p = update(p, tea.KeyMsg{Type: tea.KeyDown})
	p = update(p, tea.KeyMsg{Type: tea.KeyEnter})

	node, ok := p.Selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	if node.ID != "b2" {
		t.Errorf("expected b2, got %s", node.ID)
	}
}

func TestPicker_EnterWithoutResultsDoesNothing(t *testing.T) {
	p := New(testTree(t), "zzzz")
	p = update(p, tea.KeyMsg{Type: tea.KeyEnter})

	if _, ok := p.Selected(); ok {
		t.Error("expected no selection")
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(testTree(t), "git")
	p = update(p, tea.KeyMsg{Type: tea.KeyEsc})

	if !p.Cancelled() {
		t.Error("expected picker to be cancelled")
	}
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection after cancel")
	}
}

func TestPicker_View(t *testing.T) {
	p := New(testTree(t), "")
	view := p.View()

	for _, want := range []string{"Open link (3)", "Dev · https://github.com", "Esc: cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
