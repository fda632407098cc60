package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Underline(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			MarginBottom(1)
)

// Picker is a small TUI that filters links as the user types.
type Picker struct {
	tree      *model.Tree
	input     textinput.Model
	results   []search.Result
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over the links of tree, pre-filled with query.
func New(tree *model.Tree, query string) Picker {
	input := textinput.New()
	input.Placeholder = "search links"
	input.Prompt = "› "
	input.CharLimit = 100
	input.SetValue(query)
	input.Focus()

	p := Picker{
		tree:   tree,
		input:  input,
		width:  80,
		height: 24,
	}
	p.refresh()
	return p
}

// refresh recomputes the results for the current query.
func (p *Picker) refresh() {
	if strings.TrimSpace(p.input.Value()) == "" {
		p.results = search.All(p.tree)
	} else {
		p.results = search.Links(p.tree, p.input.Value())
	}
	if p.cursor >= len(p.results) {
		p.cursor = max(len(p.results)-1, 0)
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.results) == 0 {
				return p, nil
			}
			p.selected = true
			return p, tea.Quit

		case tea.KeyDown, tea.KeyCtrlN, tea.KeyCtrlJ:
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case tea.KeyUp, tea.KeyCtrlP, tea.KeyCtrlK:
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.cursor = 0
		p.refresh()
	}
	return p, cmd
}

// maxVisible is the number of results that fit on screen, two lines each.
func (p Picker) maxVisible() int {
	return max((p.height-6)/2, 1)
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Open link (%d)", len(p.results))))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	// Scroll window that keeps the cursor visible
	visible := p.maxVisible()
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := min(start+visible, len(p.results))

	for i := start; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := highlight(result.Node.Title, result.MatchedIndexes, style)
		detail := result.Node.URL
		if result.Folder != "" {
			detail = result.Folder + " · " + detail
		}

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, title))
		b.WriteString(fmt.Sprintf("   %s\n", dimStyle.Render(detail)))
	}

	if len(p.results) == 0 {
		b.WriteString(dimStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓: move  Enter: open  Esc: cancel"))

	return b.String()
}

// highlight renders title with the matched runes emphasized.
func highlight(title string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(title)
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Selected returns the chosen link, or false if the picker was cancelled.
func (p Picker) Selected() (model.Node, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return model.Node{}, false
	}
	return p.results[p.cursor].Node, true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
