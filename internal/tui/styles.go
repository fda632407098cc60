package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Tab        lipgloss.Style
	TabActive  lipgloss.Style
	Breadcrumb lipgloss.Style
	Badge      lipgloss.Style // loading / offline indicators next to the tabs

	Tile         lipgloss.Style // link tiles
	TileFolder   lipgloss.Style
	TileWidget   lipgloss.Style
	TileAdd      lipgloss.Style
	TileSelected lipgloss.Style

	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	DropTarget   lipgloss.Style // folder the dragged node would land in
	URL          lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "h/l")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "confirm", "move")

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent, amber for folders.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	honey := lipgloss.AdaptiveColor{Light: "#9A6A10", Dark: "#D7A048"}   // folders
	dark := lipgloss.Color("#1A1A1A")

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Tab: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(dark).
			Background(accent).
			Bold(true).
			Padding(0, 1),

		Breadcrumb: lipgloss.NewStyle().
			Foreground(subtle),

		Badge: lipgloss.NewStyle().
			Foreground(honey).
			PaddingLeft(2),

		Tile: lipgloss.NewStyle().
			Foreground(primary),

		TileFolder: lipgloss.NewStyle().
			Foreground(honey),

		TileWidget: lipgloss.NewStyle().
			Foreground(accent),

		TileAdd: lipgloss.NewStyle().
			Foreground(subtle),

		TileSelected: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(dark),

		DropTarget: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(honey).
			Foreground(dark),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(accent),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
	}
}
