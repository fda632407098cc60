// Package screen holds the terminal geometry of the dashboard: chrome
// sizes, modal widths, input limits, and text fitting helpers.
package screen

// Config holds all screen-related configuration values.
type Config struct {
	Frame FrameConfig
	Tile  TileConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// FrameConfig describes the chrome around the honeycomb grid.
type FrameConfig struct {
	// Padding is the horizontal app padding on each side.
	Padding int

	// HeaderLines: top padding (1) + folder tabs (1) + breadcrumb (1) + gap (1) = 4
	HeaderLines int

	// FooterLines: message (1) + hints (1) + gap (1) = 3
	FooterLines int

	// MinGridHeight is the floor for the grid viewport, in lines.
	MinGridHeight int
}

// TileConfig describes how a single hexagon is drawn.
type TileConfig struct {
	// Width and Height of the drawn hexagon, in cells. Must fit inside the
	// honeycomb step so neighbours don't overwrite each other.
	Width  int
	Height int

	// LabelWidth is the room for text on the two inner lines.
	LabelWidth int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// ListMaxVisible: max rows shown in the move target list.
	ListMaxVisible int

	// Help overlay column widths.
	HelpLeftColumnWidth  int
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit       int
	FolderTitleCharLimit int
	URLCharLimit         int
	SourceCharLimit      int

	// StandardWidth is the display width of every modal input.
	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default screen configuration.
func DefaultConfig() Config {
	return Config{
		Frame: FrameConfig{
			Padding:       2,
			HeaderLines:   4,
			FooterLines:   3,
			MinGridHeight: 5,
		},
		Tile: TileConfig{
			Width:      12,
			Height:     5,
			LabelWidth: 10,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  50,
			MinWidth:             40,
			MaxWidth:             72,
			ListMaxVisible:       8,
			HelpLeftColumnWidth:  22,
			HelpRightColumnWidth: 26,
		},
		Input: InputConfig{
			TitleCharLimit:       100,
			FolderTitleCharLimit: 50,
			URLCharLimit:         500,
			SourceCharLimit:      100,
			StandardWidth:        40,
		},
		Text: TextConfig{
			Ellipsis: "…",
		},
	}
}
