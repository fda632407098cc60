package layout

// MinTilesPerRow is the smallest row a honeycomb ever has. A larger
// HexConfig.MinPerRow raises the floor; a smaller one is ignored.
const MinTilesPerRow = 3

// HexConfig holds the tile geometry of the honeycomb grid.
type HexConfig struct {
	// Size is the nominal edge-to-edge size of a hexagon tile.
	Size int

	// HorizontalOverlap is how far neighbouring tiles in a row overlap.
	HorizontalOverlap int

	// VerticalOverlap is how far consecutive rows overlap.
	// Rows interlock, so this is much larger than HorizontalOverlap.
	VerticalOverlap int

	// MinPerRow is the floor for tiles per row, even in narrow containers.
	MinPerRow int
}

// HexWidth is the horizontal step between tiles.
func (c HexConfig) HexWidth() int {
	return c.Size - c.HorizontalOverlap
}

// HexHeight is the vertical step between rows.
func (c HexConfig) HexHeight() int {
	return c.Size - c.VerticalOverlap
}

// DefaultConfig returns the pixel geometry: 120px tiles stepping 112 x 90.
func DefaultConfig() HexConfig {
	return HexConfig{
		Size:              120,
		HorizontalOverlap: 8,
		VerticalOverlap:   30,
		MinPerRow:         3,
	}
}

// TerminalConfig returns a geometry in character cells: tiles step 14 columns
// by 5 rows.
func TerminalConfig() HexConfig {
	return HexConfig{
		Size:              16,
		HorizontalOverlap: 2,
		VerticalOverlap:   11,
		MinPerRow:         3,
	}
}
