// Package layout computes honeycomb tile positions for a container width.
package layout

// Position is the top-left corner of a tile.
type Position struct {
	Left int
	Top  int
}

// Grid is a computed layout. Positions holds one entry per item plus a
// trailing slot for the "add" tile.
type Grid struct {
	PerRow    int
	Positions []Position
	Height    int
}

// AddSlot returns the position of the trailing "add" tile.
func (g Grid) AddSlot() Position {
	return g.Positions[len(g.Positions)-1]
}

// Items returns the positions of the real items, without the add slot.
func (g Grid) Items() []Position {
	return g.Positions[:len(g.Positions)-1]
}

// Rows returns the number of rows, add slot included.
func (g Grid) Rows() int {
	return ceilDiv(len(g.Positions), g.PerRow)
}

// PerRow returns how many tiles fit in containerWidth, never fewer than
// MinTilesPerRow or cfg.MinPerRow.
func PerRow(containerWidth int, cfg HexConfig) int {
	perRow := 0
	if w := cfg.HexWidth(); w > 0 && containerWidth > 0 {
		perRow = containerWidth / w
	}
	return max(perRow, MinTilesPerRow, cfg.MinPerRow)
}

// ComputePositions lays out itemCount tiles plus the add slot in a container
// of the given width.
func ComputePositions(itemCount, containerWidth int, cfg HexConfig) Grid {
	return Layout(itemCount, PerRow(containerWidth, cfg), cfg)
}

// Layout places itemCount tiles plus the add slot using a fixed perRow.
// Odd rows are shifted right by half a tile so rows interlock.
func Layout(itemCount, perRow int, cfg HexConfig) Grid {
	if itemCount < 0 {
		itemCount = 0
	}
	if perRow < 1 {
		perRow = 1
	}

	hexWidth := cfg.HexWidth()
	hexHeight := cfg.HexHeight()

	slots := itemCount + 1
	positions := make([]Position, slots)
	for i := range slots {
		row := i / perRow
		col := i % perRow
		left := col * hexWidth
		if row%2 == 1 {
			left += hexWidth / 2
		}
		positions[i] = Position{Left: left, Top: row * hexHeight}
	}

	return Grid{
		PerRow:    perRow,
		Positions: positions,
		Height:    ceilDiv(slots, perRow)*hexHeight + cfg.VerticalOverlap,
	}
}

// Width returns the horizontal extent of a grid with perRow tiles, including
// the half-tile shift of odd rows.
func Width(perRow int, cfg HexConfig) int {
	return perRow*cfg.HexWidth() + cfg.HexWidth()/2 + cfg.HorizontalOverlap
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
