package layout

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestPerRow(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"wide container", 800, 7},      // 800/112 = 7.14
		{"exact fit", 1120, 10},         // 1120/112 = 10
		{"narrow enforces min", 200, 3}, // 200/112 = 1, min 3
		{"zero width", 0, 3},            // min 3
		{"negative width", -50, 3},      // min 3
		{"just below a tile", 111, 3},   // 0, min 3
		{"four tiles", 4*112 + 111, 4},  // 4.99
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerRow(tt.width, cfg)
			if got != tt.want {
				t.Errorf("PerRow(%d) = %d, want %d", tt.width, got, tt.want)
			}
		})
	}
}

func TestPerRow_ConfiguredMinimum(t *testing.T) {
	cfg := DefaultConfig()

	cfg.MinPerRow = 1
	assert.Equal(t, PerRow(100, cfg), 3)
	assert.Equal(t, ComputePositions(5, 100, cfg).PerRow, 3)

	cfg.MinPerRow = 0
	assert.Equal(t, PerRow(0, cfg), 3)

	cfg.MinPerRow = 5
	assert.Equal(t, PerRow(200, cfg), 5)
	assert.Equal(t, PerRow(800, cfg), 7)
}

func TestComputePositions_SevenItemsIn800(t *testing.T) {
	grid := ComputePositions(7, 800, DefaultConfig())

	assert.Equal(t, grid.PerRow, 7)
	assert.Equal(t, len(grid.Positions), 8)

	// Slot 5 sits in the first row, the add slot wraps to the offset second row.
	assert.Equal(t, grid.Positions[5], Position{Left: 560, Top: 0})
	assert.Equal(t, grid.AddSlot(), Position{Left: 56, Top: 90})
	assert.Assert(t, grid.Positions[5] != grid.Positions[7])

	// ceil(8/7) * 90 + 30
	assert.Equal(t, grid.Height, 210)
	assert.Equal(t, grid.Rows(), 2)
	assert.Equal(t, len(grid.Items()), 7)
}

func TestComputePositions_Formula(t *testing.T) {
	cfg := DefaultConfig()
	grid := ComputePositions(10, 400, cfg) // perRow 3

	assert.Equal(t, grid.PerRow, 3)
	for i, p := range grid.Positions {
		row, col := i/3, i%3
		wantLeft := col * 112
		if row%2 == 1 {
			wantLeft += 56
		}
		if p.Left != wantLeft || p.Top != row*90 {
			t.Errorf("slot %d = %+v, want {%d %d}", i, p, wantLeft, row*90)
		}
	}
	// 11 slots / 3 = 4 rows
	assert.Equal(t, grid.Height, 4*90+30)
}

func TestComputePositions_Empty(t *testing.T) {
	grid := ComputePositions(0, 800, DefaultConfig())

	assert.Equal(t, len(grid.Positions), 1)
	assert.Equal(t, grid.AddSlot(), Position{})
	assert.Equal(t, grid.Height, 120)
	assert.Equal(t, len(grid.Items()), 0)
}

func TestComputePositions_NoCollisions(t *testing.T) {
	cfg := DefaultConfig()
	for _, width := range []int{0, 150, 336, 500, 800, 1920} {
		for count := 0; count < 40; count++ {
			grid := ComputePositions(count, width, cfg)
			assert.Assert(t, grid.PerRow >= 3)

			seen := map[Position]int{}
			for i, p := range grid.Positions {
				if prev, ok := seen[p]; ok {
					t.Fatalf("width %d count %d: slots %d and %d collide at %+v", width, count, prev, i, p)
				}
				seen[p] = i
			}
		}
	}
}

func TestComputePositions_Deterministic(t *testing.T) {
	a := ComputePositions(23, 777, DefaultConfig())
	b := ComputePositions(23, 777, DefaultConfig())
	assert.DeepEqual(t, a, b)
}

func TestWidth(t *testing.T) {
	// 3 tiles, half-tile shift, plus the overlap of the last tile.
	assert.Equal(t, Width(3, DefaultConfig()), 3*112+56+8)
}

func TestTerminalConfig(t *testing.T) {
	cfg := TerminalConfig()
	assert.Equal(t, cfg.HexWidth(), 14)
	assert.Equal(t, cfg.HexHeight(), 5)
	assert.Equal(t, PerRow(80, cfg), 5)
}
