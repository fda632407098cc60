package tui

import "strings"

// paint selects the style of a canvas cell.
type paint int

const (
	paintNone paint = iota
	paintLink
	paintFolder
	paintWidget
	paintAdd
	paintSelected
)

type cell struct {
	r rune
	p paint
}

// canvas is a fixed-size grid of styled runes. Tiles are drawn onto it and
// it is then rendered line by line, one style run at a time.
type canvas struct {
	width  int
	height int
	cells  [][]cell
}

func newCanvas(width, height int) *canvas {
	cells := make([][]cell, height)
	for y := range cells {
		cells[y] = make([]cell, width)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' '}
		}
	}
	return &canvas{width: width, height: height, cells: cells}
}

// text writes s at (x, y). Runes outside the canvas are dropped.
// Spaces keep whatever is underneath unless opaque is set.
func (c *canvas) text(x, y int, s string, p paint, opaque bool) {
	if y < 0 || y >= c.height {
		return
	}
	for _, r := range s {
		if x >= 0 && x < c.width && (opaque || r != ' ') {
			c.cells[y][x] = cell{r: r, p: p}
		}
		x++
	}
}

// lines renders rows [from, to) with render applied to each style run.
func (c *canvas) lines(from, to int, render func(paint, string) string) []string {
	from = max(from, 0)
	to = min(to, c.height)

	out := make([]string, 0, max(to-from, 0))
	for y := from; y < to; y++ {
		var line strings.Builder
		var run strings.Builder
		current := paintNone

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == paintNone {
				line.WriteString(run.String())
			} else {
				line.WriteString(render(current, run.String()))
			}
			run.Reset()
		}

		for _, cl := range c.cells[y] {
			if cl.p != current {
				flush()
				current = cl.p
			}
			run.WriteRune(cl.r)
		}
		flush()
		out = append(out, strings.TrimRight(line.String(), " "))
	}
	return out
}
