package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nikbrunner/hive/internal/layout"
	"github.com/nikbrunner/hive/internal/model"
	"github.com/nikbrunner/hive/internal/tui/screen"
)

// tile is what a single hexagon shows.
type tile struct {
	title    string
	subtitle string
	paint    paint
}

// hexRows draws a hexagon of the given width; height is fixed at five rows.
//
//	  ________
//	 /        \
//	/  title   \
//	\ subtitle /
//	 \________/
func hexRows(width int) [5]string {
	inner := width - 2
	return [5]string{
		"  " + strings.Repeat("_", inner-2) + "  ",
		" /" + strings.Repeat(" ", inner-2) + "\\ ",
		"/" + strings.Repeat(" ", inner) + "\\",
		"\\" + strings.Repeat(" ", inner) + "/",
		" \\" + strings.Repeat("_", inner-2) + "/ ",
	}
}

// tileFor describes a node as a tile.
func tileFor(tree *model.Tree, n model.Node) tile {
	switch n.Kind {
	case model.KindFolder:
		count := len(tree.Children(n.ID))
		sub := fmt.Sprintf("%d items", count)
		if count == 1 {
			sub = "1 item"
		}
		return tile{title: n.Title, subtitle: sub, paint: paintFolder}
	case model.KindWidget:
		return tile{title: n.Title, subtitle: "[" + n.WidgetType + "]", paint: paintWidget}
	default:
		return tile{title: n.Title, subtitle: host(n.URL), paint: paintLink}
	}
}

// host returns the host of rawURL without a leading www.
func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// drawGrid draws items plus the trailing add tile at the positions of grid.
// The tile at index selected is highlighted.
func drawGrid(tree *model.Tree, items []model.Node, grid layout.Grid, selected int, cfg screen.Config) *canvas {
	tileCfg := cfg.Tile
	width, height := 0, 0
	for _, pos := range grid.Positions {
		width = max(width, pos.Left+tileCfg.Width)
		height = max(height, pos.Top+tileCfg.Height)
	}

	c := newCanvas(width, height)
	rows := hexRows(tileCfg.Width)

	for i, pos := range grid.Positions {
		t := tile{title: "+", subtitle: "add", paint: paintAdd}
		if i < len(items) {
			t = tileFor(tree, items[i])
		}
		p := t.paint
		if i == selected {
			p = paintSelected
		}

		for dy, row := range rows {
			c.text(pos.Left, pos.Top+dy, row, p, false)
		}
		labelX := pos.Left + (tileCfg.Width-tileCfg.LabelWidth)/2
		c.text(labelX, pos.Top+2, screen.Center(t.title, tileCfg.LabelWidth, cfg.Text), p, true)
		c.text(labelX, pos.Top+3, screen.Center(t.subtitle, tileCfg.LabelWidth, cfg.Text), p, true)
	}
	return c
}
