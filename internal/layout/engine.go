package layout

// Engine caches the tiles-per-row for the last container width, so item
// additions and removals reuse it and only a resize recomputes it.
type Engine struct {
	cfg    HexConfig
	width  int
	perRow int
}

// NewEngine creates an Engine. Until the first Resize it uses the minimum row.
func NewEngine(cfg HexConfig) *Engine {
	return &Engine{cfg: cfg, width: -1, perRow: PerRow(0, cfg)}
}

// Config returns the tile geometry.
func (e *Engine) Config() HexConfig {
	return e.cfg
}

// Resize records a new container width. Returns true if tiles per row changed.
func (e *Engine) Resize(containerWidth int) bool {
	if containerWidth == e.width {
		return false
	}
	e.width = containerWidth
	perRow := PerRow(containerWidth, e.cfg)
	changed := perRow != e.perRow
	e.perRow = perRow
	return changed
}

// PerRow returns the current tiles per row.
func (e *Engine) PerRow() int {
	return e.perRow
}

// Layout positions itemCount tiles with the current tiles per row.
func (e *Engine) Layout(itemCount int) Grid {
	return Layout(itemCount, e.perRow, e.cfg)
}
