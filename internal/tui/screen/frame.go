package screen

// GridWidth computes the columns available to the honeycomb grid.
func GridWidth(terminalWidth int, cfg FrameConfig) int {
	width := terminalWidth - 2*cfg.Padding
	if width < 1 {
		return 1
	}
	return width
}

// GridHeight computes the lines available to the honeycomb grid.
// Returns at least MinGridHeight.
func GridHeight(terminalHeight int, cfg FrameConfig) int {
	height := terminalHeight - cfg.HeaderLines - cfg.FooterLines
	if height < cfg.MinGridHeight {
		return cfg.MinGridHeight
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected line visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
