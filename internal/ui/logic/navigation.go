package logic

// Navigator handles navigation and viewport management for a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, totalItems int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	n.totalItems = totalItems
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the current viewport offset
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = clamp(index, 0, n.totalItems-1)
	// Scrolling can add an indicator row, so settle the offset.
	for i := 0; i < 3; i++ {
		before := n.viewportOffset
		n.ensureSelectedVisible()
		if n.viewportOffset == before {
			break
		}
	}
	return n.selectedIndex, n.viewportOffset
}

// Move applies a named movement and returns the new selection and offset
func (n *Navigator) Move(direction string) (int, int) {
	page := n.viewportHeight - 2
	if page < 1 {
		page = 1
	}

	switch direction {
	case "up":
		return n.SetSelectedIndex(n.selectedIndex - 1)
	case "down":
		return n.SetSelectedIndex(n.selectedIndex + 1)
	case "pageup":
		return n.SetSelectedIndex(n.selectedIndex - page)
	case "pagedown":
		return n.SetSelectedIndex(n.selectedIndex + page)
	case "home":
		return n.SetSelectedIndex(0)
	case "end":
		return n.SetSelectedIndex(n.totalItems - 1)
	}
	return n.selectedIndex, n.viewportOffset
}

// AtEnd reports whether the last row is selected
func (n *Navigator) AtEnd() bool {
	return n.totalItems > 0 && n.selectedIndex == n.totalItems-1
}

// ensureSelectedVisible adjusts the viewport to keep the selected item
// visible, leaving room for the scroll indicators.
func (n *Navigator) ensureSelectedVisible() {
	totalItems := n.totalItems

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}

	needsTopIndicator := n.viewportOffset > 0
	needsBottomIndicator := n.viewportOffset+n.viewportHeight < totalItems

	if !needsBottomIndicator && needsTopIndicator {
		remainingItems := totalItems - n.viewportOffset
		if remainingItems > n.viewportHeight-1 {
			needsBottomIndicator = true
		}
	}

	effectiveHeight := n.viewportHeight
	if needsTopIndicator {
		effectiveHeight--
	}
	if needsBottomIndicator {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	if n.selectedIndex >= n.viewportOffset+effectiveHeight {
		newOffset := n.selectedIndex - effectiveHeight + 1

		maxPossibleOffset := totalItems - effectiveHeight
		if maxPossibleOffset < 0 {
			maxPossibleOffset = 0
		}
		if newOffset > maxPossibleOffset {
			newOffset = maxPossibleOffset
		}
		if newOffset < 0 {
			newOffset = 0
		}
		n.viewportOffset = newOffset
	}

	maxOffset := totalItems - effectiveHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
