package viewer

import "github.com/Zachdehooge/phenology-viewer/internal/selection"

// Display is the visible state of the two map widgets. The mode is stored
// explicitly instead of being inferred from widget visibility.
type Display struct {
	Mode           selection.MapType
	LeafletVisible bool
	StaticVisible  bool
}

// NewDisplay returns the state the page starts in: static map shown.
func NewDisplay() *Display {
	return &Display{
		Mode:           selection.Static,
		LeafletVisible: false,
		StaticVisible:  true,
	}
}

// Toggle flips both widgets and the mode.
func (d *Display) Toggle() {
	d.LeafletVisible = !d.LeafletVisible
	d.StaticVisible = !d.StaticVisible
	if d.Mode == selection.Interactive {
		d.Mode = selection.Static
	} else {
		d.Mode = selection.Interactive
	}
}

// Switch toggles when want differs from the current mode and reports whether
// it did.
func (d *Display) Switch(want selection.MapType) bool {
	if d.Mode == want {
		return false
	}
	d.Toggle()
	return true
}
