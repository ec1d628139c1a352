package notify

// Geometry constants match the desktop client's toast dimensions.
const (
	toastWidth   = 360
	toastHeight  = 100
	sideMargin   = 20
	topOffset    = 80
	bottomOffset = 150
	spacing      = 10
)

// Position is a toast's top-left target coordinate on screen.
type Position struct {
	X int
	Y int
}

// Layout computes the target position of each of count visible toasts,
// stacked outward from the anchor. Index 0 is the toast closest to the
// anchor. Recomputed in full whenever the visible set changes.
func Layout(anchor Anchor, screenW, screenH, count int) []Position {
	if count <= 0 {
		return nil
	}
	var x, y, step int
	switch anchor {
	case AnchorBottomRight:
		x = screenW - toastWidth - sideMargin
		y = screenH - bottomOffset
		step = -(toastHeight + spacing)
	case AnchorTopLeft:
		x = sideMargin
		y = topOffset
		step = toastHeight + spacing
	default: // top-right
		x = screenW - toastWidth - sideMargin
		y = topOffset
		step = toastHeight + spacing
	}

	positions := make([]Position, count)
	for i := range positions {
		positions[i] = Position{X: x, Y: y + i*step}
	}
	return positions
}
