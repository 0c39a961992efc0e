package docpeek

// TooltipOffset is the gap, in pixels, kept between the pointer and the
// tooltip on both axes.
const TooltipOffset = 10

// Point is a position in page coordinates.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Surface is the on-screen tooltip the presenter drives.
// There is a single tooltip per page, shared by every link.
type Surface interface {
	// Show sets the tooltip's text and makes it visible.
	Show(text string)

	// Hide makes the tooltip invisible. Hiding a hidden tooltip is a no-op.
	Hide()

	// MoveTo places the tooltip's top-left corner at p.
	MoveTo(p Point)

	// TooltipWidth returns the tooltip's current rendered width.
	TooltipWidth() int

	// ViewportWidth returns the width of the visible page area.
	ViewportWidth() int
}

// PlaceTooltip returns the top-left position for a tooltip of the given
// width next to the pointer. The tooltip sits to the right of the pointer
// unless that would overflow the viewport, in which case it flips to the
// left. It is always placed below the pointer.
func PlaceTooltip(pointer Point, tooltipWidth, viewportWidth int) Point {
	p := Point{
		X: pointer.X + TooltipOffset,
		Y: pointer.Y + TooltipOffset,
	}
	if pointer.X+tooltipWidth+TooltipOffset > viewportWidth {
		p.X = pointer.X - tooltipWidth - TooltipOffset
	}
	return p
}

// EventKind identifies a pointer event.
type EventKind int

// Pointer event kinds.
const (
	PointerEnter EventKind = iota + 1
	PointerMove
	PointerLeave
)

// String returns the event kind's name.
func (k EventKind) String() string {
	switch k {
	case PointerEnter:
		return "enter"
	case PointerMove:
		return "move"
	case PointerLeave:
		return "leave"
	}
	return "unknown"
}

// PointerEvent is a pointer interaction with a previewable link.
// Key is only meaningful for PointerEnter.
type PointerEvent struct {
	Kind     EventKind
	Key      PreviewKey
	Position Point
}
