package dom

// Rect is the vertical slice of a bounding box, in viewport coordinates.
// Top and Bottom are measured from the viewport's upper edge; an element
// scrolled out above the viewport has a negative Top.
type Rect struct {
	Top    float64
	Bottom float64
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Metrics answers geometry questions the parse tree cannot: viewport
// height, current scroll offset, and per-element bounding boxes. It is the
// explicit home for what would otherwise be process-wide mutable platform
// state. Implementations are supplied by the embedding host (a real
// browser bridge, or a fixture in tests).
type Metrics interface {
	ViewportHeight() float64
	ScrollY() float64
	BoundingBox(e *Element) Rect
}
