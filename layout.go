package underflipper

// Layout holds the measured positions of the rulebook template, the edge
// detection tuning, and the output page geometry. All lengths are in points.
// The values are coupled to one specific print template, so they are kept
// together here instead of being scattered through the code.
type Layout struct {
	// Resolution used when rendering a page for edge detection
	DPI       float64
	PtPerInch float64

	// Warscroll front box on the first source page. The back copy sits
	// ScrollYOffset below it.
	Scroll        Rect
	ScrollYOffset float64

	// Card size, and the expected leading edge of each of the four card
	// columns. The X anchors are only a starting point for edge detection.
	CardWidth   float64
	CardHeight  float64
	CardX0      [4]float64
	CardY0      float64
	CardYOffset float64 // Distance from the front copy of a card to its back copy

	// Edge detection sample. The window is CardX0 +/- SampleOffsetX, on the
	// row SampleOffsetY from the top of the page.
	SampleOffsetX float64
	SampleOffsetY float64
	EdgeThreshold int // Minimum drop in (r+g+b)/3 between two adjacent pixels

	// Output page (A4)
	ShortEdge float64
	LongEdge  float64
	Margin    float64 // Distance to page edge
	Padding   float64 // Distance between cards
}

// DefaultLayout returns the layout of the warband rules PDF.
func DefaultLayout() *Layout {
	const cardY0 = 36.0
	const scrollY0 = 79.5
	return &Layout{
		DPI:       600,
		PtPerInch: 72,

		Scroll:        Rect{87.8, scrollY0, 507.5, 377.4},
		ScrollYOffset: 450.3 - scrollY0,

		CardWidth:   214.7 - 36,
		CardHeight:  285.5 - cardY0,
		CardX0:      [4]float64{36, 233.5, 429.8, 627.2},
		CardY0:      cardY0,
		CardYOffset: 309.8 - cardY0,

		SampleOffsetX: 6,
		SampleOffsetY: 100,
		EdgeThreshold: 40,

		ShortEdge: 595.35,
		LongEdge:  841.995,
		Margin:    30,
		Padding:   20,
	}
}

// Number of pixels per point at the detection resolution
func (l *Layout) PixelPerPt() float64 {
	return l.DPI / l.PtPerInch
}

// Number of card columns on a source page
func (l *Layout) Columns() int {
	return len(l.CardX0)
}

// Front copy of the card whose leading edge is at x
func (l *Layout) CardRect(x float64) Rect {
	return Rect{x, l.CardY0, x + l.CardWidth, l.CardY0 + l.CardHeight}
}

// Grid cell on a landscape output page
func (l *Layout) CardCell(row, col int) Rect {
	x0 := l.Margin + float64(col)*(l.CardWidth+l.Padding)
	y0 := l.Margin + float64(row)*(l.CardHeight+l.Padding)
	return Rect{x0, y0, x0 + l.CardWidth, y0 + l.CardHeight}
}
