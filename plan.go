package underflipper

import "fmt"

type Side int

const (
	Front Side = iota
	Back
)

func (s Side) String() string {
	if s == Front {
		return "front"
	}
	return "back"
}

// Placement copies the Clip region of a source page into Dest on an output
// page. Clip and Dest always have the same size.
type Placement struct {
	SourcePage int // Zero based
	Side       Side
	Row        int
	Card       int // Column on the source page, zero based
	Clip       Rect
	Dest       Rect
	Rotate     int // Degrees, 0 or 180
}

// OutputPage is one page of the output document
type OutputPage struct {
	Width      float64
	Height     float64
	Label      string
	Placements []Placement
}

// Planner computes the output pages. It does no I/O.
type Planner struct {
	Layout     *Layout
	FlipOffset float64
}

func NewPlanner(layout *Layout, flipOffset float64) *Planner {
	return &Planner{
		Layout:     layout,
		FlipOffset: flipOffset,
	}
}

// Warscroll returns the two portrait pages holding the front and back of
// the warscroll, which are both taken from the first source page.
func (p *Planner) Warscroll() []OutputPage {
	l := p.Layout
	upper := l.Scroll
	lower := upper.Translate(0, l.ScrollYOffset)

	front := Rect{l.Margin, l.Margin, l.Margin + upper.Width(), l.Margin + upper.Height()}
	back := l.ReversePortrait(front, p.FlipOffset)

	return []OutputPage{
		{
			Width:  l.ShortEdge,
			Height: l.LongEdge,
			Label:  "warscroll front",
			Placements: []Placement{
				{SourcePage: 0, Side: Front, Clip: upper, Dest: front},
			},
		},
		{
			Width:  l.ShortEdge,
			Height: l.LongEdge,
			Label:  "warscroll back",
			Placements: []Placement{
				{SourcePage: 0, Side: Back, Clip: lower, Dest: back},
			},
		},
	}
}

// Cards groups the card pages two at a time. Every group produces a landscape
// page with the fronts of up to eight cards, followed by a page with their
// backs. Card slots without a detected card are left empty.
func (p *Planner) Cards(batch DetectionBatch) []OutputPage {
	pages := []OutputPage{}
	for first := 0; first < len(batch); first += 2 {
		last := min(first+2, len(batch))
		group := batch[first:last]
		pages = append(pages, p.group(first, group, Front), p.group(first, group, Back))
	}
	return pages
}

// Plan returns every output page in document order
func (p *Planner) Plan(batch DetectionBatch) []OutputPage {
	return append(p.Warscroll(), p.Cards(batch)...)
}

// first is the index of the group's first page within the detection batch
func (p *Planner) group(first int, group DetectionBatch, side Side) OutputPage {
	l := p.Layout
	cols := l.Columns()
	page := OutputPage{
		Width:  l.LongEdge,
		Height: l.ShortEdge,
		Label:  fmt.Sprintf("cards %v, page %v", side, first+2),
	}
	if len(group) > 1 {
		page.Label = fmt.Sprintf("cards %v, pages %v-%v", side, first+2, first+1+len(group))
	}
	for slot := 0; slot < 2*cols; slot++ {
		row := slot / cols
		col := slot % cols
		if row >= len(group) || col >= len(group[row]) {
			continue
		}
		x := group[row][col]
		clip := l.CardRect(x).Translate(0, float64(side)*l.CardYOffset)
		dest := l.CardCell(row, col)
		rotate := 0
		if side == Back {
			dest = l.ReverseLandscape(dest, p.FlipOffset)
			rotate = 180
		}
		page.Placements = append(page.Placements, Placement{
			// Page 0 is the warscroll
			SourcePage: 1 + first + row,
			Side:       side,
			Row:        row,
			Card:       col,
			Clip:       clip,
			Dest:       dest,
			Rotate:     rotate,
		})
	}
	return page
}
