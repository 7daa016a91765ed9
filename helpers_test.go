package underflipper

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"testing"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

func TestMain(m *testing.M) {
	pdfapi.DisableConfigDir()
	os.Exit(m.Run())
}

// Same template as the real one, at a resolution small enough for tests
func testLayout() *Layout {
	l := DefaultLayout()
	l.DPI = 144
	return l
}

var white = color.RGBA{255, 255, 255, 255}

// blankPage returns a white page that is tall enough to hold the sample row
func blankPage(l *Layout) *image.RGBA {
	ppp := l.PixelPerPt()
	img := image.NewRGBA(image.Rect(0, 0, int(l.LongEdge*ppp), int((l.SampleOffsetY+20)*ppp)))
	draw.Draw(img, img.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)
	return img
}

// cardPage returns a page with a dark card starting at each of the given
// pixel columns
func cardPage(l *Layout, edges ...int) *image.RGBA {
	img := blankPage(l)
	for _, e := range edges {
		fillCard(img, l, e, color.RGBA{40, 60, 20, 255})
	}
	return img
}

func fillCard(img *image.RGBA, l *Layout, edge int, c color.RGBA) {
	width := int(l.CardWidth * l.PixelPerPt())
	draw.Draw(img, image.Rect(edge, 0, edge+width, img.Bounds().Dy()), &image.Uniform{c}, image.Point{}, draw.Src)
}

// Pixel column of a card edge that is off from the template anchor by shift pixels
func edgeFor(l *Layout, col, shift int) int {
	return int(l.CardX0[col]*l.PixelPerPt()) + shift
}

type fakeSource struct {
	pages []image.Image
	opts  []RenderOptions
}

func (s *fakeSource) NumPages() int {
	return len(s.pages)
}

func (s *fakeSource) RenderPage(page int, opts RenderOptions) (image.Image, error) {
	s.opts = append(s.opts, opts)
	if page < 0 || page >= len(s.pages) {
		return nil, fmt.Errorf("no page %v", page)
	}
	return s.pages[page], nil
}

type recordedPage struct {
	width      float64
	height     float64
	placements []Placement
}

type recordingWriter struct {
	pages []recordedPage
	saved string
}

func (w *recordingWriter) AddPage(width, height float64) error {
	w.pages = append(w.pages, recordedPage{width: width, height: height})
	return nil
}

func (w *recordingWriter) Place(p Placement) error {
	if len(w.pages) == 0 {
		return errors.New("no page")
	}
	last := &w.pages[len(w.pages)-1]
	last.placements = append(last.placements, p)
	return nil
}

func (w *recordingWriter) Save(filename string) error {
	w.saved = filename
	return nil
}

const tolerance = 1e-6

func near(a, b float64) bool {
	d := a - b
	return d < tolerance && d > -tolerance
}

func nearRect(a, b Rect) bool {
	return near(a.X0, b.X0) && near(a.Y0, b.Y0) && near(a.X1, b.X1) && near(a.Y1, b.Y1)
}
