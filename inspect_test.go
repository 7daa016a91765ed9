package underflipper

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestToCImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})
	c := toCImage(img)
	if c.Width != 3 || c.Height != 2 {
		t.Fatalf("expected 3 x 2, got %v x %v", c.Width, c.Height)
	}
	p := c.Pixels[1*c.Stride+2*4:]
	if p[0] != 10 || p[1] != 20 || p[2] != 30 {
		t.Errorf("pixel not copied, got %v", p[:4])
	}

	// Any other image type is converted first
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	if c := toCImage(gray); c.Width != 4 || c.Height != 4 {
		t.Errorf("expected 4 x 4, got %v x %v", c.Width, c.Height)
	}
}

func TestInspect(t *testing.T) {
	l := testLayout()
	src := &fakeSource{pages: []image.Image{
		blankPage(l),
		cardPage(l, edgeFor(l, 0, 0), edgeFor(l, 1, 0)),
	}}
	inspector := NewInspector(NewDetector(l, nil), nil)
	report, err := inspector.Inspect(src, 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Err != nil || len(report.Cards) != 2 {
		t.Errorf("unexpected report %v", report)
	}
	if report.UpsideDown {
		t.Error("orientation reported without a model")
	}
	if len(src.opts) != 2 || src.opts[0].AntiAlias || !src.opts[1].AntiAlias {
		t.Errorf("unexpected renders %+v", src.opts)
	}
}

func TestPageReportString(t *testing.T) {
	r := &PageReport{Page: 2, Cards: CardPositions{35.5, 233}, Angle: 1.5, UpsideDown: true}
	s := r.String()
	for _, want := range []string{"page 3", "2 cards", "skewed 1.5", "upside down"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q does not contain %q", s, want)
		}
	}
	r = &PageReport{Page: 0, Err: errors.New("bad")}
	if !strings.Contains(r.String(), "error: bad") {
		t.Errorf("error missing from %q", r.String())
	}
}
