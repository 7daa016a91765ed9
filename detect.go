package underflipper

import (
	"fmt"
	"image"

	"go.uber.org/zap"
)

// CardPositions is the x coordinate (in points) of the leading edge of each
// card found on a page, ordered left to right. It is always a prefix of the
// four card columns: detection stops at the first column without an edge.
type CardPositions []float64

// DetectionBatch holds the card positions of every card page (page 2 onwards)
type DetectionBatch []CardPositions

// Total number of detected cards
func (b DetectionBatch) Cards() int {
	n := 0
	for _, p := range b {
		n += len(p)
	}
	return n
}

// Detector finds card columns by looking for a sharp drop in brightness
// along one pixel row of a rendered page.
type Detector struct {
	Layout *Layout
	Log    *zap.SugaredLogger

	// If not nil, called with every detection render before it is sampled
	OnRender func(page int, img image.Image)
}

func NewDetector(layout *Layout, log *zap.SugaredLogger) *Detector {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Detector{
		Layout: layout,
		Log:    log,
	}
}

// Detect returns the leading edge of every card present on the page image.
// The image must have been rendered at Layout.DPI without anti-aliasing.
func (d *Detector) Detect(img image.Image) (CardPositions, error) {
	l := d.Layout
	ppp := l.PixelPerPt()
	b := img.Bounds()

	posY := int(l.SampleOffsetY * ppp)
	if posY < 0 || posY >= b.Dy() {
		return nil, fmt.Errorf("%w: row %v, image height %v", ErrSampleOutOfBounds, posY, b.Dy())
	}
	// Every window must be inside the image, whether or not a card is found in it
	var start, end [4]int
	for col, x0 := range l.CardX0 {
		start[col] = int((x0 - l.SampleOffsetX) * ppp)
		end[col] = int((x0 + l.SampleOffsetX) * ppp)
		if start[col] < 0 || end[col] > b.Dx() {
			return nil, fmt.Errorf("%w: card %v window [%v, %v), image width %v", ErrSampleOutOfBounds, col+1, start[col], end[col], b.Dx())
		}
	}

	result := CardPositions{}
	for col := range l.CardX0 {
		previous := 0
		maxDropX := 0
		maxDrop := 0
		for x := start[col]; x < end[col]; x++ {
			value := meanRGB(img, b.Min.X+x, b.Min.Y+posY)
			if previous-value > maxDrop {
				maxDropX = x
				maxDrop = previous - value
			}
			previous = value
		}
		if maxDrop < l.EdgeThreshold {
			d.Log.Debugf("card %v: strongest drop %v below threshold, stopping", col+1, maxDrop)
			return result, nil
		}
		// The drop is registered on the first dark pixel, the edge is one before it
		result = append(result, float64(maxDropX-1)/ppp)
	}
	return result, nil
}

// DetectPages renders and scans every page after the first
func (d *Detector) DetectPages(src PageSource) (DetectionBatch, error) {
	opts := RenderOptions{DPI: d.Layout.DPI, AntiAlias: false}
	batch := DetectionBatch{}
	for page := 1; page < src.NumPages(); page++ {
		d.Log.Infof("Checking for cards on page %v", page+1)
		img, err := src.RenderPage(page, opts)
		if err != nil {
			return nil, fmt.Errorf("rendering page %v: %w", page+1, err)
		}
		if d.OnRender != nil {
			d.OnRender(page, img)
		}
		pos, err := d.Detect(img)
		if err != nil {
			return nil, fmt.Errorf("page %v: %w", page+1, err)
		}
		d.Log.Debugf("page %v: %v cards at %v", page+1, len(pos), pos)
		batch = append(batch, pos)
	}
	return batch, nil
}

// Integer mean of the 8-bit red, green and blue channels
func meanRGB(img image.Image, x, y int) int {
	if rgba, ok := img.(*image.RGBA); ok {
		c := rgba.RGBAAt(x, y)
		return (int(c.R) + int(c.G) + int(c.B)) / 3
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return (int(r>>8) + int(g>>8) + int(b>>8)) / 3
}
