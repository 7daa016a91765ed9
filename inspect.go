package underflipper

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/bmharper/cimg/v2"
	"github.com/bmharper/docangle"
	"github.com/bmharper/textorient"
)

// PageReport describes how well a card page matches the template
type PageReport struct {
	Page       int // Zero based
	Cards      CardPositions
	Angle      float64 // Skew in degrees. Anything but 0 throws off the fixed template.
	UpsideDown bool
	Err        error // Detection error, if any
}

// Inspector runs detection plus a few sanity checks on the page image.
// It is used by the dump tool, and is much slower than detection alone.
type Inspector struct {
	Detector *Detector
	Orient   *textorient.Orient // May be nil, in which case orientation is not checked
	MaxAngle float64
	DPI      float64 // Resolution for the skew and orientation checks
}

func NewInspector(detector *Detector, orient *textorient.Orient) *Inspector {
	return &Inspector{
		Detector: detector,
		Orient:   orient,
		MaxAngle: 5,
		DPI:      100,
	}
}

// Inspect a single page. debugFile, if not empty, receives the detection render.
func (n *Inspector) Inspect(src PageSource, page int, debugFile string) (*PageReport, error) {
	report := &PageReport{Page: page}

	detectImg, err := src.RenderPage(page, RenderOptions{DPI: n.Detector.Layout.DPI, AntiAlias: false})
	if err != nil {
		return nil, err
	}
	if debugFile != "" {
		if err := WriteDebugJPEG(detectImg, debugFile); err != nil {
			return nil, err
		}
	}
	report.Cards, report.Err = n.Detector.Detect(detectImg)

	img, err := src.RenderPage(page, RenderOptions{DPI: n.DPI, AntiAlias: true})
	if err != nil {
		return nil, err
	}
	cimage := toCImage(img)

	params := docangle.NewWhiteLinesParams()
	params.MinDeltaDegrees = -n.MaxAngle
	params.MaxDeltaDegrees = n.MaxAngle
	_, report.Angle = docangle.GetAngleWhiteLines(makeDocAngleImage(cimage), params)

	if n.Orient != nil {
		upright, err := n.Orient.MakeUpright(cimage)
		if err != nil {
			return nil, err
		}
		report.UpsideDown = upright != cimage
	}
	return report, nil
}

func (r *PageReport) String() string {
	s := fmt.Sprintf("page %v: %v cards %.1f", r.Page+1, len(r.Cards), []float64(r.Cards))
	if r.Angle != 0 {
		s += fmt.Sprintf(", skewed %.1f degrees", r.Angle)
	}
	if r.UpsideDown {
		s += ", upside down"
	}
	if r.Err != nil {
		s += fmt.Sprintf(", error: %v", r.Err)
	}
	return s
}

// WriteDebugJPEG saves a rendered page, so that the sample row and windows
// can be checked by eye.
func WriteDebugJPEG(img image.Image, filename string) error {
	return toCImage(img).WriteJPEG(filename, cimg.MakeCompressParams(cimg.Sampling444, 90, 0), 0644)
}

func toCImage(img image.Image) *cimg.Image {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	width := rgba.Bounds().Dx()
	height := rgba.Bounds().Dy()
	out := cimg.NewImage(width, height, cimg.PixelFormatRGBA)
	for y := 0; y < height; y++ {
		copy(out.Pixels[y*out.Stride:y*out.Stride+width*4], rgba.Pix[y*rgba.Stride:y*rgba.Stride+width*4])
	}
	return out
}

func makeDocAngleImage(img *cimg.Image) *docangle.Image {
	img = img.ToGray()
	return &docangle.Image{
		Pixels: img.Pixels,
		Width:  img.Width,
		Height: img.Height,
	}
}
