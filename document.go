package underflipper

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// Document is the source PDF. Pages are rendered with go-fitz, and copied
// into the output by file path.
type Document struct {
	fz       *fitz.Document
	Path     string
	numPages int
	Log      *zap.SugaredLogger
}

// Load a PDF from a file.
// The file is validated by pdfcpu first, because the page copier needs to
// parse it as well and fails much less gracefully.
func NewDocumentFromFile(filename string, log *zap.SugaredLogger) (*Document, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := pdfapi.ValidateFile(filename, conf); err != nil {
		return nil, fmt.Errorf("%w %v: %w", ErrOpenInput, filename, err)
	}
	fz, err := fitz.New(filename)
	if err != nil {
		return nil, fmt.Errorf("%w %v: %w", ErrOpenInput, filename, err)
	}
	doc := &Document{
		fz:       fz,
		Path:     filename,
		numPages: fz.NumPage(),
		Log:      log,
	}
	return doc, nil
}

func (d *Document) Close() {
	d.fz.Close()
}

func (d *Document) NumPages() int {
	return d.numPages
}

// Render a page to RGBA pixels
func (d *Document) RenderPage(page int, opts RenderOptions) (image.Image, error) {
	img, err := d.fz.ImageDPI(page, opts.DPI)
	if err != nil {
		return nil, err
	}
	if !opts.AntiAlias {
		removeHorizontalAA(img)
	}
	return img, nil
}

// CheckTemplate warns about pages that are too small to hold the template.
// Detection on such a page fails with ErrSampleOutOfBounds.
func (d *Document) CheckTemplate(l *Layout) error {
	dims, err := pdfapi.PageDimsFile(d.Path)
	if err != nil {
		return fmt.Errorf("%w %v: %w", ErrOpenInput, d.Path, err)
	}
	minWidth := l.CardX0[len(l.CardX0)-1] + l.SampleOffsetX
	for i, dim := range dims {
		d.Log.Debugf("page %v: %.1f x %.1f pt", i+1, dim.Width, dim.Height)
		if i == 0 {
			if dim.Height < l.Scroll.Y1+l.ScrollYOffset {
				d.Log.Warnf("page 1 (%.1f x %.1f pt) is too short for the warscroll back", dim.Width, dim.Height)
			}
			continue
		}
		if dim.Width < minWidth || dim.Height < l.SampleOffsetY {
			d.Log.Warnf("page %v (%.1f x %.1f pt) is smaller than the card template", i+1, dim.Width, dim.Height)
		}
	}
	return nil
}
