package underflipper

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageWriter accumulates output pages in order.
// Place always draws on the page most recently added.
type PageWriter interface {
	AddPage(width, height float64) error
	Place(p Placement) error
	Save(filename string) error
}

type importedPage struct {
	tplID  int
	width  float64
	height float64
}

// PDFWriter copies regions of the source PDF into a new PDF. Source pages
// are imported once as form templates, so the copy stays vector data.
//
// gofpdi sizes every template from the first page of its source file, and
// the warscroll page is portrait while the card pages are landscape. So
// each source page is first split into a one page file of its own.
type PDFWriter struct {
	pdf      *gofpdf.Fpdf
	imp      *gofpdi.Importer
	source   string
	tmpDir   string
	imported map[int]importedPage
}

// NewPDFWriter creates an empty document that copies from the PDF at source
func NewPDFWriter(source string) *PDFWriter {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: 595.35, Ht: 841.995},
	})
	pdf.SetCompression(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	return &PDFWriter{
		pdf:      pdf,
		imp:      gofpdi.NewImporter(),
		source:   source,
		imported: map[int]importedPage{},
	}
}

func (w *PDFWriter) AddPage(width, height float64) error {
	// Orientation is implied by the size
	w.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
	return w.pdf.Error()
}

// Place draws the source page clipped to p.Clip so that the clip lands on
// p.Dest. For rotated placements the drawing is turned around the centre of
// p.Dest, which maps p.Dest onto itself.
func (w *PDFWriter) Place(p Placement) error {
	if !p.Clip.Valid() || !p.Dest.Valid() {
		return fmt.Errorf("%w: clip %v, dest %v", ErrInvalidPlacement, p.Clip, p.Dest)
	}
	src, err := w.importPage(p.SourcePage)
	if err != nil {
		return err
	}
	d := p.Dest
	w.pdf.ClipRect(d.X0, d.Y0, d.Width(), d.Height(), false)
	if p.Rotate != 0 {
		w.pdf.TransformBegin()
		w.pdf.TransformRotate(float64(p.Rotate), (d.X0+d.X1)/2, (d.Y0+d.Y1)/2)
	}
	w.imp.UseImportedTemplate(w.pdf, src.tplID, d.X0-p.Clip.X0, d.Y0-p.Clip.Y0, src.width, src.height)
	if p.Rotate != 0 {
		w.pdf.TransformEnd()
	}
	w.pdf.ClipEnd()
	return w.pdf.Error()
}

// Save writes the document, passing it through pdfcpu to compress and
// deduplicate the imported resources.
func (w *PDFWriter) Save(filename string) error {
	defer w.Close()
	raw := &bytes.Buffer{}
	if err := w.pdf.Output(raw); err != nil {
		return fmt.Errorf("%w %v: %w", ErrWriteOutput, filename, err)
	}

	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%w %v: %w", ErrWriteOutput, filename, err)
	}
	defer out.Close()

	conf := model.NewDefaultConfiguration()
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true
	if err := pdfapi.Optimize(bytes.NewReader(raw.Bytes()), out, conf); err != nil {
		return fmt.Errorf("%w %v: %w", ErrWriteOutput, filename, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w %v: %w", ErrWriteOutput, filename, err)
	}
	return nil
}

// Close removes the split source pages. Save calls it.
func (w *PDFWriter) Close() error {
	if w.tmpDir == "" {
		return nil
	}
	err := os.RemoveAll(w.tmpDir)
	w.tmpDir = ""
	return err
}

// Writes source page (zero based) to a file of its own
func (w *PDFWriter) splitPage(page int) (string, error) {
	if w.tmpDir == "" {
		dir, err := os.MkdirTemp("", "underflipper-*")
		if err != nil {
			return "", err
		}
		w.tmpDir = dir
	}
	filename := filepath.Join(w.tmpDir, fmt.Sprintf("page-%03d.pdf", page+1))
	// Plain xref table, which the importer parses most reliably
	conf := model.NewDefaultConfiguration()
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	if err := pdfapi.TrimFile(w.source, filename, []string{strconv.Itoa(page + 1)}, conf); err != nil {
		return "", err
	}
	return filename, nil
}

// gofpdi panics on documents it cannot parse
func (w *PDFWriter) importPage(page int) (result importedPage, err error) {
	if imported, ok := w.imported[page]; ok {
		return imported, nil
	}
	pageFile, err := w.splitPage(page)
	if err != nil {
		return importedPage{}, fmt.Errorf("%w: splitting page %v of %v: %w", ErrOpenInput, page+1, w.source, err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: importing page %v of %v: %v", ErrOpenInput, page+1, w.source, r)
		}
	}()
	tplID := w.imp.ImportPage(w.pdf, pageFile, 1, "/MediaBox")
	if err := w.pdf.Error(); err != nil {
		return importedPage{}, fmt.Errorf("%w: importing page %v of %v: %w", ErrOpenInput, page+1, w.source, err)
	}
	result = importedPage{tplID: tplID}
	if dims, ok := w.imp.GetPageSizes()[1]; ok {
		if mb, ok := dims["/MediaBox"]; ok {
			result.width = mb["w"]
			result.height = mb["h"]
		}
	}
	if result.width == 0 || result.height == 0 {
		return importedPage{}, fmt.Errorf("%w: page %v of %v has no media box", ErrOpenInput, page+1, w.source)
	}
	w.imported[page] = result
	return result, nil
}
