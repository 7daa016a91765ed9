package underflipper

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

func TestOpenMissingDocument(t *testing.T) {
	_, err := NewDocumentFromFile(filepath.Join(t.TempDir(), "missing.pdf"), nil)
	if !errors.Is(err, ErrOpenInput) {
		t.Errorf("expected ErrOpenInput, got %v", err)
	}
}

func TestDocumentEndToEnd(t *testing.T) {
	l := testLayout()
	source := writeSourcePDF(t, l, 2)

	doc, err := NewDocumentFromFile(source, nil)
	if err != nil {
		t.Fatalf("opening source: %v", err)
	}
	defer doc.Close()
	if doc.NumPages() != 3 {
		t.Fatalf("expected 3 pages, got %v", doc.NumPages())
	}
	if err := doc.CheckTemplate(l); err != nil {
		t.Fatalf("CheckTemplate: %v", err)
	}

	batch, err := NewDetector(l, nil).DetectPages(doc)
	if err != nil {
		t.Fatalf("detection: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 card pages, got %v", len(batch))
	}
	for i, pos := range batch {
		if len(pos) != 4 {
			t.Fatalf("page %v: expected 4 cards, got %v", i+2, pos)
		}
		for col, x := range pos {
			// The edge is reported one pixel left of the first card pixel,
			// and the card starts on the pixel holding CardX0
			ppp := l.PixelPerPt()
			expected := float64(int(l.CardX0[col]*ppp)-1) / ppp
			if math.Abs(x-expected) > 1/ppp+tolerance {
				t.Errorf("page %v card %v: detected %v, expected %v", i+2, col+1, x, expected)
			}
		}
	}

	output := filepath.Join(t.TempDir(), "output.pdf")
	if err := Rearrange(doc, NewPDFWriter(source), output, Options{Layout: l}); err != nil {
		t.Fatalf("Rearrange: %v", err)
	}
	count, err := pdfapi.PageCountFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 pages, got %v", count)
	}
}
