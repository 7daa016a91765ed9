// Package underflipper rearranges the single-sided warband rules PDF into a
// double-sided, print-ready A4 PDF.
//
// The first source page holds the warscroll, with its front above its back.
// Every other page holds up to four cards, each with its front copy above its
// back copy. Card columns are found by rendering the page and looking for a
// sharp drop in brightness near where each card is expected to start.
package underflipper

import (
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"
)

type Options struct {
	Layout *Layout

	// Shift applied to every back side placement, to compensate for
	// printer duplex skew. In points.
	FlipOffset float64

	// If not empty, every detection render is written here as a JPEG
	DebugDir string

	Log *zap.SugaredLogger
}

// Rearrange reads src, and writes the output document through dst to outFile.
// Pages are produced strictly in order: warscroll front and back, then the
// front and back of each group of two card pages.
func Rearrange(src PageSource, dst PageWriter, outFile string, opts Options) error {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	layout := opts.Layout
	if layout == nil {
		layout = DefaultLayout()
	}
	if src.NumPages() == 0 {
		return ErrNoPages
	}

	planner := NewPlanner(layout, opts.FlipOffset)

	scroll := planner.Warscroll()
	if err := writePages(dst, scroll, log); err != nil {
		return err
	}

	detector := NewDetector(layout, log)
	if opts.DebugDir != "" {
		detector.OnRender = func(page int, img image.Image) {
			filename := filepath.Join(opts.DebugDir, fmt.Sprintf("page-%03d.jpg", page+1))
			if err := WriteDebugJPEG(img, filename); err != nil {
				log.Warnf("Writing %v: %v", filename, err)
			}
		}
	}
	batch, err := detector.DetectPages(src)
	if err != nil {
		return err
	}
	log.Infof("Found %v cards on %v pages", batch.Cards(), len(batch))

	if err := writePages(dst, planner.Cards(batch), log); err != nil {
		return err
	}

	if err := dst.Save(outFile); err != nil {
		return err
	}
	log.Infof("Wrote %v", outFile)
	return nil
}

func writePages(dst PageWriter, pages []OutputPage, log *zap.SugaredLogger) error {
	for _, page := range pages {
		log.Infof("Copying %v", page.Label)
		if err := dst.AddPage(page.Width, page.Height); err != nil {
			return fmt.Errorf("adding %v page: %w", page.Label, err)
		}
		for _, p := range page.Placements {
			// Page 0 is the warscroll, which is logged with its page
			if p.SourcePage != 0 {
				log.Infof("Processing %v of card %v on page %v", p.Side, p.Card+1, p.SourcePage+1)
			}
			if err := dst.Place(p); err != nil {
				return fmt.Errorf("%v page, source page %v: %w", page.Label, p.SourcePage+1, err)
			}
		}
	}
	return nil
}
