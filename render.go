package underflipper

import (
	"image"
)

// RenderOptions controls a single page render.
// Anti-aliasing is a property of the call, never of the renderer, so a
// detection render cannot affect any other render.
type RenderOptions struct {
	DPI       float64
	AntiAlias bool
}

// PageSource is a paginated document that can be rasterized.
// Page numbers are zero based.
type PageSource interface {
	NumPages() int
	RenderPage(page int, opts RenderOptions) (image.Image, error)
}

// go-fitz always renders with anti-aliasing. A partially covered pixel on a
// vertical edge ends up with a value between its two neighbours, which
// splits the contrast drop over two steps. Snap such pixels to whichever
// neighbour is closer, which is what a point-sampled render produces.
func removeHorizontalAA(img *image.RGBA) {
	b := img.Bounds()
	width := b.Dx()
	if width < 3 {
		return
	}
	row := make([]byte, width*4)
	for y := 0; y < b.Dy(); y++ {
		line := img.Pix[y*img.Stride : y*img.Stride+width*4]
		copy(row, line)
		for x := 1; x < width-1; x++ {
			left := sumRGB(row[(x-1)*4:])
			mid := sumRGB(row[x*4:])
			right := sumRGB(row[(x+1)*4:])
			if !(left < mid && mid < right) && !(left > mid && mid > right) {
				continue
			}
			src := (x - 1) * 4
			if absInt(mid-left) > absInt(right-mid) {
				src = (x + 1) * 4
			}
			copy(line[x*4:x*4+4], row[src:src+4])
		}
	}
}

func sumRGB(p []byte) int {
	return int(p[0]) + int(p[1]) + int(p[2])
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
