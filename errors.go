package underflipper

import "errors"

var (
	ErrOpenInput         = errors.New("cannot open input document")
	ErrNoPages           = errors.New("input document has no pages")
	ErrSampleOutOfBounds = errors.New("edge detection sample is outside the rendered page")
	ErrInvalidFlipOffset = errors.New("flip offset is not a number")
	ErrWriteOutput       = errors.New("cannot write output document")
	ErrInvalidPlacement  = errors.New("placement has an empty clip or destination")
)
