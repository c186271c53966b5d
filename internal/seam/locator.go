package seam

import (
	"errors"

	"github.com/ivlev/bookseam/internal/bitmap"
)

// ErrSeamNotFound is returned by SplitPages when no row holds a usable seam.
// It also wraps fit.ErrInsufficientSamples.
var ErrSeamNotFound = errors.New("seam: not found")

// Span is the horizontal extent of the seam in one row, both ends inclusive
type Span struct {
	Start int
	End   int
}

// Locate finds the dark gutter band near the middle of the given row.
//
// If the middle pixel is dark the band is grown left and right until both
// sides reach a light pixel. Otherwise the search walks outwards until
// either side meets a dark pixel, then follows that band to its far edge.
// Running off the bitmap during the first phase means there is no seam.
func Locate(b *bitmap.Bitmap, row int) (Span, bool) {
	mid := b.Width / 2

	if b.Get(mid, row) == 1 {
		left, right := mid, mid
		for b.Get(left, row) != 0 || b.Get(right, row) != 0 {
			if b.Get(left, row) != 0 {
				left--
			}
			if b.Get(right, row) != 0 {
				right++
			}
			if right >= b.Width || left < 0 {
				return Span{}, false
			}
		}
		return Span{Start: left + 1, End: right - 1}, true
	}

	left, right := mid, mid
	for b.Get(left, row) != 1 && b.Get(right, row) != 1 {
		left--
		right++
		if right >= b.Width || left < 0 {
			return Span{}, false
		}
	}

	// Band left of the middle
	if b.Get(left, row) == 1 {
		edge := left
		for b.Get(edge, row) != 0 {
			edge--
			if edge <= 0 {
				break
			}
		}
		return Span{Start: edge + 1, End: left}, true
	}

	// Band right of the middle
	edge := right
	for b.Get(edge, row) != 0 {
		edge++
		if edge >= b.Width-1 {
			break
		}
	}
	return Span{Start: right, End: edge - 1}, true
}
