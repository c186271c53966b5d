package seam

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/bookseam/internal/bitmap"
	"github.com/ivlev/bookseam/internal/fit"
	"github.com/ivlev/bookseam/internal/system"
)

// Split holds the two cropped pages and the geometry used to cut them
type Split struct {
	Left  *bitmap.Bitmap
	Right *bitmap.Bitmap

	StartLine fit.Line // left edge of the seam
	EndLine   fit.Line // right edge of the seam
	CropEnd   int      // last column kept in Left
	CropStart int      // first column kept in Right
	Rows      int      // rows that contributed a seam sample
}

// Samples locates the seam in every row and returns the start and end
// samples in row order. Rows without a seam are left out.
func Samples(b *bitmap.Bitmap, workers int) (starts, ends []fit.Point, err error) {
	spans := make([]Span, b.Height)
	found := make([]bool, b.Height)

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, rows := range system.Chunks(b.Height, workers) {
		rows := rows
		g.Go(func() error {
			for y := rows[0]; y < rows[1]; y++ {
				spans[y], found[y] = Locate(b, y)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for y := 0; y < b.Height; y++ {
		if !found[y] {
			continue
		}
		starts = append(starts, fit.Point{X: float64(spans[y].Start), Y: float64(y)})
		ends = append(ends, fit.Point{X: float64(spans[y].End), Y: float64(y)})
	}
	return starts, ends, nil
}

// SplitPages cuts a two page spread along the fitted seam edges. The left
// page ends at the leftmost column where the seam start line crosses the
// image, the right page begins at the rightmost column where the seam end
// line crosses it.
func SplitPages(b *bitmap.Bitmap, workers int) (*Split, error) {
	starts, ends, err := Samples(b, workers)
	if err != nil {
		return nil, err
	}
	if len(starts) == 0 {
		return nil, fmt.Errorf("%w in %d rows: %w", ErrSeamNotFound, b.Height, fit.ErrInsufficientSamples)
	}

	startLine, err := fit.Fit(starts)
	if err != nil {
		return nil, fmt.Errorf("seam start line from %d rows: %w", len(starts), err)
	}
	endLine, err := fit.Fit(ends)
	if err != nil {
		return nil, fmt.Errorf("seam end line from %d rows: %w", len(ends), err)
	}

	cropEnd := b.Width - 1
	for x := 0; x < b.Width; x++ {
		if rowInside(startLine, x, b.Height) && x < cropEnd {
			cropEnd = x
		}
	}
	cropStart := 0
	for x := 0; x < b.Width; x++ {
		if rowInside(endLine, x, b.Height) && x > cropStart {
			cropStart = x
		}
	}

	left, err := b.CopyBox(0, 0, cropEnd+1, b.Height)
	if err != nil {
		return nil, fmt.Errorf("left page: %w", err)
	}
	right, err := b.CopyBox(cropStart, 0, b.Width-cropStart-1, b.Height)
	if err != nil {
		return nil, fmt.Errorf("right page: %w", err)
	}

	return &Split{
		Left:      left,
		Right:     right,
		StartLine: startLine,
		EndLine:   endLine,
		CropEnd:   cropEnd,
		CropStart: cropStart,
		Rows:      len(starts),
	}, nil
}

// rowInside reports whether the line, truncated to a whole row at column x,
// falls inside [0, height).
func rowInside(l fit.Line, x, height int) bool {
	y := math.Trunc(l.At(float64(x)))
	return y >= 0 && y < float64(height)
}
