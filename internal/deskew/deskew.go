package deskew

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/bookseam/internal/bitmap"
	"github.com/ivlev/bookseam/internal/fit"
	"github.com/ivlev/bookseam/internal/system"
)

// ErrDegenerateSlope is returned when the margin line is too flat to
// derive a rotation from.
var ErrDegenerateSlope = errors.New("deskew: degenerate margin slope")

// DefaultMinSlope is the smallest |m| accepted for a margin line. Margins
// are near vertical, so a flatter line means the fit picked up noise.
const DefaultMinSlope = 1.0

// EdgePoints returns, for each row, the first foreground pixel in the left
// quarter of the bitmap. Rows with no ink there are skipped.
func EdgePoints(b *bitmap.Bitmap) []fit.Point {
	points := []fit.Point{}
	limit := b.Width / 4
	for y := 0; y < b.Height; y++ {
		for x := 0; x < limit; x++ {
			if b.Get(x, y) == 1 {
				points = append(points, fit.Point{X: float64(x), Y: float64(y)})
				break
			}
		}
	}
	return points
}

// Margin is the fitted left edge of a page's text block
type Margin struct {
	Line  fit.Line
	Edges int // edge points found
	Kept  int // edge points left after outlier removal
}

// FindLeftMargin fits a line to the left edge of the text block. Edge
// points further than spread standard deviations from the mean column are
// dropped first.
func FindLeftMargin(b *bitmap.Bitmap, spread float64) (*Margin, error) {
	edges := EdgePoints(b)
	kept := fit.RemoveOutliersWithin(edges, spread)
	line, err := fit.Fit(kept)
	if err != nil {
		return nil, fmt.Errorf("left margin from %d of %d edge points: %w", len(kept), len(edges), err)
	}
	return &Margin{Line: line, Edges: len(edges), Kept: len(kept)}, nil
}

// Angle returns the rotation, in radians, that makes the margin line
// vertical when the page is rotated about its center.
func Angle(b *bitmap.Bitmap, line fit.Line, minSlope float64) (float64, error) {
	if math.IsNaN(line.M) || math.IsInf(line.M, 0) || math.Abs(line.M) < minSlope {
		return 0, fmt.Errorf("%w: m=%g", ErrDegenerateSlope, line.M)
	}

	inside := func(x int) (float64, bool) {
		y := line.At(float64(x))
		return y, y >= 0 && y < float64(b.Height)
	}

	x1, x2 := -1, -1
	var y1, y2 float64
	for x := 0; x < b.Width; x++ {
		if y, ok := inside(x); ok {
			x1, y1 = x, y
			break
		}
	}
	for x := b.Width - 1; x >= 0; x-- {
		if y, ok := inside(x); ok {
			x2, y2 = x, y
			break
		}
	}
	if x1 < 0 || x2 < 0 {
		return 0, fmt.Errorf("%w: line y=%gx%+g misses the page", ErrDegenerateSlope, line.M, line.B)
	}

	dy := math.Abs(y1 - y2)
	if dy == 0 {
		return 0, fmt.Errorf("%w: margin touches one row only", ErrDegenerateSlope)
	}

	angle := math.Atan(math.Abs(float64(x1-x2)) / dy)
	if line.M < 0 {
		angle = -angle
	}
	return angle, nil
}

// Rotate returns b rotated by angle radians about its center. Every
// destination pixel is mapped back into the source and sampled from the
// surrounding 2x2 pixels; pixels that map outside the source, or onto its
// last row or column, are background.
func Rotate(b *bitmap.Bitmap, angle float64, workers int) (*bitmap.Bitmap, error) {
	dst := &bitmap.Bitmap{
		Width:  b.Width,
		Height: b.Height,
		Pix:    make([]uint8, len(b.Pix)),
	}

	cx, cy := float64(b.Width/2), float64(b.Height/2)
	cos, sin := math.Cos(-angle), math.Sin(-angle)
	maxX, maxY := float64(b.Width-1), float64(b.Height-1)

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, rows := range system.Chunks(b.Height, workers) {
		rows := rows
		g.Go(func() error {
			for y := rows[0]; y < rows[1]; y++ {
				dy := float64(y) - cy
				for x := 0; x < b.Width; x++ {
					dx := float64(x) - cx
					srcX := dx*cos - dy*sin + cx
					srcY := dx*sin + dy*cos + cy
					if srcX >= 0 && srcX < maxX && srcY >= 0 && srcY < maxY {
						dst.Pix[y*b.Width+x] = Sample(b, srcX, srcY)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dst, nil
}

// Sample returns the bilinear blend of the four pixels around (x, y),
// rounded half up. (x, y) must leave room for the 2x2 stencil.
func Sample(b *bitmap.Bitmap, x, y float64) uint8 {
	ix, iy := int(x), int(y)
	fx, fy := x-float64(ix), y-float64(iy)

	v := float64(b.Get(ix, iy))*(1-fx)*(1-fy) +
		float64(b.Get(ix+1, iy))*fx*(1-fy) +
		float64(b.Get(ix, iy+1))*(1-fx)*fy +
		float64(b.Get(ix+1, iy+1))*fx*fy

	if v-math.Floor(v) >= 0.5 {
		return uint8(v) + 1
	}
	return uint8(v)
}
