package bitmap

import (
	"errors"
	"fmt"
	"math"
)

var ErrOutOfRange = errors.New("bitmap: coordinates out of range")

// Bitmap is a binary raster stored row-major, one byte per pixel.
// A value of 1 is foreground (black ink), 0 is background.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates an all-background bitmap of the given size
func New(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: size %dx%d", ErrOutOfRange, width, height)
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}, nil
}

// In reports whether (x, y) lies inside the bitmap
func (b *Bitmap) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Get returns the pixel at (x, y). Access outside the bitmap is a
// programming error and panics.
func (b *Bitmap) Get(x, y int) uint8 {
	if !b.In(x, y) {
		panic(fmt.Errorf("%w: get (%d,%d) in %dx%d", ErrOutOfRange, x, y, b.Width, b.Height))
	}
	return b.Pix[y*b.Width+x]
}

// Set writes the pixel at (x, y); any non-zero v is stored as 1.
func (b *Bitmap) Set(x, y int, v uint8) {
	if !b.In(x, y) {
		panic(fmt.Errorf("%w: set (%d,%d) in %dx%d", ErrOutOfRange, x, y, b.Width, b.Height))
	}
	if v != 0 {
		v = 1
	}
	b.Pix[y*b.Width+x] = v
}

// CopyBox returns an independent copy of the width x height box whose
// top-left corner is (x, y). The box must lie entirely inside the bitmap.
func (b *Bitmap) CopyBox(x, y, width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x+width > b.Width || y+height > b.Height {
		return nil, fmt.Errorf("%w: box %dx%d at (%d,%d) in %dx%d",
			ErrOutOfRange, width, height, x, y, b.Width, b.Height)
	}
	dst := &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
	for j := 0; j < height; j++ {
		src := b.Pix[(y+j)*b.Width+x : (y+j)*b.Width+x+width]
		copy(dst.Pix[j*width:(j+1)*width], src)
	}
	return dst, nil
}

// Copy returns an independent copy of the whole bitmap
func (b *Bitmap) Copy() *Bitmap {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Bitmap{Width: b.Width, Height: b.Height, Pix: pix}
}

// Equal reports whether both bitmaps have the same size and pixels
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.Width != o.Width || b.Height != o.Height {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Count returns the number of foreground pixels
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Pix {
		n += int(v)
	}
	return n
}

// ClearMargins zeroes every pixel within width of an edge. The far edges
// clear one extra column and row, matching the scans this tool was tuned on.
func (b *Bitmap) ClearMargins(width int) {
	if width <= 0 {
		return
	}
	b.clearRect(0, 0, width, b.Height)
	b.clearRect(b.Width-width-1, 0, b.Width, b.Height)
	b.clearRect(0, 0, b.Width, width)
	b.clearRect(0, b.Height-width-1, b.Width, b.Height)
}

// clearRect zeroes [x0,x1) x [y0,y1), clamped to the bitmap
func (b *Bitmap) clearRect(x0, y0, x1, y1 int) {
	x0, x1 = clamp(x0, b.Width), clamp(x1, b.Width)
	y0, y1 = clamp(y0, b.Height), clamp(y1, b.Height)
	for y := y0; y < y1; y++ {
		row := b.Pix[y*b.Width : (y+1)*b.Width]
		for x := x0; x < x1; x++ {
			row[x] = 0
		}
	}
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// String renders the bitmap as text, '.' for foreground and ' ' for
// background, one line per row.
func (b *Bitmap) String() string {
	buf := make([]byte, 0, (b.Width+1)*b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Pix[y*b.Width+x] != 0 {
				buf = append(buf, '.')
			} else {
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
