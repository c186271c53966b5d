// Package pbm reads and writes binary (P4) portable bitmaps.
package pbm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ivlev/bookseam/internal/bitmap"
)

var ErrMalformedHeader = errors.New("pbm: malformed header")

const magic = "P4"

// MaxPixels bounds width*height of a decoded bitmap, one byte per pixel
const MaxPixels = 1 << 31

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// token reads the next whitespace separated header field. The single
// whitespace byte that ends the field is consumed.
func token(r *bufio.Reader) (string, error) {
	var c byte
	var err error
	for {
		c, err = r.ReadByte()
		if err != nil {
			return "", err
		}
		if c == '#' {
			if _, err := r.ReadString('\n'); err != nil {
				return "", err
			}
			continue
		}
		if !isSpace(c) {
			break
		}
	}

	buf := []byte{c}
	for {
		c, err = r.ReadByte()
		if err == io.EOF {
			return string(buf), nil
		}
		if err != nil {
			return "", err
		}
		if isSpace(c) {
			return string(buf), nil
		}
		buf = append(buf, c)
	}
}

func dimension(r *bufio.Reader, name string) (int, error) {
	tok, err := token(r)
	if err != nil {
		return 0, fmt.Errorf("%w: reading %s: %v", ErrMalformedHeader, name, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: bad %s %q", ErrMalformedHeader, name, tok)
	}
	return v, nil
}

// RowBytes is the number of packed bytes in one row of the given width
func RowBytes(width int) int {
	return (width + 7) / 8
}

// Decode reads a P4 bitmap. Bits are packed most significant first and a
// set bit is foreground.
func Decode(r io.Reader) (*bitmap.Bitmap, error) {
	br := bufio.NewReader(r)

	tok, err := token(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if tok != magic {
		return nil, fmt.Errorf("%w: magic %q, want %q", ErrMalformedHeader, tok, magic)
	}
	width, err := dimension(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := dimension(br, "height")
	if err != nil {
		return nil, err
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: size %dx%d exceeds %d pixels", ErrMalformedHeader, width, height, MaxPixels)
	}

	b, err := bitmap.New(width, height)
	if err != nil {
		return nil, err
	}

	row := make([]byte, RowBytes(width))
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("pbm: row %d of %d: %w", y, height, err)
		}
		pix := b.Pix[y*width : (y+1)*width]
		for x := range pix {
			pix[x] = (row[x/8] >> (7 - uint(x%8))) & 1
		}
	}
	return b, nil
}

// Encode writes b as a P4 bitmap. Unused low bits of the last byte in each
// row are zero.
func Encode(w io.Writer, b *bitmap.Bitmap) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n", magic, b.Width, b.Height); err != nil {
		return err
	}

	row := make([]byte, RowBytes(b.Width))
	for y := 0; y < b.Height; y++ {
		clear(row)
		pix := b.Pix[y*b.Width : (y+1)*b.Width]
		for x, v := range pix {
			if v != 0 {
				row[x/8] |= 1 << (7 - uint(x%8))
			}
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
