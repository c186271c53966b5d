package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var ErrNotBilevel = errors.New("bitmap: image is not bilevel")

// ColorModel, Bounds and At make a Bitmap usable as an image.Image.
// Foreground pixels are black.
func (b *Bitmap) ColorModel() color.Model {
	return color.GrayModel
}

func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Bitmap) At(x, y int) color.Color {
	if !b.In(x, y) {
		return color.Gray{Y: 255}
	}
	if b.Pix[y*b.Width+x] != 0 {
		return color.Gray{Y: 0}
	}
	return color.Gray{Y: 255}
}

// ToGray renders the bitmap into an 8 bit grayscale image
func (b *Bitmap) ToGray() *image.Gray {
	gray := image.NewGray(b.Bounds())
	for i, v := range b.Pix {
		if v != 0 {
			gray.Pix[(i/b.Width)*gray.Stride+i%b.Width] = 0
		} else {
			gray.Pix[(i/b.Width)*gray.Stride+i%b.Width] = 255
		}
	}
	return gray
}

// FromImage converts a black and white image into a Bitmap. Any pixel that
// is neither pure black nor pure white makes the conversion fail, since
// binarization of grayscale scans is left to the scanner.
func FromImage(img image.Image) (*Bitmap, error) {
	bounds := img.Bounds()
	b, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			switch g {
			case 0:
				b.Pix[(y-bounds.Min.Y)*b.Width+(x-bounds.Min.X)] = 1
			case 255:
			default:
				return nil, fmt.Errorf("%w: pixel (%d,%d) has gray level %d", ErrNotBilevel, x, y, g)
			}
		}
	}
	return b, nil
}
