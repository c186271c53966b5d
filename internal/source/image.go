package source

import (
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/ivlev/bookseam/internal/bitmap"
)

type codec struct {
	decode func(io.Reader) (*bitmap.Bitmap, error)
	encode func(io.Writer, *bitmap.Bitmap) error
}

// imageCodec adapts an image/* style decoder and encoder. Decoded images
// must be strictly black and white.
func imageCodec(decode func(io.Reader) (image.Image, error), encode func(io.Writer, image.Image) error) codec {
	return codec{
		decode: func(r io.Reader) (*bitmap.Bitmap, error) {
			img, err := decode(r)
			if err != nil {
				return nil, err
			}
			return bitmap.FromImage(img)
		},
		encode: func(w io.Writer, b *bitmap.Bitmap) error {
			return encode(w, b.ToGray())
		},
	}
}

var (
	tiffCodec = imageCodec(tiff.Decode, func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	})
	bmpCodec = imageCodec(bmp.Decode, bmp.Encode)
	pngCodec = imageCodec(png.Decode, png.Encode)
)
