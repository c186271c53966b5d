package morph

import (
	"github.com/ivlev/bookseam/internal/bitmap"
	"github.com/ivlev/bookseam/internal/system"
)

// Dilate grows every foreground region by one pixel ring per iteration,
// using a 3x3 neighborhood clamped at the borders. Each pass reads the
// previous pass only, so growth never cascades inside one iteration.
// The input bitmap is left untouched.
func Dilate(b *bitmap.Bitmap, iterations int) *bitmap.Bitmap {
	result := b.Copy()
	if iterations <= 0 {
		return result
	}

	w, h := b.Width, b.Height
	cur := result.Pix
	var pooled *[]uint8
	for iter := 0; iter < iterations; iter++ {
		buf := system.GetPixels(len(cur))
		next := *buf
		copy(next, cur)

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if cur[y*w+x] != 1 {
					continue
				}
				for j := max(y-1, 0); j < min(y+2, h); j++ {
					for i := max(x-1, 0); i < min(x+2, w); i++ {
						next[j*w+i] = 1
					}
				}
			}
		}

		// nil on the first pass: result.Pix is not pooled
		system.PutPixels(pooled)
		pooled, cur = buf, next
	}

	// Detach the final pass from the pool
	result.Pix = make([]uint8, len(cur))
	copy(result.Pix, cur)
	system.PutPixels(pooled)
	return result
}
