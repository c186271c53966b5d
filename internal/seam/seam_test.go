package seam

import (
	"errors"
	"testing"

	"github.com/ivlev/bookseam/internal/bitmap"
	"github.com/ivlev/bookseam/internal/fit"
)

// row builds a single row bitmap from a string, '#' is foreground
func row(t *testing.T, s string) *bitmap.Bitmap {
	t.Helper()
	b, err := bitmap.New(len(s), 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for x, c := range s {
		if c == '#' {
			b.Set(x, 0, 1)
		}
	}
	return b
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name  string
		row   string
		want  Span
		found bool
	}{
		// midpoint is column 10 in every 20 wide row
		{"centered", "........###.........", Span{8, 10}, true},
		{"centered wide", "......#######.......", Span{6, 12}, true},
		{"left of center", "....###.............", Span{4, 6}, true},
		{"right of center", "..............###...", Span{14, 16}, true},
		{"left reaches edge", "#######.............", Span{1, 6}, true},
		{"right reaches edge", "...............#####", Span{15, 18}, true},
		{"blank", "....................", Span{}, false},
		{"centered runs off", "############........", Span{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Locate(row(t, tt.row), 0)
			if found != tt.found {
				t.Fatalf("Expected found=%v, got %v (%v)", tt.found, found, got)
			}
			if found && got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

// spread builds a 20x10 spread whose two pixel wide seam sits on columns
// 10-11 for the top half and 11-12 for the bottom half.
func spread(t *testing.T) *bitmap.Bitmap {
	t.Helper()
	b, err := bitmap.New(20, 10)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for y := 0; y < 10; y++ {
		x := 10
		if y >= 5 {
			x = 11
		}
		b.Set(x, y, 1)
		b.Set(x+1, y, 1)
	}
	return b
}

func TestSamples(t *testing.T) {
	for _, workers := range []int{1, 3, 16} {
		starts, ends, err := Samples(spread(t), workers)
		if err != nil {
			t.Fatalf("workers=%d: Samples failed: %v", workers, err)
		}
		if len(starts) != 10 || len(ends) != 10 {
			t.Fatalf("workers=%d: expected 10 samples, got %d/%d", workers, len(starts), len(ends))
		}
		for y := 0; y < 10; y++ {
			wantStart, wantEnd := 10.0, 11.0
			if y >= 5 {
				wantStart, wantEnd = 11, 12
			}
			if starts[y] != (fit.Point{X: wantStart, Y: float64(y)}) {
				t.Errorf("workers=%d row %d: unexpected start %v", workers, y, starts[y])
			}
			if ends[y] != (fit.Point{X: wantEnd, Y: float64(y)}) {
				t.Errorf("workers=%d row %d: unexpected end %v", workers, y, ends[y])
			}
		}
	}
}

func TestSplitPages(t *testing.T) {
	b := spread(t)

	split, err := SplitPages(b, 2)
	if err != nil {
		t.Fatalf("SplitPages failed: %v", err)
	}

	// Start line y = 5x - 48 crosses rows [0,10) at x = 10 and 11.
	// End line y = 5x - 53 crosses them at x = 11 and 12.
	if split.CropEnd != 10 {
		t.Errorf("Expected CropEnd 10, got %d", split.CropEnd)
	}
	if split.CropStart != 12 {
		t.Errorf("Expected CropStart 12, got %d", split.CropStart)
	}
	if split.Left.Width != 11 || split.Left.Height != 10 {
		t.Errorf("Expected 11x10 left page, got %dx%d", split.Left.Width, split.Left.Height)
	}
	if split.Right.Width != 7 || split.Right.Height != 10 {
		t.Errorf("Expected 7x10 right page, got %dx%d", split.Right.Width, split.Right.Height)
	}
	if split.Rows != 10 {
		t.Errorf("Expected 10 sampled rows, got %d", split.Rows)
	}

	// The right page starts at column 12 of the spread
	for y := 0; y < 10; y++ {
		for x := 0; x < split.Right.Width; x++ {
			if split.Right.Get(x, y) != b.Get(12+x, y) {
				t.Fatalf("Right page pixel (%d,%d) differs from spread", x, y)
			}
		}
	}

	t.Logf("start line %+v, end line %+v", split.StartLine, split.EndLine)
}

func TestSplitPagesSkipsRowsWithoutSeam(t *testing.T) {
	b := spread(t)
	// Row 3 becomes blank and must not contribute a sample
	b.Set(10, 3, 0)
	b.Set(11, 3, 0)

	split, err := SplitPages(b, 1)
	if err != nil {
		t.Fatalf("SplitPages failed: %v", err)
	}
	if split.Rows != 9 {
		t.Errorf("Expected 9 sampled rows, got %d", split.Rows)
	}
}

func TestSplitPagesStraightSeam(t *testing.T) {
	b, _ := bitmap.New(20, 10)
	for y := 0; y < 10; y++ {
		b.Set(10, y, 1)
	}

	// Every start has the same x, so no line can be fitted
	_, err := SplitPages(b, 1)
	if !errors.Is(err, fit.ErrInsufficientSamples) {
		t.Errorf("Expected ErrInsufficientSamples, got %v", err)
	}
	if errors.Is(err, ErrSeamNotFound) {
		t.Errorf("The seam was found in every row, got %v", err)
	}
}

func TestSplitPagesBlank(t *testing.T) {
	b, _ := bitmap.New(20, 10)
	_, err := SplitPages(b, 1)
	if !errors.Is(err, ErrSeamNotFound) {
		t.Errorf("Expected ErrSeamNotFound, got %v", err)
	}
	if !errors.Is(err, fit.ErrInsufficientSamples) {
		t.Errorf("Expected ErrInsufficientSamples, got %v", err)
	}
}
