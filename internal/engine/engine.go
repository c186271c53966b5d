package engine

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/ivlev/bookseam/internal/bitmap"
	"github.com/ivlev/bookseam/internal/config"
	"github.com/ivlev/bookseam/internal/deskew"
	"github.com/ivlev/bookseam/internal/morph"
	"github.com/ivlev/bookseam/internal/seam"
)

// Page is an output raster and the name it is saved under
type Page struct {
	Name   string
	Bitmap *bitmap.Bitmap
}

// Diagnostics is the geometry found while processing a spread
type Diagnostics struct {
	Split  *seam.Split
	Margin *deskew.Margin
	Angle  float64 // radians applied to the right page
}

type Result struct {
	Left  *Page
	Right *Page
	Diagnostics
}

// PageName inserts tag before the extension of name: "scan.pbm" with tag
// "l" becomes "scanl.pbm".
func PageName(name, tag string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + tag + ext
}

// Process splits a spread into its pages and straightens the right one.
//
// If the seam cannot be fitted nothing is returned. If the right page
// cannot be deskewed the result still carries the left page, alongside
// the error.
func Process(b *bitmap.Bitmap, name string, cfg *config.Config) (*Result, error) {
	split, err := seam.SplitPages(b, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("разделение разворота: %w", err)
	}

	res := &Result{
		Left:        &Page{Name: PageName(name, "l"), Bitmap: split.Left},
		Diagnostics: Diagnostics{Split: split},
	}

	right := split.Right
	right.ClearMargins(cfg.Margin)

	// The margin is searched on a thickened copy; the clean page is rotated
	bloated := morph.Dilate(right, cfg.DilateIterations)
	margin, err := deskew.FindLeftMargin(bloated, cfg.OutlierSpread)
	if err != nil {
		return res, fmt.Errorf("поиск поля правой страницы: %w", err)
	}
	res.Margin = margin

	angle, err := deskew.Angle(bloated, margin.Line, cfg.MinMarginSlope)
	if err != nil {
		return res, fmt.Errorf("угол наклона правой страницы: %w", err)
	}
	res.Angle = angle

	rotated, err := deskew.Rotate(right, angle, cfg.Workers)
	if err != nil {
		return res, fmt.Errorf("поворот правой страницы: %w", err)
	}
	res.Right = &Page{Name: PageName(name, "r"), Bitmap: rotated}
	return res, nil
}

// Degrees converts radians for display
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
