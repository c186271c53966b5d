package report

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/bookseam/internal/fit"
	"github.com/ivlev/bookseam/internal/system"
)

// Report records the geometry found for one spread
type Report struct {
	Version string `yaml:"version"`
	Input   string `yaml:"input"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Seam    Seam   `yaml:"seam"`
	Pages   []Page `yaml:"pages"`
	Deskew  Deskew `yaml:"deskew"`
}

// Seam describes the fitted gutter edges
type Seam struct {
	Rows      int      `yaml:"rows"` // rows that yielded a sample
	StartLine fit.Line `yaml:"start_line"`
	EndLine   fit.Line `yaml:"end_line"`
	CropEnd   int      `yaml:"crop_end"`
	CropStart int      `yaml:"crop_start"`
}

// Page is one output raster
type Page struct {
	Side   string `yaml:"side"` // "left" or "right"
	Output string `yaml:"output"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Deskew describes the right page rotation
type Deskew struct {
	EdgePoints int      `yaml:"edge_points"`
	Kept       int      `yaml:"kept"`
	Margin     fit.Line `yaml:"margin"`
	Radians    float64  `yaml:"radians"`
	Degrees    float64  `yaml:"degrees"`
}

// Write stores the report as YAML. The file is replaced in one step, so a
// reader never sees a half written report.
func Write(r *Report, path string) error {
	return system.WriteAtomic(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report %s: %w", path, err)
		}
		return enc.Close()
	})
}

// Read reads a report from a YAML file
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("report %s: %w", path, err)
	}

	return &r, nil
}
