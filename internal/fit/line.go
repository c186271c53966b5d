package fit

import (
	"errors"
	"math"
)

var ErrInsufficientSamples = errors.New("fit: need at least two distinct x values")

// DefaultSpread is the half width of the outlier window, in standard
// deviations of x.
const DefaultSpread = 0.25

// Point is a sample in image coordinates (x right, y down)
type Point struct {
	X, Y float64
}

// Line is y = M*x + B
type Line struct {
	M float64 `yaml:"m"`
	B float64 `yaml:"b"`
}

// At returns the y of the line at x
func (l Line) At(x float64) float64 {
	return l.M*x + l.B
}

// Fit returns the least squares line through points
func Fit(points []Point) (Line, error) {
	if len(points) < 2 {
		return Line{}, ErrInsufficientSamples
	}

	// Running means
	var xAvg, yAvg float64
	for i, p := range points {
		n := float64(i + 1)
		xAvg = xAvg*(n-1)/n + p.X/n
		yAvg = yAvg*(n-1)/n + p.Y/n
	}

	var num, den float64
	for _, p := range points {
		num += (p.X - xAvg) * (p.Y - yAvg)
		den += (p.X - xAvg) * (p.X - xAvg)
	}
	if den == 0 {
		return Line{}, ErrInsufficientSamples
	}

	m := num / den
	return Line{M: m, B: yAvg - m*xAvg}, nil
}

// RemoveOutliers keeps the points whose x lies within DefaultSpread
// standard deviations of the mean x.
func RemoveOutliers(points []Point) []Point {
	return RemoveOutliersWithin(points, DefaultSpread)
}

// RemoveOutliersWithin keeps the points whose x lies within k population
// standard deviations of the mean x.
func RemoveOutliersWithin(points []Point, k float64) []Point {
	if len(points) == 0 {
		return []Point{}
	}

	var sum float64
	for _, p := range points {
		sum += p.X
	}
	mean := sum / float64(len(points))

	var ssd float64
	for _, p := range points {
		ssd += (p.X - mean) * (p.X - mean)
	}
	window := math.Sqrt(ssd/float64(len(points))) * k

	result := make([]Point, 0, len(points))
	for _, p := range points {
		if mean-window <= p.X && p.X <= mean+window {
			result = append(result, p)
		}
	}
	return result
}
