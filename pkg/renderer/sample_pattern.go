package renderer

import (
	"fmt"
	"math"
)

// SampleOffset is one sub-pixel sample position relative to the pixel centre,
// in pixels, with its blend weight
type SampleOffset struct {
	DX, DY float64
	Weight float64
}

// SamplePattern is a Size x Size grid of sub-pixel samples. Offsets are stored
// row-major: offset k occupies sub-grid cell (k%Size, k/Size).
type SamplePattern struct {
	Name    string
	Size    int
	Offsets []SampleOffset
}

// gridPattern builds a pattern on the cell centres of a size x size grid
func gridPattern(name string, size int, weight func(col, row int) float64) SamplePattern {
	offsets := make([]SampleOffset, 0, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			offsets = append(offsets, SampleOffset{
				DX:     (float64(col)+0.5)/float64(size) - 0.5,
				DY:     (float64(row)+0.5)/float64(size) - 0.5,
				Weight: weight(col, row),
			})
		}
	}
	return SamplePattern{Name: name, Size: size, Offsets: offsets}
}

// TentSamplePattern is the default 3x3 pattern with 1-2-1 tent weights on both axes
func TentSamplePattern() SamplePattern {
	tent := [3]float64{1, 2, 1}
	return gridPattern("tent", 3, func(col, row int) float64 {
		return tent[col] * tent[row]
	})
}

// UniformSamplePattern is an n x n grid with equal weights
func UniformSamplePattern(n int) SamplePattern {
	return gridPattern(fmt.Sprintf("uniform%d", n), n, func(int, int) float64 { return 1 })
}

// CornerSamplePattern is a 3x3 grid that blends the centre at double weight
// with the four corners, ignoring edge samples
func CornerSamplePattern() SamplePattern {
	return gridPattern("corner", 3, func(col, row int) float64 {
		switch {
		case col == 1 && row == 1:
			return 2
		case col != 1 && row != 1:
			return 1
		default:
			return 0
		}
	})
}

// SingleSamplePattern traces one ray through each pixel centre
func SingleSamplePattern() SamplePattern {
	return gridPattern("single", 1, func(int, int) float64 { return 1 })
}

// SamplePatternByName returns a built-in pattern: tent, corner, single or uniformN
func SamplePatternByName(name string) (SamplePattern, error) {
	switch name {
	case "tent", "":
		return TentSamplePattern(), nil
	case "corner":
		return CornerSamplePattern(), nil
	case "single":
		return SingleSamplePattern(), nil
	}

	var n int
	if _, err := fmt.Sscanf(name, "uniform%d", &n); err == nil && n > 0 {
		return UniformSamplePattern(n), nil
	}
	return SamplePattern{}, fmt.Errorf("%w: unknown pattern %q", ErrInvalidSamplePattern, name)
}

// Count returns the number of sub-samples per pixel
func (p SamplePattern) Count() int {
	return len(p.Offsets)
}

// TotalWeight returns the sum of all blend weights
func (p SamplePattern) TotalWeight() float64 {
	total := 0.0
	for _, o := range p.Offsets {
		total += o.Weight
	}
	return total
}

// Validate checks the pattern is a complete grid with usable weights
func (p SamplePattern) Validate() error {
	if p.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrInvalidSamplePattern, p.Size)
	}
	if len(p.Offsets) != p.Size*p.Size {
		return fmt.Errorf("%w: %d offsets for a %dx%d grid", ErrInvalidSamplePattern, len(p.Offsets), p.Size, p.Size)
	}
	for k, o := range p.Offsets {
		if o.Weight < 0 || math.IsNaN(o.Weight) || math.IsInf(o.Weight, 0) {
			return fmt.Errorf("%w: offset %d has weight %v", ErrInvalidSamplePattern, k, o.Weight)
		}
	}
	if !(p.TotalWeight() > 0) {
		return fmt.Errorf("%w: weights sum to zero", ErrInvalidSamplePattern)
	}
	return nil
}
