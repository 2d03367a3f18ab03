package convolution

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrKernelSize = errors.New("convolution kernel must be square with an odd, positive width")
	ErrSigma      = errors.New("sigma must be positive")
)

// Mask is a square grid of weights with an odd width. Mask[k][l] weighs the neighbor k rows
// and l columns away from the top left corner of the window centered on the target cell.
type Mask [][]float64

// Width returns the side length of the mask.
func (m Mask) Width() int {
	return len(m)
}

func (m Mask) Verify() error {
	width := len(m)
	if width == 0 || width%2 == 0 {
		return fmt.Errorf("%w: got %d rows", ErrKernelSize, width)
	}
	for i, row := range m {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d weights, want %d", ErrKernelSize, i, len(row), width)
		}
	}
	return nil
}

// Sum returns the total weight of the mask.
func (m Mask) Sum() float64 {
	sum := 0.0
	for _, row := range m {
		for _, w := range row {
			sum += w
		}
	}
	return sum
}

// Identity returns a 1x1 mask that copies its source.
func Identity() Mask {
	return Mask{{1.0}}
}

// GaussianKernel returns a width x height mask of exp(-(x²+y²)/(2σ²)) weights around the
// center cell, normalized so all weights sum to 1.
func GaussianKernel(width int, height int, sigma float64) (Mask, error) {
	if width <= 0 || height <= 0 || width%2 == 0 || height%2 == 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrKernelSize, width, height)
	}
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: got %g", ErrSigma, sigma)
	}

	twoSigmaSq := 2 * sigma * sigma
	centerX, centerY := width/2, height/2
	sum := 0.0

	mask := make(Mask, height)
	for k := range mask {
		mask[k] = make([]float64, width)
		for l := range mask[k] {
			x := float64(l - centerX)
			y := float64(k - centerY)
			mask[k][l] = math.Exp(-(x*x + y*y) / twoSigmaSq)
			sum += mask[k][l]
		}
	}

	for k := range mask {
		for l := range mask[k] {
			mask[k][l] /= sum
		}
	}
	return mask, nil
}
