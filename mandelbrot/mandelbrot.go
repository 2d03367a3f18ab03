package mandelbrot

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/samber/lo"

	"ParallelMandelbrot/misc"
	"ParallelMandelbrot/raster"
	"ParallelMandelbrot/task"
	"ParallelMandelbrot/worker"
)

type Mandelbrot struct {
	logger   bslogger.Logger
	mathLog2 float64
	pool     *worker.Pool
	settings Settings
}

// NewMandelbrot expects settings that already passed Verify.
func NewMandelbrot(settings Settings, pool *worker.Pool) Mandelbrot {
	mandelbrot := Mandelbrot{
		logger:   misc.NewLogger("Mandelbrot", nil),
		mathLog2: math.Log(2),
		pool:     pool,
		settings: settings,
	}

	return mandelbrot
}

func (m *Mandelbrot) Settings() Settings {
	return m.settings
}

// ConvertPixelCoordinateToComplexCoordinate maps a raster cell onto the complex plane. The
// offsets fix the rendered window around -1.10-0.35i; ratio only stretches the real axis.
func (m *Mandelbrot) ConvertPixelCoordinateToComplexCoordinate(c task.Coordinate, width int, height int) complex128 {
	ratio := m.settings.Ratio / 10.0
	x := float64(c.Column)/float64(width)*ratio - 1.10
	y := float64(c.Row)/float64(height)*0.1 - 0.35
	return complex(x, y)
}

// Iterate runs z = z*z + c from zero while |z| stays within the escape radius, for at most the
// maximum number of iterations. It returns the iteration count and the final z.
func (m *Mandelbrot) Iterate(c complex128) (int, complex128) {
	var z complex128
	iteration := 0
	for cmplx.Abs(z) <= m.settings.EscapeRadius && iteration < m.settings.MaxIterations {
		z = z*z + c
		iteration++
	}
	return iteration, z
}

// EscapeTime iterates z = z*z + c from zero and reports whether c is inside the set, meaning
// the orbit stayed within the escape radius for every one of the maximum iterations. The
// smooth intensity derived from the final |z| is turned into a color written to pixel.
//
// The intensity formula is applied to inside points as well. Their intensity lands beyond the
// gradient (or is NaN when |z| < 1) and is drawn with the gradient's final color.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
func (m *Mandelbrot) EscapeTime(c complex128, pixel *[raster.Channels]uint8) (bool, error) {
	iteration, z := m.Iterate(c)
	inside := iteration >= m.settings.MaxIterations

	length := math.Sqrt(real(z)*real(z) + imag(z)*imag(z))
	q := float64(iteration) + 1 - math.Log(math.Log(length))/m.mathLog2
	q /= float64(m.settings.MaxIterations)

	if _, ok := m.settings.Gradient.Lookup(q); inside && !ok {
		*pixel = m.settings.Gradient.Saturated()
		return true, nil
	}
	return inside, m.settings.Gradient.Colorize(pixel, q, iteration)
}

// Slab renders every row of the columns partition covers and returns how many of those pixels
// are inside the set. Slabs of one generation touch disjoint columns.
func (m *Mandelbrot) Slab(image *raster.Raster, partition task.Partition) (int, error) {
	var pixel [raster.Channels]uint8
	pixelsInside := 0
	width, height := image.Width(), image.Height()

	start, end := partition.Bounds(width)
	for column := start; column < end; column++ {
		for row := 0; row < height; row++ {
			coordinate := task.Coordinate{Column: column, Row: row}
			inside, err := m.EscapeTime(m.ConvertPixelCoordinateToComplexCoordinate(coordinate, width, height), &pixel)
			if err != nil {
				return pixelsInside, fmt.Errorf("coloring %s: %w", &coordinate, err)
			}
			if inside {
				pixelsInside++
			}
			image.SetPixel(row, column, pixel)
		}
	}
	return pixelsInside, nil
}

// Generate renders the field into image with one task per column slab and returns the total
// number of pixels inside the set. Columns past the last full slab are left untouched.
func (m *Mandelbrot) Generate(ctx context.Context, image *raster.Raster) (int, error) {
	startTime := time.Now()
	partitions := task.Partitions(task.Column, m.settings.TaskSize)

	// One slot per task; read only after the join.
	pixelsInside := make([]int, len(partitions))
	err := m.pool.Fork(ctx, partitions, func(partition task.Partition) error {
		count, err := m.Slab(image, partition)
		pixelsInside[partition.Number] = count
		return err
	})
	if err != nil {
		return 0, err
	}

	total := lo.Sum(pixelsInside)
	m.logger.Debugf("Generated %s with %d tasks in %s [Inside: %d]", image, len(partitions), time.Since(startTime), total)
	return total, nil
}
