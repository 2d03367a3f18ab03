// Package convolution applies a square weight mask to a raster for a number of passes, each
// pass split into row slabs that run in parallel.
package convolution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"ParallelMandelbrot/misc"
	"ParallelMandelbrot/raster"
	"ParallelMandelbrot/task"
	"ParallelMandelbrot/worker"
)

var ErrPasses = errors.New("convolution needs at least one pass")

type Convolution struct {
	logger   bslogger.Logger
	pool     *worker.Pool
	settings Settings
}

// NewConvolution expects settings that already passed Verify.
func NewConvolution(settings Settings, pool *worker.Pool) Convolution {
	return Convolution{
		logger:   misc.NewLogger("Convolution", nil),
		pool:     pool,
		settings: settings,
	}
}

func (c *Convolution) Settings() Settings {
	return c.settings
}

// Apply writes the weighted sum of mask over the neighborhood of (channel, row, column) in src
// into the same cell of dst. Neighbors outside the image are skipped rather than padded, so
// border cells only collect the weights that land inside. The sum is rounded and clamped to
// [0, 255].
func Apply(src *raster.Raster, dst *raster.Raster, mask Mask, channel int, row int, column int) {
	height, width := src.Height(), src.Width()
	displ := len(mask) / 2

	value := 0.0
	for k := -displ; k <= displ; k++ {
		cy := row + k
		if cy < 0 || cy > height-1 {
			continue
		}
		for l := -displ; l <= displ; l++ {
			cx := column + l
			if cx < 0 || cx > width-1 {
				continue
			}
			value += mask[k+displ][l+displ] * float64(src.At(channel, cy, cx))
		}
	}
	dst.Set(channel, row, column, misc.ClampChannel(value))
}

// Slab convolves every channel and column of the rows partition covers.
func Slab(src *raster.Raster, dst *raster.Raster, mask Mask, partition task.Partition) {
	start, end := partition.Bounds(src.Height())
	for row := start; row < end; row++ {
		for channel := 0; channel < src.Channels(); channel++ {
			for column := 0; column < src.Width(); column++ {
				Apply(src, dst, mask, channel, row, column)
			}
		}
	}
}

// Convolve runs the configured number of Gaussian passes from src into dst. The mask is built
// once for all passes. See ConvolveMask for how the two rasters are used.
func (c *Convolution) Convolve(ctx context.Context, src *raster.Raster, dst *raster.Raster) (*raster.Raster, error) {
	mask, err := GaussianKernel(c.settings.KernelWidth, c.settings.KernelWidth, c.settings.Sigma)
	if err != nil {
		return nil, err
	}
	return c.ConvolveMask(ctx, src, dst, mask)
}

// ConvolveMask runs the configured number of passes of mask. Each pass reads one raster and
// writes the other; between passes the two are swapped so the next pass reads what the last
// one wrote. Both rasters are overwritten and the one holding the final pass is returned.
//
// Rows past the last full slab are never written by any pass.
func (c *Convolution) ConvolveMask(ctx context.Context, src *raster.Raster, dst *raster.Raster, mask Mask) (*raster.Raster, error) {
	if err := mask.Verify(); err != nil {
		return nil, err
	}
	if c.settings.Passes < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrPasses, c.settings.Passes)
	}
	buffers, err := raster.NewBuffers(src, dst)
	if err != nil {
		return nil, err
	}

	if dropped := src.Height() - task.Covered(src.Height(), c.settings.TaskSize); dropped > 0 {
		c.logger.Warningf("Height %d is not a multiple of task size %d; the last %d rows will not be filtered", src.Height(), c.settings.TaskSize, dropped)
	}

	startTime := time.Now()
	partitions := task.Partitions(task.Row, c.settings.TaskSize)
	for pass := 0; pass < c.settings.Passes; pass++ {
		source, destination := buffers.Source(), buffers.Destination()
		err := c.pool.Fork(ctx, partitions, func(partition task.Partition) error {
			Slab(source, destination, mask, partition)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("pass %d: %w", pass, err)
		}

		if pass < c.settings.Passes-1 {
			buffers.Swap()
		}
	}

	c.logger.Debugf("Convolved %s with a %dx%d mask for %d passes in %s", src, mask.Width(), mask.Width(), c.settings.Passes, time.Since(startTime))
	return buffers.Destination(), nil
}
