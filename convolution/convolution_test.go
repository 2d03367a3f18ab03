package convolution

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ParallelMandelbrot/raster"
	"ParallelMandelbrot/task"
	"ParallelMandelbrot/worker"
)

func randomRaster(t *testing.T, height int, width int, seed int64) *raster.Raster {
	t.Helper()
	r, err := raster.New(raster.Channels, height, width)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for i := range r.Pix {
		r.Pix[i] = uint8(rng.Intn(256))
	}
	return r
}

func newTestConvolution(t *testing.T, settings Settings) Convolution {
	t.Helper()
	require.NoError(t, settings.Verify())
	return NewConvolution(settings, worker.NewPool("test", 4))
}

func ones(width int, weight float64) Mask {
	mask := make(Mask, width)
	for k := range mask {
		mask[k] = make([]float64, width)
		for l := range mask[k] {
			mask[k][l] = weight
		}
	}
	return mask
}

// sequential runs passes of mask one cell at a time without any partitioning.
func sequential(t *testing.T, src *raster.Raster, mask Mask, passes int) *raster.Raster {
	t.Helper()
	current := src.Clone()
	for pass := 0; pass < passes; pass++ {
		next, err := raster.New(current.Channels(), current.Height(), current.Width())
		require.NoError(t, err)
		for ch := 0; ch < current.Channels(); ch++ {
			for row := 0; row < current.Height(); row++ {
				for column := 0; column < current.Width(); column++ {
					Apply(current, next, mask, ch, row, column)
				}
			}
		}
		current = next
	}
	return current
}

func TestApplySkipsOutOfRangeNeighbors(t *testing.T) {
	src, err := raster.New(raster.Channels, 1, 1)
	require.NoError(t, err)
	src.SetPixel(0, 0, [raster.Channels]uint8{200, 17, 255})
	dst, err := raster.New(raster.Channels, 1, 1)
	require.NoError(t, err)

	// Only the center weight lands inside a single pixel image
	for ch := 0; ch < raster.Channels; ch++ {
		Apply(src, dst, ones(3, 1.0), ch, 0, 0)
	}
	assert.Equal(t, src.Pix, dst.Pix)

	// Skipped weights are not redistributed
	Apply(src, dst, ones(3, 1.0/9.0), 0, 0, 0)
	assert.Equal(t, uint8(22), dst.At(0, 0, 0))
}

func TestApplyCorner(t *testing.T) {
	src, err := raster.New(raster.Channels, 3, 3)
	require.NoError(t, err)
	for i := range src.Pix {
		src.Pix[i] = 10
	}
	dst, err := raster.New(raster.Channels, 3, 3)
	require.NoError(t, err)

	mask := ones(3, 1.0)
	Apply(src, dst, mask, 0, 0, 0)
	Apply(src, dst, mask, 0, 1, 1)
	Apply(src, dst, mask, 0, 0, 1)

	assert.Equal(t, uint8(40), dst.At(0, 0, 0))
	assert.Equal(t, uint8(90), dst.At(0, 1, 1))
	assert.Equal(t, uint8(60), dst.At(0, 0, 1))
}

func TestApplyClamps(t *testing.T) {
	src, err := raster.New(raster.Channels, 3, 3)
	require.NoError(t, err)
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	dst, err := raster.New(raster.Channels, 3, 3)
	require.NoError(t, err)

	Apply(src, dst, ones(3, 1.0), 1, 1, 1)
	assert.Equal(t, uint8(255), dst.At(1, 1, 1))

	Apply(src, dst, ones(3, -1.0), 1, 1, 1)
	assert.Equal(t, uint8(0), dst.At(1, 1, 1))
}

func TestIdentityPassesLeaveRasterUnchanged(t *testing.T) {
	for _, passes := range []int{1, 2, 3, 7} {
		src := randomRaster(t, 8, 6, 1)
		original := src.Clone()
		dst, err := raster.New(raster.Channels, 8, 6)
		require.NoError(t, err)

		c := newTestConvolution(t, Settings{Passes: passes, TaskSize: 4})
		final, err := c.ConvolveMask(context.Background(), src, dst, Identity())
		require.NoError(t, err)
		assert.Equal(t, original.Pix, final.Pix, "passes %d", passes)
	}
}

func TestConvolveMatchesSequentialPasses(t *testing.T) {
	mask, err := GaussianKernel(5, 5, 1.0)
	require.NoError(t, err)

	for _, passes := range []int{1, 2, 3} {
		src := randomRaster(t, 8, 10, 2)
		want := sequential(t, src, mask, passes)

		dst, err := raster.New(raster.Channels, 8, 10)
		require.NoError(t, err)
		c := newTestConvolution(t, Settings{Passes: passes, TaskSize: 4})
		final, err := c.ConvolveMask(context.Background(), src, dst, mask)
		require.NoError(t, err)
		assert.Equal(t, want.Pix, final.Pix, "passes %d", passes)

		// The final pass lands in dst after an even number of swaps
		if passes%2 == 1 {
			assert.Same(t, dst, final)
		} else {
			assert.Same(t, src, final)
		}
	}
}

func TestConvolveIsIndependentOfTaskSize(t *testing.T) {
	var reference []uint8
	for _, taskSize := range []int{1, 2, 4, 8} {
		src := randomRaster(t, 8, 5, 3)
		dst, err := raster.New(raster.Channels, 8, 5)
		require.NoError(t, err)

		c := newTestConvolution(t, Settings{KernelWidth: 5, Sigma: 1.0, Passes: 3, TaskSize: taskSize})
		final, err := c.Convolve(context.Background(), src, dst)
		require.NoError(t, err)

		if reference == nil {
			reference = final.Pix
			continue
		}
		assert.Equal(t, reference, final.Pix, "task size %d", taskSize)
	}
}

func TestConvolveSkipsTrailingRows(t *testing.T) {
	src := randomRaster(t, 5, 4, 4)
	dst, err := raster.New(raster.Channels, 5, 4)
	require.NoError(t, err)
	for i := range dst.Pix {
		dst.Pix[i] = 9
	}

	c := newTestConvolution(t, Settings{Passes: 1, TaskSize: 2})
	final, err := c.ConvolveMask(context.Background(), src, dst, ones(3, 1.0/9.0))
	require.NoError(t, err)

	covered := task.Covered(5, 2)
	for ch := 0; ch < raster.Channels; ch++ {
		for column := 0; column < 4; column++ {
			assert.Equal(t, uint8(9), final.At(ch, covered, column))
		}
	}
}

func TestConvolveRejectsBadInput(t *testing.T) {
	src := randomRaster(t, 4, 4, 5)
	dst, err := raster.New(raster.Channels, 4, 4)
	require.NoError(t, err)
	c := newTestConvolution(t, Settings{Passes: 1, TaskSize: 2})

	_, err = c.ConvolveMask(context.Background(), src, dst, ones(2, 0.25))
	assert.ErrorIs(t, err, ErrKernelSize)

	_, err = c.ConvolveMask(context.Background(), src, dst, Mask{{1, 0, 0}})
	assert.ErrorIs(t, err, ErrKernelSize)

	_, err = c.ConvolveMask(context.Background(), src, src, Identity())
	assert.Error(t, err)

	c.settings.Passes = 0
	_, err = c.ConvolveMask(context.Background(), src, dst, Identity())
	assert.ErrorIs(t, err, ErrPasses)
}

func TestSettingsVerify(t *testing.T) {
	var s Settings
	require.NoError(t, s.Verify())
	assert.Equal(t, Settings{KernelWidth: 5, Passes: 20, Sigma: 0.37, TaskSize: 256}, s)

	s = Settings{KernelWidth: 4}
	assert.ErrorIs(t, s.Verify(), ErrKernelSize)

	s = Settings{KernelWidth: -3}
	assert.ErrorIs(t, s.Verify(), ErrKernelSize)
}
