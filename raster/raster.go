// Package raster holds the shared pixel buffer both kernels write into.
package raster

import (
	"errors"
	"fmt"
)

// Channels is the number of color channels (red, green, blue) of every raster.
const Channels = 3

var ErrDimensions = errors.New("raster dimensions must be positive")

// Raster is a channel-major buffer indexed by (channel, row, column). It is allocated once and
// never resized. Concurrent writers must touch disjoint cells.
type Raster struct {
	channels int
	height   int
	width    int

	Pix []uint8
}

func New(channels int, height int, width int) (*Raster, error) {
	if channels <= 0 || height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: got %dx%dx%d", ErrDimensions, channels, height, width)
	}
	return &Raster{
		channels: channels,
		height:   height,
		width:    width,
		Pix:      make([]uint8, channels*height*width),
	}, nil
}

func (r *Raster) Channels() int { return r.channels }
func (r *Raster) Height() int   { return r.height }
func (r *Raster) Width() int    { return r.width }

func (r *Raster) offset(channel int, row int, column int) int {
	return (channel*r.height+row)*r.width + column
}

// At returns the value of one cell. Out of range indices panic.
func (r *Raster) At(channel int, row int, column int) uint8 {
	return r.Pix[r.offset(channel, row, column)]
}

func (r *Raster) Set(channel int, row int, column int, value uint8) {
	r.Pix[r.offset(channel, row, column)] = value
}

// SetPixel writes an RGB triple at (row, column).
func (r *Raster) SetPixel(row int, column int, pixel [Channels]uint8) {
	for ch := 0; ch < r.channels && ch < Channels; ch++ {
		r.Set(ch, row, column, pixel[ch])
	}
}

// Clone returns a deep copy with the same dimensions.
func (r *Raster) Clone() *Raster {
	c := &Raster{channels: r.channels, height: r.height, width: r.width, Pix: make([]uint8, len(r.Pix))}
	copy(c.Pix, r.Pix)
	return c
}

// SameShape reports whether both rasters share channel count, height and width.
func (r *Raster) SameShape(o *Raster) bool {
	return r.channels == o.channels && r.height == o.height && r.width == o.width
}

func (r *Raster) String() string {
	return fmt.Sprintf("{Raster Channels: %d Height: %d Width: %d}", r.channels, r.height, r.width)
}
