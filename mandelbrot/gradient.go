package mandelbrot

import (
	"errors"
	"fmt"

	"ParallelMandelbrot/misc"
	"ParallelMandelbrot/raster"
)

var (
	ErrGradient          = errors.New("invalid gradient")
	ErrNoGradientSegment = errors.New("no gradient segment contains intensity")
)

// Segment maps the intensity range [TStart, TEnd) onto a linear blend from StartColor to
// EndColor made of Steps discrete levels.
type Segment struct {
	StartColor Color
	EndColor   Color
	TStart     float64
	TEnd       float64
	Steps      int
}

// Gradient is an ordered list of segments with increasing, non-overlapping ranges. It is
// built once and only read afterwards, so tasks share it freely.
type Gradient []Segment

func DefaultGradient() Gradient {
	purple := Color{R: 76, G: 57, B: 125}
	white := Color{R: 255, G: 255, B: 255}
	black := Color{}
	return Gradient{
		{StartColor: black, EndColor: purple, TStart: 0.0, TEnd: 0.010, Steps: 2000},
		{StartColor: purple, EndColor: white, TStart: 0.010, TEnd: 0.020, Steps: 2000},
		{StartColor: white, EndColor: black, TStart: 0.020, TEnd: 0.050, Steps: 2000},
		{StartColor: black, EndColor: black, TStart: 0.050, TEnd: 1.0, Steps: 2000},
	}
}

func (s *Segment) String() string {
	return fmt.Sprintf("{Segment %s -> %s [%g, %g) Steps: %d}", s.StartColor, s.EndColor, s.TStart, s.TEnd, s.Steps)
}

func (s *Segment) contains(q float64) bool {
	return q >= s.TStart && q < s.TEnd
}

func (g Gradient) Verify() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: no segments", ErrGradient)
	}
	for i := range g {
		s := &g[i]
		if !(s.TStart < s.TEnd) {
			return fmt.Errorf("%w: segment %d %s has an empty range", ErrGradient, i, s)
		}
		if s.Steps <= 0 {
			return fmt.Errorf("%w: segment %d %s needs at least one step", ErrGradient, i, s)
		}
		if i > 0 && s.TStart < g[i-1].TEnd {
			return fmt.Errorf("%w: segment %d %s overlaps segment %d", ErrGradient, i, s, i-1)
		}
	}
	return nil
}

// Lookup returns the first segment whose range contains q.
func (g Gradient) Lookup(q float64) (*Segment, bool) {
	for i := range g {
		if g[i].contains(q) {
			return &g[i], true
		}
	}
	return nil, false
}

// Saturated is the color of the final stop of the gradient.
func (g Gradient) Saturated() [raster.Channels]uint8 {
	end := g[len(g)-1].EndColor
	return [raster.Channels]uint8{end.R, end.G, end.B}
}

// Colorize writes the color for intensity q into pixel. The fractional position of q inside
// its segment is snapped down to one of the segment's Steps levels before blending. An
// intensity outside every segment is a configuration defect and is returned as an error
// wrapping ErrNoGradientSegment.
func (g Gradient) Colorize(pixel *[raster.Channels]uint8, q float64, iteration int) error {
	s, ok := g.Lookup(q)
	if !ok {
		return fmt.Errorf("%w: q %v (iteration %d)", ErrNoGradientSegment, q, iteration)
	}

	level := misc.Quantize((q-s.TStart)/(s.TEnd-s.TStart), s.Steps)
	pixel[0] = misc.LerpUint8(s.StartColor.R, s.EndColor.R, level)
	pixel[1] = misc.LerpUint8(s.StartColor.G, s.EndColor.G, level)
	pixel[2] = misc.LerpUint8(s.StartColor.B, s.EndColor.B, level)
	return nil
}
