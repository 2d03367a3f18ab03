package raster

import "fmt"

// Buffers holds two rasters of the same shape and tracks which one is the current source.
// Swapping only flips the index so neither raster is ever aliased.
type Buffers struct {
	slots  [2]*Raster
	source int
}

func NewBuffers(source *Raster, destination *Raster) (*Buffers, error) {
	if source == nil || destination == nil {
		return nil, fmt.Errorf("buffers need two rasters")
	}
	if source == destination {
		return nil, fmt.Errorf("source and destination must be distinct rasters")
	}
	if !source.SameShape(destination) {
		return nil, fmt.Errorf("buffer shapes differ: %s and %s", source, destination)
	}
	return &Buffers{slots: [2]*Raster{source, destination}}, nil
}

func (b *Buffers) Source() *Raster {
	return b.slots[b.source]
}

func (b *Buffers) Destination() *Raster {
	return b.slots[1-b.source]
}

// Swap makes the current destination the next source. Callers must only swap once every
// task reading the current source has returned.
func (b *Buffers) Swap() {
	b.source = 1 - b.source
}
