package task

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	Row Generation = iota
	Column
)

// Generation is the image axis a set of partitions slices.
type Generation int

func (g Generation) String() string {
	return []string{
		"Row", "Column",
	}[g]
}

// Partition is one slab of a disjoint tiling of an axis into Size equal parts.
type Partition struct {
	Generation Generation
	Number     int
	Size       int
}

func NewPartition(generation Generation, number int, size int) Partition {
	return Partition{
		Generation: generation,
		Number:     number,
		Size:       size,
	}
}

// Partitions returns the size partitions of one generation, numbered 0 to size-1.
func Partitions(generation Generation, size int) []Partition {
	if size <= 0 {
		return nil
	}
	return lo.Map(lo.Range(size), func(number int, _ int) Partition {
		return NewPartition(generation, number, size)
	})
}

func (p *Partition) String() string {
	output := "{Partition "
	output += fmt.Sprintf("Generation: %s ", p.Generation)
	output += fmt.Sprintf("Number: %d ", p.Number)
	output += fmt.Sprintf("Size: %d}", p.Size)
	return output
}

// Bounds returns the half-open range [start, end) this partition covers along an axis of the
// given extent. Every slab is extent/Size wide, so when extent is not a multiple of Size the
// trailing extent%Size indices belong to no partition and are never processed.
func (p *Partition) Bounds(extent int) (int, int) {
	if p.Size <= 0 {
		return 0, 0
	}
	slab := extent / p.Size
	return p.Number * slab, (p.Number + 1) * slab
}

// Covered returns how many indices of an axis of the given extent all partitions of size
// together process.
func Covered(extent int, size int) int {
	if size <= 0 {
		return 0
	}
	return (extent / size) * size
}
