package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsTruncateRemainder(t *testing.T) {
	partitions := Partitions(Column, 3)
	require.Len(t, partitions, 3)

	want := [][2]int{{0, 3}, {3, 6}, {6, 9}}
	for i, p := range partitions {
		start, end := p.Bounds(10)
		assert.Equal(t, want[i], [2]int{start, end}, "partition %d", i)
	}
	assert.Equal(t, 9, Covered(10, 3))
}

func TestBoundsMoreTasksThanIndices(t *testing.T) {
	for _, p := range Partitions(Row, 8) {
		start, end := p.Bounds(5)
		assert.Equal(t, start, end, "partition %d should be empty", p.Number)
	}
	assert.Equal(t, 0, Covered(5, 8))
}

func TestPartitions(t *testing.T) {
	assert.Empty(t, Partitions(Row, 0))
	assert.Empty(t, Partitions(Row, -2))

	partitions := Partitions(Row, 4)
	for i, p := range partitions {
		assert.Equal(t, Row, p.Generation)
		assert.Equal(t, i, p.Number)
		assert.Equal(t, 4, p.Size)
	}
}

// Every cell is written by at most one partition, and exactly the cells of full slabs are
// written at all.
func TestPartitionsAreDisjoint(t *testing.T) {
	for _, generation := range []Generation{Row, Column} {
		for width := 1; width <= 17; width++ {
			for height := 1; height <= 9; height++ {
				for size := 1; size <= 12; size++ {
					seen := make(map[Coordinate]int)
					for _, p := range Partitions(generation, size) {
						for _, cell := range p.Cells(width, height) {
							require.True(t, cell.Column >= 0 && cell.Column < width, "column out of range")
							require.True(t, cell.Row >= 0 && cell.Row < height, "row out of range")
							if owner, ok := seen[cell]; ok {
								t.Fatalf("%s %dx%d size %d: cell %v written by %d and %d", generation, width, height, size, cell, owner, p.Number)
							}
							seen[cell] = p.Number
						}
					}

					want := Covered(height, size) * width
					if generation == Column {
						want = Covered(width, size) * height
					}
					require.Len(t, seen, want, "%s %dx%d size %d", generation, width, height, size)
				}
			}
		}
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Row", Row.String())
	assert.Equal(t, "Column", Column.String())

	p := NewPartition(Column, 2, 8)
	assert.Equal(t, "{Partition Generation: Column Number: 2 Size: 8}", p.String())

	c := Coordinate{Column: 3, Row: 4}
	assert.Equal(t, "{Coordinate Column: 3 Row: 4}", c.String())
}
