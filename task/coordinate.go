package task

import "fmt"

// Coordinate is one raster cell position.
type Coordinate struct {
	Column int
	Row    int
}

func (c *Coordinate) String() string {
	output := "{Coordinate "
	output += fmt.Sprintf("Column: %d ", c.Column)
	output += fmt.Sprintf("Row: %d}", c.Row)
	return output
}

// Cells lists every coordinate partition p writes on a width x height image, walking p's
// slab along its generation's axis and the full range of the other axis.
func (p *Partition) Cells(width int, height int) []Coordinate {
	var cells []Coordinate
	switch p.Generation {
	case Column:
		start, end := p.Bounds(width)
		for c := start; c < end; c++ {
			for r := 0; r < height; r++ {
				cells = append(cells, Coordinate{Column: c, Row: r})
			}
		}
	case Row:
		start, end := p.Bounds(height)
		for r := start; r < end; r++ {
			for c := 0; c < width; c++ {
				cells = append(cells, Coordinate{Column: c, Row: r})
			}
		}
	}
	return cells
}
