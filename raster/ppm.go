package raster

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePPM writes r as an ASCII "P3" image: three header lines followed by one " R G B" line
// per pixel in row-major order.
func EncodePPM(w io.Writer, r *Raster) error {
	bw := bufio.NewWriter(w)

	line := make([]byte, 0, 32)
	line = append(line, "P3\n"...)
	line = strconv.AppendInt(line, int64(r.width), 10)
	line = append(line, ' ')
	line = strconv.AppendInt(line, int64(r.height), 10)
	line = append(line, "\n255\n"...)
	if _, err := bw.Write(line); err != nil {
		return err
	}

	for row := 0; row < r.height; row++ {
		for column := 0; column < r.width; column++ {
			line = line[:0]
			for ch := 0; ch < Channels; ch++ {
				var v uint8
				if ch < r.channels {
					v = r.At(ch, row, column)
				}
				line = append(line, ' ')
				line = strconv.AppendUint(line, uint64(v), 10)
			}
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
