package mandelbrot

import (
	"encoding/json"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple. In settings files it is written either as a "#rrggbb" string or as
// an {"R":..,"G":..,"B":..} object.
type Color struct {
	R uint8
	G uint8
	B uint8
}

func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

func (c Color) String() string {
	return c.Hex()
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		parsed, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("parsing color %q: %w", hex, err)
		}
		c.R, c.G, c.B = parsed.RGB255()
		return nil
	}

	var rgb struct {
		R uint8
		G uint8
		B uint8
	}
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("parsing color %s: %w", data, err)
	}
	*c = Color(rgb)
	return nil
}
