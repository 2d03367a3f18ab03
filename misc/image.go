package misc

import "math"

func LerpFloat64(v1 float64, v2 float64, fraction float64) float64 {
	return v1 + (v2-v1)*fraction
}

// LerpUint8 truncates toward zero, so a fraction just below 1 never reaches v2.
func LerpUint8(v1 uint8, v2 uint8, fraction float64) uint8 {
	return uint8(LerpFloat64(float64(v1), float64(v2), fraction))
}

// Quantize snaps fraction in [0, 1) down to one of steps evenly spaced levels.
func Quantize(fraction float64, steps int) float64 {
	if steps <= 0 {
		return fraction
	}
	return math.Floor(fraction*float64(steps)) / float64(steps)
}

// ClampChannel rounds v to the nearest integer and clamps it to a color channel.
func ClampChannel(v float64) uint8 {
	v = math.Round(v)
	if math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}
