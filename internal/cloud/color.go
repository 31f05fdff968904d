package cloud

import "math"

// Base hues per angular momentum.
var (
	ColorS       = RGB{100, 150, 255}
	ColorP       = RGB{100, 255, 150}
	ColorD       = RGB{200, 100, 255}
	ColorDefault = RGB{100, 230, 255}
)

const depthScale = 10.0

// BaseColor returns the hue family for l.
func BaseColor(l int) RGB {
	switch l {
	case 0:
		return ColorS
	case 1:
		return ColorP
	case 2:
		return ColorD
	}
	return ColorDefault
}

// ColorFor maps a point to RGB. Brightness follows probability; a slight
// darkening toward -z gives a depth cue. It is a pure function.
func ColorFor(l int, probability float64, pos Vec3) RGB {
	p := probability
	if math.IsNaN(p) {
		p = 0
	}
	p = clamp(p, 0, 1)
	intensity := 0.5 + 0.5*p

	z := pos.Z
	if math.IsNaN(z) {
		z = 0
	}
	depth := 0.9 + 0.1*(0.5+0.5*math.Tanh(z/depthScale))

	base := BaseColor(l)
	var out RGB
	for i, c := range base {
		out[i] = channel(float64(c) * intensity * depth)
	}
	return out
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
