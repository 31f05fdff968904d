package viz

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/orbitals/internal/cloud"
)

// Hex formats a point color as #rrggbb.
func Hex(c cloud.RGB) string {
	return toColorful(c).Hex()
}

// Blend mixes a toward b in Lab space; t=0 is a, t=1 is b.
func Blend(a, b cloud.RGB, t float64) cloud.RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return fromColorful(toColorful(a).BlendLab(toColorful(b), t).Clamped())
}

// ParseHex converts #rrggbb to RGB, returning fallback on error.
func ParseHex(s string, fallback cloud.RGB) cloud.RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return fromColorful(c)
}

func toColorful(c cloud.RGB) colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}

func fromColorful(c colorful.Color) cloud.RGB {
	r, g, b := c.RGB255()
	return cloud.RGB{r, g, b}
}
