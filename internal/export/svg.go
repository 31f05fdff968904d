package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orbitals/internal/cloud"
	"github.com/san-kum/orbitals/internal/viz"
)

const DefaultSVGSize = 800

// CloudToSVG draws points as a scatter plot seen through cam, back to
// front. A nil camera is fitted to the points.
func CloudToSVG(points []cloud.Point, cam *viz.Camera, width, height int) string {
	if cam == nil {
		cam = viz.NewCamera()
		cam.Fit(points)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#05060a"/>
<g stroke="none">
`, width, height, width, height))

	base := math.Max(0.6, float64(min(width, height))/500)
	for _, p := range viz.ProjectCloud(points, cam, float64(width), float64(height)) {
		r := base * (0.6 + 0.8*p.Probability)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.2f"/>
`, p.X, p.Y, r, viz.Hex(p.Color), 0.35+0.65*p.Probability))
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}
