package viz

import (
	"math"
	"slices"

	"github.com/san-kum/orbitals/internal/cloud"
)

// Camera manages 3D projection to a 2D plane. Points are divided by Extent
// first, so a fitted cloud spans roughly the unit sphere.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
	Extent           float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 4, RotX: -0.35, RotY: 0.6, Zoom: 1.0, Extent: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.1) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.1) }

// Reset restores the default orientation and zoom, keeping the fitted extent.
func (c *Camera) Reset() {
	extent := c.Extent
	*c = *NewCamera()
	c.Extent = extent
}

// Fit sizes the camera to the 98th-percentile radius of points, so a few
// stray samples do not shrink the cloud.
func (c *Camera) Fit(points []cloud.Point) {
	if len(points) == 0 {
		c.Extent = 1
		return
	}
	radii := make([]float64, len(points))
	for i, p := range points {
		radii[i] = p.Radius()
	}
	slices.Sort(radii)
	r := radii[int(0.98*float64(len(radii)-1))]
	if r <= 0 || math.IsNaN(r) {
		r = 1
	}
	c.Extent = r
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p cloud.Vec3) cloud.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// ProjectF converts world coordinates to continuous screen coordinates for
// a sw x sh viewport. Depth grows toward the viewer.
func (c *Camera) ProjectF(p cloud.Vec3, sw, sh float64) (x, y, depth float64, ok bool) {
	extent := c.Extent
	if extent <= 0 {
		extent = 1
	}
	rot := c.RotatePoint(p.Scale(1 / extent)).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-0.1 {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := math.Min(sw, sh) / 2.4
	x = rot.X*scale*pScale + sw/2
	y = -rot.Y*scale*pScale + sh/2
	return x, y, rot.Z, x >= 0 && x < sw && y >= 0 && y < sh
}

// Project is ProjectF rounded to integer pixels.
func (c *Camera) Project(p cloud.Vec3, sw, sh int) (int, int, float64, bool) {
	x, y, d, ok := c.ProjectF(p, float64(sw), float64(sh))
	return int(x), int(y), d, ok
}

// Projected is a visible point in screen space.
type Projected struct {
	X, Y        float64
	Depth       float64
	Probability float64
	Color       cloud.RGB
}

// ProjectCloud projects the visible points and orders them back to front
// for painter's-algorithm drawing.
func ProjectCloud(points []cloud.Point, cam *Camera, sw, sh float64) []Projected {
	out := make([]Projected, 0, len(points))
	for _, p := range points {
		x, y, d, ok := cam.ProjectF(p.Position, sw, sh)
		if !ok {
			continue
		}
		out = append(out, Projected{X: x, Y: y, Depth: d, Probability: p.Probability, Color: p.Color})
	}
	slices.SortStableFunc(out, func(a, b Projected) int {
		switch {
		case a.Depth < b.Depth:
			return -1
		case a.Depth > b.Depth:
			return 1
		}
		return 0
	})
	return out
}

// Mode selects how a cloud is drawn.
type Mode int

const (
	ModePoints Mode = iota
	ModeDensity
)

func (m Mode) String() string {
	if m == ModeDensity {
		return "density"
	}
	return "points"
}

// RenderCloud draws points onto the canvas. Points mode plots one dot per
// sample; density mode fills cells shaded by how many samples land in them.
func RenderCloud(c *Canvas, points []cloud.Point, cam *Camera, mode Mode, theme Theme) {
	if c == nil || cam == nil {
		return
	}
	proj := ProjectCloud(points, cam, float64(c.SubWidth()), float64(c.SubHeight()))
	if mode == ModePoints {
		for _, p := range proj {
			c.Plot(int(p.X), int(p.Y), p.Color)
		}
		return
	}

	counts := make([][]int, c.Height)
	last := make([][]cloud.RGB, c.Height)
	for i := range counts {
		counts[i] = make([]int, c.Width)
		last[i] = make([]cloud.RGB, c.Width)
	}
	peak := 0
	for _, p := range proj {
		col, row := int(p.X)/2, int(p.Y)/4
		if row < 0 || row >= c.Height || col < 0 || col >= c.Width {
			continue
		}
		counts[row][col]++
		last[row][col] = p.Color
		peak = max(peak, counts[row][col])
	}
	if peak == 0 {
		return
	}
	bg := ParseHex(string(theme.Background), cloud.RGB{})
	for row := range counts {
		for col, n := range counts[row] {
			if n == 0 {
				continue
			}
			t := math.Sqrt(float64(n) / float64(peak))
			c.Fill(col*2, row*4, Blend(bg, last[row][col], 0.25+0.75*t))
		}
	}
}

// RenderAxes draws the x, y and z axes of length l in the theme's muted color.
func RenderAxes(c *Canvas, l float64, cam *Camera, theme Theme) {
	muted := ParseHex(string(theme.Muted), cloud.RGB{102, 102, 102})
	o := cloud.Vec3{}
	sw, sh := c.SubWidth(), c.SubHeight()
	for _, axis := range []cloud.Vec3{{X: l}, {Y: l}, {Z: l}} {
		x0, y0, _, v0 := cam.Project(o, sw, sh)
		x1, y1, _, v1 := cam.Project(axis, sw, sh)
		if v0 || v1 {
			c.DrawLine(x0, y0, x1, y1, muted)
		}
	}
}
