package cloud

import (
	"math"

	"github.com/san-kum/orbitals/internal/quantum"
)

type Vec3 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64      { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}

// RGB is a color with channels in [0, 255].
type RGB [3]uint8

// Point is one accepted sample. Points are plain values with no references
// back into the engine.
type Point struct {
	Position    Vec3    `json:"position" msgpack:"position"`
	Probability float64 `json:"probability" msgpack:"probability"`
	Color       RGB     `json:"color" msgpack:"color"`
}

// Radius is the distance of the point from the nucleus.
func (p Point) Radius() float64 { return p.Position.Length() }

// Request describes one cloud to generate. Cutoff is not used by the engine;
// it travels with the request so callers can apply it with ApplyCutoff.
type Request struct {
	N         int     `json:"n" yaml:"n"`
	L         int     `json:"l" yaml:"l"`
	M         int     `json:"m" yaml:"m"`
	NumPoints int     `json:"num_points" yaml:"num_points"`
	Cutoff    float64 `json:"cutoff" yaml:"cutoff"`
}

// RequestFor builds a request for a catalog state.
func RequestFor(st quantum.State, numPoints int, cutoff float64) Request {
	return Request{N: st.N, L: st.L, M: st.M, NumPoints: numPoints, Cutoff: cutoff}
}

func (r Request) Validate() error {
	if !quantum.Valid(r.N, r.L, r.M) {
		return &RequestError{Request: r, Reason: "quantum numbers out of range"}
	}
	if r.NumPoints <= 0 {
		return &RequestError{Request: r, Reason: "point count must be positive"}
	}
	if math.IsNaN(r.Cutoff) || r.Cutoff < 0 {
		return &RequestError{Request: r, Reason: "cutoff must be non-negative"}
	}
	return nil
}

// Presenter consumes a generated cloud together with the state it belongs to.
type Presenter interface {
	SetData(points []Point, state quantum.State)
}
