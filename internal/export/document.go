package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/orbitals/internal/cloud"
	"github.com/san-kum/orbitals/internal/quantum"
)

// MaxPoints caps exported clouds.
const MaxPoints = 10000

type Document struct {
	QuantumState quantum.State `json:"quantumState" msgpack:"quantumState"`
	Parameters   Parameters    `json:"parameters" msgpack:"parameters"`
	Data         []Sample      `json:"data" msgpack:"data"`
}

type Parameters struct {
	N         int       `json:"n" msgpack:"n"`
	L         int       `json:"l" msgpack:"l"`
	M         int       `json:"m" msgpack:"m"`
	Points    int       `json:"points" msgpack:"points"`
	Cutoff    float64   `json:"cutoff" msgpack:"cutoff"`
	Seed      uint64    `json:"seed" msgpack:"seed"`
	Timestamp time.Time `json:"timestamp" msgpack:"timestamp"`
}

// Sample is the flat per-point record of an export.
type Sample struct {
	X           float64   `json:"x" msgpack:"x"`
	Y           float64   `json:"y" msgpack:"y"`
	Z           float64   `json:"z" msgpack:"z"`
	Probability float64   `json:"probability" msgpack:"probability"`
	Color       cloud.RGB `json:"color" msgpack:"color"`
}

// NewDocument builds a document for points generated for state.
func NewDocument(state quantum.State, points []cloud.Point, cutoff float64, seed uint64, at time.Time) *Document {
	doc := &Document{
		QuantumState: state,
		Parameters: Parameters{
			N:         state.N,
			L:         state.L,
			M:         state.M,
			Points:    len(points),
			Cutoff:    cutoff,
			Seed:      seed,
			Timestamp: at.UTC(),
		},
		Data: make([]Sample, len(points)),
	}
	for i, p := range points {
		doc.Data[i] = Sample{X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z, Probability: p.Probability, Color: p.Color}
	}
	return doc
}

// Points converts the samples back into cloud points.
func (d *Document) Points() []cloud.Point {
	out := make([]cloud.Point, len(d.Data))
	for i, s := range d.Data {
		out[i] = cloud.Point{Position: cloud.Vec3{X: s.X, Y: s.Y, Z: s.Z}, Probability: s.Probability, Color: s.Color}
	}
	return out
}

// FileName is hydrogen-data-<state>-<timestamp>.<ext>.
func FileName(state quantum.State, f Format, at time.Time) string {
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(at.UTC().Format("2006-01-02T15:04:05.000Z"))
	return fmt.Sprintf("hydrogen-data-%s-%s.%s", state.Slug(), ts, f.Extension())
}
