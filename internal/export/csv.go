package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/orbitals/internal/cloud"
)

var csvHeader = []string{"x", "y", "z", "probability", "r", "g", "b"}

func WriteCSV(w io.Writer, points []cloud.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Position.X, 'f', 6, 64),
			strconv.FormatFloat(p.Position.Y, 'f', 6, 64),
			strconv.FormatFloat(p.Position.Z, 'f', 6, 64),
			strconv.FormatFloat(p.Probability, 'f', 6, 64),
			strconv.Itoa(int(p.Color[0])),
			strconv.Itoa(int(p.Color[1])),
			strconv.Itoa(int(p.Color[2])),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses points written by WriteCSV.
func ReadCSV(r io.Reader) ([]cloud.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []cloud.Point{}, nil
	}

	points := make([]cloud.Point, 0, len(records)-1)
	for i, rec := range records[1:] {
		var f [4]float64
		for j := range f {
			if f[j], err = strconv.ParseFloat(rec[j], 64); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
		}
		var c cloud.RGB
		for j := range c {
			v, err := strconv.ParseUint(rec[4+j], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			c[j] = uint8(v)
		}
		points = append(points, cloud.Point{
			Position:    cloud.Vec3{X: f[0], Y: f[1], Z: f[2]},
			Probability: f[3],
			Color:       c,
		})
	}
	return points, nil
}
