package cloud

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of a cloud.
type Summary struct {
	Count           int     `json:"count"`
	MeanRadius      float64 `json:"mean_radius"`
	StdRadius       float64 `json:"std_radius"`
	MaxRadius       float64 `json:"max_radius"`
	MeanAbsX        float64 `json:"mean_abs_x"`
	MeanAbsY        float64 `json:"mean_abs_y"`
	MeanAbsZ        float64 `json:"mean_abs_z"`
	MeanProbability float64 `json:"mean_probability"`
	MaxProbability  float64 `json:"max_probability"`
}

func Summarize(points []Point) Summary {
	s := Summary{Count: len(points)}
	if len(points) == 0 {
		return s
	}

	radii := make([]float64, len(points))
	ax := make([]float64, len(points))
	ay := make([]float64, len(points))
	az := make([]float64, len(points))
	probs := make([]float64, len(points))
	for i, p := range points {
		radii[i] = p.Radius()
		ax[i] = math.Abs(p.Position.X)
		ay[i] = math.Abs(p.Position.Y)
		az[i] = math.Abs(p.Position.Z)
		probs[i] = p.Probability
	}

	s.MeanRadius = stat.Mean(radii, nil)
	if len(radii) > 1 {
		s.StdRadius = stat.StdDev(radii, nil)
	}
	s.MaxRadius = floats.Max(radii)
	s.MeanAbsX = stat.Mean(ax, nil)
	s.MeanAbsY = stat.Mean(ay, nil)
	s.MeanAbsZ = stat.Mean(az, nil)
	s.MeanProbability = stat.Mean(probs, nil)
	s.MaxProbability = floats.Max(probs)
	return s
}

// Histogram is a set of equal-width bins over [Min, Max].
type Histogram struct {
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Counts []float64 `json:"counts"`
}

// Centers returns the midpoint of every bin.
func (h Histogram) Centers() []float64 {
	out := make([]float64, len(h.Counts))
	if len(h.Counts) == 0 {
		return out
	}
	w := (h.Max - h.Min) / float64(len(h.Counts))
	for i := range out {
		out[i] = h.Min + w*(float64(i)+0.5)
	}
	return out
}

// RadialHistogram bins point radii from 0 to the largest radius.
func RadialHistogram(points []Point, bins int) Histogram {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Radius()
	}
	return histogram(values, 0, 0, bins)
}

// ProbabilityHistogram bins probabilities over [0, 1].
func ProbabilityHistogram(points []Point, bins int) Histogram {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Probability
	}
	return histogram(values, 0, 1, bins)
}

// histogram spans [lo, max(hi, max(values))].
func histogram(values []float64, lo, hi float64, bins int) Histogram {
	if bins <= 0 {
		bins = 1
	}
	top := hi
	if len(values) > 0 {
		top = math.Max(top, floats.Max(values))
	}
	if top <= lo {
		top = lo + 1
	}
	h := Histogram{Min: lo, Max: top, Counts: make([]float64, bins)}
	if len(values) == 0 {
		return h
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, top)
	// stat.Histogram excludes the upper bound
	dividers[bins] = math.Nextafter(top, math.Inf(1))
	h.Counts = stat.Histogram(nil, dividers, sorted, nil)
	return h
}
