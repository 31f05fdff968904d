package cloud

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	points := []Point{
		{Position: Vec3{3, 0, 0}, Probability: 0.5},
		{Position: Vec3{0, -4, 0}, Probability: 1},
		{Position: Vec3{0, 0, 5}, Probability: 0},
	}
	s := Summarize(points)
	if s.Count != 3 {
		t.Errorf("count = %d", s.Count)
	}
	if s.MeanRadius != 4 {
		t.Errorf("mean radius = %v, want 4", s.MeanRadius)
	}
	if math.Abs(s.StdRadius-1) > 1e-12 {
		t.Errorf("std radius = %v, want 1", s.StdRadius)
	}
	if s.MaxRadius != 5 || s.MaxProbability != 1 || s.MeanProbability != 0.5 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.MeanAbsX != 1 || s.MeanAbsY != 4.0/3 || s.MeanAbsZ != 5.0/3 {
		t.Errorf("unexpected axis means %+v", s)
	}
}

func TestSummarizeDegenerate(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty summary = %+v", s)
	}
	s := Summarize([]Point{{Position: Vec3{X: 2}, Probability: 0.3}})
	if s.StdRadius != 0 || s.MeanRadius != 2 {
		t.Errorf("single point summary = %+v", s)
	}
}

func TestRadialHistogram(t *testing.T) {
	points := make([]Point, 0, 100)
	for i := 0; i < 100; i++ {
		points = append(points, Point{Position: Vec3{X: float64(i) / 10}})
	}
	h := RadialHistogram(points, 10)
	if len(h.Counts) != 10 {
		t.Fatalf("expected 10 bins, got %d", len(h.Counts))
	}
	total := 0.0
	for _, c := range h.Counts {
		total += c
	}
	if total != 100 {
		t.Errorf("histogram holds %v points, want 100", total)
	}
	if h.Min != 0 || math.Abs(h.Max-9.9) > 1e-12 {
		t.Errorf("range [%v, %v]", h.Min, h.Max)
	}
	if c := h.Centers(); len(c) != 10 || c[0] <= 0 || c[9] >= h.Max {
		t.Errorf("bad centers %v", c)
	}
}

func TestProbabilityHistogram(t *testing.T) {
	points := []Point{{Probability: 0}, {Probability: 0.5}, {Probability: 1}, {Probability: 1}}
	h := ProbabilityHistogram(points, 4)
	if h.Max != 1 {
		t.Errorf("probability histogram should span [0,1], got max %v", h.Max)
	}
	if h.Counts[0] != 1 || h.Counts[2] != 1 || h.Counts[3] != 2 {
		t.Errorf("unexpected counts %v", h.Counts)
	}
}

func TestHistogramEmpty(t *testing.T) {
	h := RadialHistogram(nil, 0)
	if len(h.Counts) != 1 || h.Counts[0] != 0 {
		t.Errorf("empty histogram = %+v", h)
	}
}
