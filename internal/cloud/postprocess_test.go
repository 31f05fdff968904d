package cloud

import (
	"math"
	"math/rand/v2"
	"testing"
)

func descending(n int) []Point {
	out := make([]Point, n)
	for i := range out {
		out[i] = Point{Position: Vec3{X: float64(i)}, Probability: 1 - float64(i)/float64(n)}
	}
	return out
}

func TestSortByProbabilityStable(t *testing.T) {
	points := []Point{
		{Position: Vec3{X: 0}, Probability: 0.2},
		{Position: Vec3{X: 1}, Probability: 0.8},
		{Position: Vec3{X: 2}, Probability: 0.2},
		{Position: Vec3{X: 3}, Probability: 0.8},
		{Position: Vec3{X: 4}, Probability: 0.5},
	}
	sortByProbability(points)

	want := []float64{1, 3, 4, 0, 2}
	for i, p := range points {
		if p.Position.X != want[i] {
			t.Errorf("index %d: got x=%v, want x=%v", i, p.Position.X, want[i])
		}
	}
}

func TestDownsample(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tests := []struct {
		name   string
		yield  int
		target int
	}{
		{"single", 2, 1},
		{"slight excess", 120, 100},
		{"double", 2000, 1000},
		{"under ten", 9, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := descending(tt.yield)
			got := downsample(sorted, tt.target, rng)
			if len(got) != tt.target {
				t.Fatalf("expected %d points, got %d", tt.target, len(got))
			}
			if got[0] != sorted[0] {
				t.Errorf("highest-probability point dropped: %v", got[0])
			}
			seen := make(map[float64]bool)
			for _, p := range got {
				if seen[p.Position.X] {
					t.Errorf("point %v selected twice", p.Position.X)
				}
				seen[p.Position.X] = true
			}
		})
	}
}

func TestDownsampleNoExcess(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	sorted := descending(5)
	if got := downsample(sorted, 5, rng); len(got) != 5 {
		t.Errorf("expected 5 points, got %d", len(got))
	}
	if got := downsample(sorted, 0, rng); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestPad(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	src := descending(3)
	const jitter = 0.1

	got := pad(src, 10, 1, jitter, rng)
	if len(got) != 10 {
		t.Fatalf("expected 10 points, got %d", len(got))
	}
	for i := range src {
		if got[i] != src[i] {
			t.Errorf("original point %d changed", i)
		}
	}
	for i := len(src); i < len(got); i++ {
		orig := src[i%len(src)]
		d := got[i].Position.Add(orig.Position.Scale(-1))
		if math.Abs(d.X) > jitter || math.Abs(d.Y) > jitter || math.Abs(d.Z) > jitter {
			t.Errorf("padded point %d moved %v, beyond jitter", i, d)
		}
		if got[i].Probability != orig.Probability {
			t.Errorf("padded point %d probability %v, want %v", i, got[i].Probability, orig.Probability)
		}
	}
}

func TestPadEmpty(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	if got := pad(nil, 10, 0, 0.1, rng); len(got) != 0 {
		t.Errorf("padding nothing produced %d points", len(got))
	}
}
