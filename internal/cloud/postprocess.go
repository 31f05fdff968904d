package cloud

import (
	"math/rand/v2"
	"slices"
)

// sortByProbability orders points by descending probability, keeping
// insertion order for ties.
func sortByProbability(points []Point) {
	slices.SortStableFunc(points, func(a, b Point) int {
		switch {
		case a.Probability > b.Probability:
			return -1
		case a.Probability < b.Probability:
			return 1
		}
		return 0
	})
}

// downsample reduces a probability-sorted slice to exactly target points.
// Most slots are evenly strided across the sorted order; the last tenth is
// filled with random points the stride skipped.
func downsample(sorted []Point, target int, rng *rand.Rand) []Point {
	if target <= 0 {
		return []Point{}
	}
	if len(sorted) <= target {
		return slices.Clone(sorted)
	}

	extra := target / 10
	strided := target - extra
	stride := float64(len(sorted)) / float64(strided)

	out := make([]Point, 0, target)
	picked := make([]bool, len(sorted))
	for i := 0; i < strided; i++ {
		idx := int(float64(i) * stride)
		picked[idx] = true
		out = append(out, sorted[idx])
	}

	if extra > 0 {
		rest := make([]int, 0, len(sorted)-strided)
		for i, ok := range picked {
			if !ok {
				rest = append(rest, i)
			}
		}
		rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
		for _, idx := range rest[:min(extra, len(rest))] {
			out = append(out, sorted[idx])
		}
	}
	return out[:min(len(out), target)]
}

// pad cycles through points, appending jittered copies until target is
// reached. Copies keep their probability; color follows the new position.
func pad(points []Point, target, l int, jitter float64, rng *rand.Rand) []Point {
	out := make([]Point, 0, target)
	out = append(out, points...)
	if len(points) == 0 {
		return out
	}
	for i := 0; len(out) < target; i++ {
		src := points[i%len(points)]
		pos := src.Position.Add(Vec3{
			X: (2*rng.Float64() - 1) * jitter,
			Y: (2*rng.Float64() - 1) * jitter,
			Z: (2*rng.Float64() - 1) * jitter,
		})
		out = append(out, Point{Position: pos, Probability: src.Probability, Color: ColorFor(l, src.Probability, pos)})
	}
	return out
}
