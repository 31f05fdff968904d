package cloud

// ApplyCutoff keeps points whose probability is at least threshold,
// preserving order. The input is not modified.
func ApplyCutoff(points []Point, threshold float64) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Probability >= threshold {
			out = append(out, p)
		}
	}
	return out
}
