package cloud

import "math"

const (
	// RadialUnit is the Bohr-radius derived length that scales the radial
	// proposal: the uncapped Gamma scale is RadialUnit*n².
	RadialUnit = 0.5

	// MaxRadialSpread caps the proposal mean at this multiple of n, the 3s
	// value. Past n=3 the n² scale outruns the exp(-r/n) density and almost
	// every candidate is rejected.
	MaxRadialSpread = 4.5

	// RadialCapFactor bounds candidate radii at this multiple of the mean.
	RadialCapFactor = 3.0

	// Epsilon replaces non-finite or non-positive probabilities.
	Epsilon = 1e-6
)

// radialFactor is r^(2l) * exp(-r/n).
func radialFactor(n, l int, r float64) float64 {
	return math.Pow(r, float64(2*l)) * math.Exp(-r/float64(n))
}

// radialPeak is the maximum of radialFactor, reached at r = 2ln.
func radialPeak(n, l int) float64 {
	if l == 0 {
		return 1
	}
	return radialFactor(n, l, float64(2*l*n))
}

// radialMean is the mean of the Gamma(n-l, RadialUnit*n²) proposal, capped
// at MaxRadialSpread*n.
func radialMean(n, l int) float64 {
	return math.Min(float64(n-l)*RadialUnit*float64(n*n), MaxRadialSpread*float64(n))
}

// radialScale is the Gamma scale giving radialMean with shape n-l.
func radialScale(n, l int) float64 {
	return radialMean(n, l) / float64(n-l)
}

func radialCap(n, l int) float64 {
	return RadialCapFactor * radialMean(n, l)
}

// probability maps a candidate to a display probability in (0, 1]:
// density normalized by the radial peak, clamped, then compressed so sparse
// regions stay visible.
func probability(n, l int, o Orientation, r, theta, phi, compression float64) float64 {
	density := radialFactor(n, l, r) / radialPeak(n, l) * o.Angular(theta, phi) * o.Shape
	return compress(density, compression)
}

func compress(density, exponent float64) float64 {
	if math.IsNaN(density) || density <= 0 {
		return Epsilon
	}
	if density > 1 {
		density = 1
	}
	p := math.Pow(density, exponent)
	if math.IsNaN(p) || math.IsInf(p, 0) || p < Epsilon {
		return Epsilon
	}
	return p
}

// damping discourages candidates near the radial cap.
func damping(r, limit float64) float64 {
	if limit <= 0 {
		return 1
	}
	x := r / limit
	return 1 - 0.5*x*x
}
