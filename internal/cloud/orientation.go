package cloud

import "math"

// Orientation carries the per-orbital design constants that bend a cloud
// into its recognizable shape. They are tuned by eye, not derived from the
// spherical harmonics.
type Orientation struct {
	// Weights scales each Cartesian axis after the spherical conversion.
	Weights Vec3
	// Shape multiplies the density of every candidate.
	Shape float64
	// Lobes are the unit axes the angular proposal concentrates around.
	// An empty set means uniform directions over the sphere.
	Lobes []Vec3
	// Spread is 1-cos(half angle) of the proposal cone around a lobe.
	Spread float64
	// Band is the fraction of proposals drawn from the equatorial ring
	// instead of a lobe (the dz² torus).
	Band float64

	angular func(theta, phi float64) float64
}

// Angular evaluates the orbital's angular factor, normalized to a peak of 1.
func (o Orientation) Angular(theta, phi float64) float64 {
	if o.angular == nil {
		return 1
	}
	return o.angular(theta, phi)
}

// Isotropic reports whether the proposal is uniform over the sphere.
func (o Orientation) Isotropic() bool { return len(o.Lobes) == 0 && o.Band == 0 }

var (
	axisX = Vec3{1, 0, 0}
	axisY = Vec3{0, 1, 0}
	axisZ = Vec3{0, 0, 1}
)

func lobes(axes ...Vec3) []Vec3 {
	out := make([]Vec3, 0, 2*len(axes))
	for _, a := range axes {
		a = a.Normalize()
		out = append(out, a, a.Scale(-1))
	}
	return out
}

var isotropic = Orientation{Weights: Vec3{1, 1, 1}, Shape: 1}

// OrientationFor returns the shape parameters of (l, m). Anything without an
// entry (l >= 3, unmapped m) falls back to the isotropic s-like profile.
func OrientationFor(l, m int) Orientation {
	switch l {
	case 0:
		return isotropic
	case 1:
		return pOrientation(m)
	case 2:
		return dOrientation(m)
	}
	return isotropic
}

func pOrientation(m int) Orientation {
	o := Orientation{Shape: 0.9, Spread: 0.8}
	switch m {
	case 0:
		o.Weights = Vec3{0.7, 0.7, 1.3}
		o.Lobes = lobes(axisZ)
		o.angular = func(theta, _ float64) float64 { return math.Abs(math.Cos(theta)) }
	case 1:
		o.Weights = Vec3{1.3, 0.7, 0.7}
		o.Lobes = lobes(axisX)
		o.angular = func(theta, phi float64) float64 { return math.Abs(math.Sin(theta) * math.Cos(phi)) }
	case -1:
		o.Weights = Vec3{0.7, 1.3, 0.7}
		o.Lobes = lobes(axisY)
		o.angular = func(theta, phi float64) float64 { return math.Abs(math.Sin(theta) * math.Sin(phi)) }
	default:
		return isotropic
	}
	return o
}

func dOrientation(m int) Orientation {
	o := Orientation{Shape: 0.85, Spread: 0.4}
	switch m {
	case 0:
		o.Weights = Vec3{0.8, 0.8, 1.3}
		o.Lobes = lobes(axisZ)
		o.Spread = 0.5
		o.Band = 1.0 / 3.0
		o.angular = func(theta, _ float64) float64 {
			c := math.Cos(theta)
			return math.Abs(3*c*c-1) / 2
		}
	case 1:
		o.Weights = Vec3{1.15, 0.75, 1.15}
		o.Lobes = lobes(Vec3{1, 0, 1}, Vec3{1, 0, -1})
		o.angular = func(theta, phi float64) float64 {
			return 2 * math.Abs(math.Sin(theta)*math.Cos(theta)*math.Cos(phi))
		}
	case -1:
		o.Weights = Vec3{0.75, 1.15, 1.15}
		o.Lobes = lobes(Vec3{0, 1, 1}, Vec3{0, 1, -1})
		o.angular = func(theta, phi float64) float64 {
			return 2 * math.Abs(math.Sin(theta)*math.Cos(theta)*math.Sin(phi))
		}
	case 2:
		o.Weights = Vec3{1.15, 1.15, 0.75}
		o.Lobes = lobes(axisX, axisY)
		o.angular = func(theta, phi float64) float64 {
			s := math.Sin(theta)
			return math.Abs(s * s * math.Cos(2*phi))
		}
	case -2:
		o.Weights = Vec3{1.15, 1.15, 0.75}
		o.Lobes = lobes(Vec3{1, 1, 0}, Vec3{1, -1, 0})
		o.angular = func(theta, phi float64) float64 {
			s := math.Sin(theta)
			return math.Abs(s * s * math.Sin(2*phi))
		}
	default:
		return isotropic
	}
	return o
}
