package cloud

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultOversample    = 1.2
	DefaultAttemptFactor = 10
	DefaultMinAttempts   = 1000
	DefaultJitter        = 0.1
	DefaultPadJitter     = 0.1
	DefaultCompression   = 0.7

	cancelCheckInterval = 1024
)

// Options tunes the sampling loop. Zero attempt settings are honored and
// yield an empty cloud, so start from DefaultOptions.
type Options struct {
	// Oversample multiplies the accepted-sample target so post-processing
	// can downsample toward high-probability points.
	Oversample float64 `yaml:"oversample" json:"oversample"`
	// AttemptFactor bounds candidate draws at AttemptFactor*NumPoints.
	AttemptFactor int `yaml:"attempt_factor" json:"attempt_factor"`
	// MinAttempts is the smallest attempt budget, for tiny requests.
	MinAttempts int `yaml:"min_attempts" json:"min_attempts"`
	// AngularJitter is the maximum perturbation of θ and φ in radians.
	AngularJitter float64 `yaml:"angular_jitter" json:"angular_jitter"`
	// PadJitter is the maximum per-axis offset of padded duplicates.
	PadJitter float64 `yaml:"pad_jitter" json:"pad_jitter"`
	// Compression is the power-law exponent applied to normalized density.
	Compression float64 `yaml:"compression" json:"compression"`
}

func DefaultOptions() Options {
	return Options{
		Oversample:    DefaultOversample,
		AttemptFactor: DefaultAttemptFactor,
		MinAttempts:   DefaultMinAttempts,
		AngularJitter: DefaultJitter,
		PadJitter:     DefaultPadJitter,
		Compression:   DefaultCompression,
	}
}

func (o Options) normalized() Options {
	if o.Oversample < 1 || math.IsNaN(o.Oversample) {
		o.Oversample = 1
	}
	if o.Compression <= 0 || math.IsNaN(o.Compression) {
		o.Compression = DefaultCompression
	}
	if o.AttemptFactor < 0 {
		o.AttemptFactor = 0
	}
	if o.MinAttempts < 0 {
		o.MinAttempts = 0
	}
	return o
}

// Budget is the number of candidate draws allowed for numPoints.
func (o Options) Budget(numPoints int) int {
	return max(o.AttemptFactor*numPoints, o.MinAttempts)
}

// Target is the accepted-sample count the loop aims for.
func (o Options) Target(numPoints int) int {
	return int(math.Ceil(float64(numPoints) * o.Oversample))
}

// Report describes one generation run.
type Report struct {
	Points      []Point
	Requested   int
	Attempts    int
	Accepted    int
	Padded      int
	Downsampled bool
}

// AcceptanceRate is accepted candidates per attempt.
func (r Report) AcceptanceRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Attempts)
}

type Sampler struct {
	rng  *rand.Rand
	opts Options
}

func NewSampler(src rand.Source, opts Options) *Sampler {
	return &Sampler{rng: rand.New(src), opts: opts.normalized()}
}

// NewSeeded returns a Sampler whose output is reproducible for a seed.
func NewSeeded(seed uint64, opts Options) *Sampler {
	return NewSampler(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), opts)
}

func (s *Sampler) Options() Options { return s.opts }

// Generate samples a cloud for req. It panics on a malformed request; the
// catalog lookup is expected to have validated the quantum numbers.
func (s *Sampler) Generate(req Request) []Point {
	if err := req.Validate(); err != nil {
		panic(err)
	}
	rep, _ := s.GenerateReport(context.Background(), req)
	return rep.Points
}

// GenerateContext is Generate with cancellation and error returns instead of panics.
func (s *Sampler) GenerateContext(ctx context.Context, req Request) ([]Point, error) {
	rep, err := s.GenerateReport(ctx, req)
	if err != nil {
		return nil, err
	}
	return rep.Points, nil
}

// GenerateReport runs the accept/reject loop and post-processing, returning
// the points together with yield counters.
func (s *Sampler) GenerateReport(ctx context.Context, req Request) (Report, error) {
	if err := req.Validate(); err != nil {
		return Report{}, err
	}

	n, l := req.N, req.L
	o := OrientationFor(l, req.M)
	if o.Isotropic() {
		// l >= 3 and unmapped m sample like an s orbital
		l = 0
	}

	rep := Report{Requested: req.NumPoints}
	budget := s.opts.Budget(req.NumPoints)
	target := s.opts.Target(req.NumPoints)
	limit := radialCap(n, l)
	radial := distuv.Gamma{
		Alpha: float64(n - l),
		Beta:  1 / radialScale(n, l),
		Src:   s.rng,
	}

	accepted := make([]Point, 0, target)
	for rep.Attempts < budget && len(accepted) < target {
		if rep.Attempts%cancelCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return Report{}, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
			default:
			}
		}
		rep.Attempts++

		r := radial.Rand()
		if r > limit || math.IsNaN(r) {
			continue
		}

		theta, phi := s.direction(o)
		theta += s.jitter(s.opts.AngularJitter)
		phi += s.jitter(s.opts.AngularJitter)

		p := probability(n, l, o, r, theta, phi, s.opts.Compression)
		if s.rng.Float64() >= p*damping(r, limit) {
			continue
		}

		sinT := math.Sin(theta)
		pos := Vec3{
			X: r * sinT * math.Cos(phi),
			Y: r * sinT * math.Sin(phi),
			Z: r * math.Cos(theta),
		}.Mul(o.Weights)

		accepted = append(accepted, Point{Position: pos, Probability: p, Color: ColorFor(req.L, p, pos)})
	}
	rep.Accepted = len(accepted)

	if len(accepted) == 0 {
		rep.Points = []Point{}
		return rep, nil
	}

	sortByProbability(accepted)
	switch {
	case len(accepted) > req.NumPoints:
		rep.Points = downsample(accepted, req.NumPoints, s.rng)
		rep.Downsampled = true
	case len(accepted) < req.NumPoints:
		rep.Points = pad(accepted, req.NumPoints, req.L, s.opts.PadJitter, s.rng)
		rep.Padded = req.NumPoints - len(accepted)
	default:
		rep.Points = accepted
	}
	return rep, nil
}

// direction draws (θ, φ) from the orientation's proposal.
func (s *Sampler) direction(o Orientation) (theta, phi float64) {
	if o.Band > 0 && s.rng.Float64() < o.Band {
		// equatorial ring, |cos θ| <= 0.25
		return math.Acos((2*s.rng.Float64() - 1) * 0.25), 2 * math.Pi * s.rng.Float64()
	}
	if len(o.Lobes) == 0 {
		return math.Acos(2*s.rng.Float64() - 1), 2 * math.Pi * s.rng.Float64()
	}

	axis := o.Lobes[s.rng.IntN(len(o.Lobes))]
	d := s.cone(axis, o.Spread)
	return math.Acos(clamp(d.Z, -1, 1)), math.Atan2(d.Y, d.X)
}

// cone returns a unit vector uniform over the spherical cap around axis
// whose area fraction is spread/2.
func (s *Sampler) cone(axis Vec3, spread float64) Vec3 {
	c := 1 - spread*s.rng.Float64()
	sinA := math.Sqrt(math.Max(0, 1-c*c))
	psi := 2 * math.Pi * s.rng.Float64()

	t1, t2 := orthonormal(axis)
	return axis.Scale(c).
		Add(t1.Scale(sinA * math.Cos(psi))).
		Add(t2.Scale(sinA * math.Sin(psi)))
}

// jitter is uniform in [-amount, amount].
func (s *Sampler) jitter(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return (2*s.rng.Float64() - 1) * amount
}

// orthonormal completes axis to a right-handed basis.
func orthonormal(axis Vec3) (Vec3, Vec3) {
	helper := axisX
	if math.Abs(axis.X) > 0.9 {
		helper = axisY
	}
	t1 := axis.Cross(helper).Normalize()
	t2 := axis.Cross(t1)
	return t1, t2
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
