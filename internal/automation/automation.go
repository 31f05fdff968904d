package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitals/internal/cloud"
	"github.com/san-kum/orbitals/internal/quantum"
	"github.com/san-kum/orbitals/internal/storage"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario defines a scripted batch of cloud generations
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Seed        uint64        `yaml:"seed"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is a single cloud in a scenario
type ScenarioRun struct {
	State  string  `yaml:"state"`
	Points int     `yaml:"points"`
	Cutoff float64 `yaml:"cutoff"`
	Save   bool    `yaml:"save"`
}

// RunResult is the outcome of one scenario run. RunID is empty unless it was saved.
type RunResult struct {
	State  quantum.State
	Seed   uint64
	Report cloud.Report
	Kept   int
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Runs) == 0 {
		return fmt.Errorf("%w: no runs", ErrInvalidScenario)
	}
	for i, run := range s.Runs {
		if quantum.ByLabel(run.State) == nil {
			return fmt.Errorf("%w: run %d: unknown state %q", ErrInvalidScenario, i+1, run.State)
		}
		if run.Points <= 0 {
			return fmt.Errorf("%w: run %d: points must be positive", ErrInvalidScenario, i+1)
		}
		if run.Cutoff < 0 || run.Cutoff > 1 {
			return fmt.Errorf("%w: run %d: cutoff must be in [0, 1]", ErrInvalidScenario, i+1)
		}
	}
	return nil
}

// RunScenario generates every run concurrently. Run i uses seed
// scenario.Seed+i. Runs marked save are written to store when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, opts cloud.Options, store *storage.Store, log zerolog.Logger) ([]RunResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	states := make([]quantum.State, len(scenario.Runs))
	reqs := make([]cloud.Request, len(scenario.Runs))
	for i, run := range scenario.Runs {
		states[i] = *quantum.ByLabel(run.State)
		reqs[i] = cloud.RequestFor(states[i], run.Points, run.Cutoff)
	}

	log.Info().Str("scenario", scenario.Name).Int("runs", len(reqs)).Msg("Running scenario")

	reports, err := cloud.NewEnsemble(opts, scenario.Seed).Run(ctx, reqs)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	results := make([]RunResult, len(reports))
	for i, rep := range reports {
		seed := scenario.Seed + uint64(i)
		results[i] = RunResult{
			State:  states[i],
			Seed:   seed,
			Report: rep,
			Kept:   len(cloud.ApplyCutoff(rep.Points, reqs[i].Cutoff)),
		}

		if scenario.Runs[i].Save && store != nil {
			id, err := store.Save(storage.Run{State: states[i], Seed: seed, Request: reqs[i], Options: opts, Report: rep})
			if err != nil {
				return results, fmt.Errorf("run %d save: %w", i+1, err)
			}
			results[i].RunID = id
		}

		log.Info().
			Str("state", states[i].Label).
			Int("points", len(rep.Points)).
			Int("kept", results[i].Kept).
			Float64("acceptance", rep.AcceptanceRate()).
			Str("run_id", results[i].RunID).
			Msgf("Run %d/%d complete", i+1, len(reports))
	}

	return results, nil
}

// CutoffSweep describes a threshold sweep over a single generated cloud
type CutoffSweep struct {
	State    quantum.State
	Points   int
	Seed     uint64
	MinValue float64
	MaxValue float64
	NumSteps int
}

// SweepResult holds the surviving point count at one threshold
type SweepResult struct {
	Cutoff   float64
	Kept     int
	Fraction float64
}

// RunCutoffSweep generates one cloud and applies each threshold to it.
func RunCutoffSweep(ctx context.Context, sweep *CutoffSweep, opts cloud.Options) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps", ErrInvalidScenario)
	}
	if sweep.MaxValue < sweep.MinValue {
		return nil, fmt.Errorf("%w: sweep range is reversed", ErrInvalidScenario)
	}

	req := cloud.RequestFor(sweep.State, sweep.Points, 0)
	points, err := cloud.NewSeeded(sweep.Seed, opts).GenerateContext(ctx, req)
	if err != nil {
		return nil, err
	}

	step := (sweep.MaxValue - sweep.MinValue) / float64(sweep.NumSteps-1)
	thresholds := make([]float64, sweep.NumSteps)
	for i := range thresholds {
		thresholds[i] = sweep.MinValue + float64(i)*step
	}
	return CutoffCounts(points, thresholds), nil
}

// CutoffCounts reports how many points survive each threshold.
func CutoffCounts(points []cloud.Point, thresholds []float64) []SweepResult {
	results := make([]SweepResult, len(thresholds))
	for i, t := range thresholds {
		kept := len(cloud.ApplyCutoff(points, t))
		results[i] = SweepResult{Cutoff: t, Kept: kept}
		if len(points) > 0 {
			results[i].Fraction = float64(kept) / float64(len(points))
		}
	}
	return results
}

// MonteCarloConfig repeats one state under different seeds
type MonteCarloConfig struct {
	State     quantum.State
	Points    int
	NumTrials int
	Seed      uint64
}

// MonteCarloResult holds one trial
type MonteCarloResult struct {
	TrialID        int
	Seed           uint64
	Summary        cloud.Summary
	AcceptanceRate float64
	Padded         int
}

// RunMonteCarlo executes NumTrials generations seeded Seed, Seed+1, ...
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, opts cloud.Options) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive", ErrInvalidScenario)
	}

	reqs := make([]cloud.Request, cfg.NumTrials)
	for i := range reqs {
		reqs[i] = cloud.RequestFor(cfg.State, cfg.Points, 0)
	}

	reports, err := cloud.NewEnsemble(opts, cfg.Seed).Run(ctx, reqs)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(reports))
	for i, rep := range reports {
		results[i] = MonteCarloResult{
			TrialID:        i,
			Seed:           cfg.Seed + uint64(i),
			Summary:        cloud.Summarize(rep.Points),
			AcceptanceRate: rep.AcceptanceRate(),
			Padded:         rep.Padded,
		}
	}
	return results, nil
}

// MonteCarloStats returns the mean and standard deviation of the trials'
// mean radius, and the mean acceptance rate.
func MonteCarloStats(results []MonteCarloResult) (meanRadius, stdRadius, acceptance float64) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	radii := make([]float64, len(results))
	rates := make([]float64, len(results))
	for i, r := range results {
		radii[i] = r.Summary.MeanRadius
		rates[i] = r.AcceptanceRate
	}
	meanRadius = stat.Mean(radii, nil)
	if len(radii) > 1 {
		stdRadius = stat.StdDev(radii, nil)
	}
	return meanRadius, stdRadius, stat.Mean(rates, nil)
}
