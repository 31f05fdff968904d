package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitals/internal/automation"
	"github.com/san-kum/orbitals/internal/cloud"
	"github.com/san-kum/orbitals/internal/config"
	"github.com/san-kum/orbitals/internal/export"
	"github.com/san-kum/orbitals/internal/logger"
	"github.com/san-kum/orbitals/internal/quantum"
	"github.com/san-kum/orbitals/internal/server"
	"github.com/san-kum/orbitals/internal/storage"
	"github.com/san-kum/orbitals/internal/viz"
)

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}

	// the alt screen owns the terminal, so the viewer logs to a file
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "viewer.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logger.Component(logger.New(logger.Config{Level: cfg.Log.Level, Out: logFile}), "viewer")

	v := viz.NewViewer(viz.ViewerOptions{
		State:       cfg.StateOrDefault(),
		Points:      cfg.Points,
		Cutoff:      cfg.Cutoff,
		Seed:        resolveSeed(cfg),
		Sampler:     cfg.Sampler,
		Theme:       cfg.Viewer.Theme,
		FPS:         cfg.Viewer.FPS,
		RotateSpeed: cfg.Viewer.RotateSpeed,
		Width:       cfg.Viewer.Width,
		Height:      cfg.Viewer.Height,
		Snapshot:    snapshotTo(filepath.Join(cfg.DataDir, "snapshots")),
		Logger:      log,
	})

	p := tea.NewProgram(v, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// snapshotTo writes the current view as an SVG under dir.
func snapshotTo(dir string) viz.SnapshotFunc {
	return func(points []cloud.Point, state quantum.State, cam *viz.Camera) (string, error) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		path := filepath.Join(dir, export.FileName(state, export.FormatSVG, time.Now()))
		svg := export.CloudToSVG(points, cam, export.DefaultSVGSize, export.DefaultSVGSize)
		if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
			return "", err
		}
		return path, nil
	}
}

func listStates(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tN\tL\tM\tNAME\tSHAPE")
	for _, st := range quantum.All() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
			st.Label, st.N, st.L, st.M, st.Name, quantum.ShapeDescription(st.L))
	}
	return w.Flush()
}

func generateRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	st, err := resolveState(cfg.State)
	if err != nil {
		return err
	}

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}

	runSeed := resolveSeed(cfg)
	req := cloud.RequestFor(st, cfg.Points, cfg.Cutoff)

	fmt.Printf("sampling %s...\n", st)
	start := time.Now()

	rep, err := cloud.NewSeeded(runSeed, cfg.Sampler).GenerateReport(cmd.Context(), req)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := store.Save(storage.Run{State: st, Seed: runSeed, Request: req, Options: cfg.Sampler, Report: rep})
	if err != nil {
		return err
	}
	log.Debug().Str("run_id", runID).Dur("took", elapsed).Msg("Run saved")

	visible := cloud.ApplyCutoff(rep.Points, cfg.Cutoff)
	sum := cloud.Summarize(rep.Points)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("seed: %d\n", runSeed)
	fmt.Printf("points: %d (%d above cutoff %.2f)\n", len(rep.Points), len(visible), cfg.Cutoff)
	fmt.Printf("attempts: %d, accepted: %d (%.2f%%)\n", rep.Attempts, rep.Accepted, 100*rep.AcceptanceRate())
	if rep.Padded > 0 {
		fmt.Printf("padded: %d\n", rep.Padded)
	}
	fmt.Println("\nsummary:")
	fmt.Printf("  mean radius: %.4f\n", sum.MeanRadius)
	fmt.Printf("  std radius: %.4f\n", sum.StdRadius)
	fmt.Printf("  max radius: %.4f\n", sum.MaxRadius)
	fmt.Printf("  mean |x|,|y|,|z|: %.4f, %.4f, %.4f\n", sum.MeanAbsX, sum.MeanAbsY, sum.MeanAbsZ)
	fmt.Printf("  mean probability: %.4f\n", sum.MeanProbability)

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATE\tTIME\tPOINTS\tCUTOFF\tSEED\tACCEPT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%d\t%.2f%%\n",
			run.ID,
			run.State.Label,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Request.NumPoints,
			run.Request.Cutoff,
			run.Seed,
			100*acceptance(run),
		)
	}

	return w.Flush()
}

func acceptance(run storage.RunMetadata) float64 {
	if run.Attempts == 0 {
		return 0
	}
	return float64(run.Accepted) / float64(run.Attempts)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	points, err := st.LoadPoints(runID)
	if err != nil {
		return err
	}

	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("state: %s\n", meta.State)
	fmt.Printf("points: %d\n\n", len(points))

	radial := cloud.RadialHistogram(points, 60)
	fmt.Println(asciigraph.Plot(radial.Counts,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("radial distribution, r in [%.2f, %.2f]", radial.Min, radial.Max)),
	))
	fmt.Println()

	prob := cloud.ProbabilityHistogram(points, 40)
	fmt.Println(asciigraph.Plot(prob.Counts,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("probability distribution, p in [%.2f, %.2f]", prob.Min, prob.Max)),
	))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	var doc *export.Document
	if st := quantum.ByLabel(args[0]); st != nil {
		doc, err = exportFresh(cmd, cfg, *st)
	} else {
		doc, err = exportStored(cfg, args[0])
	}
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	path := outPath
	if path != "-" {
		if path == "" {
			path = export.FileName(doc.QuantumState, f, doc.Parameters.Timestamp)
		}
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	if err := export.Write(w, f, doc); err != nil {
		return err
	}
	if path != "-" {
		fmt.Fprintf(os.Stderr, "exported %d points to %s\n", len(doc.Data), path)
	}
	return nil
}

// exportFresh samples a new cloud for st, capped at export.MaxPoints. The
// cutoff is recorded in the parameters but not applied to the data.
func exportFresh(cmd *cobra.Command, cfg *config.Config, st quantum.State) (*export.Document, error) {
	runSeed := resolveSeed(cfg)
	req := cloud.RequestFor(st, min(cfg.Points, export.MaxPoints), cfg.Cutoff)
	points, err := cloud.NewSeeded(runSeed, cfg.Sampler).GenerateContext(cmd.Context(), req)
	if err != nil {
		return nil, err
	}
	return export.NewDocument(st, points, cfg.Cutoff, runSeed, time.Now()), nil
}

func exportStored(cfg *config.Config, runID string) (*export.Document, error) {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, err
	}
	points, err := st.LoadPoints(runID)
	if err != nil {
		return nil, err
	}
	if len(points) > export.MaxPoints {
		points = points[:export.MaxPoints]
	}
	return export.NewDocument(meta.State, points, meta.Request.Cutoff, meta.Seed, meta.Timestamp), nil
}

func deleteRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := storage.New(cfg.DataDir).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
	}
	log := newLogger(cfg)

	srv := server.New(server.Config{
		Addr:           cfg.Server.Addr,
		Log:            log,
		Sampler:        cfg.Sampler,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxPoints:      config.MaxPoints,
		Seed:           cfg.Seed,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPOINTS\tCUTOFF\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\n", name, p.Points, p.Cutoff, p.Viewer.Theme)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if scenario.Seed == 0 {
		scenario.Seed = resolveSeed(cfg)
	}

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), scenario, cfg.Sampler, store, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTATE\tSEED\tPOINTS\tKEPT\tACCEPT\tRUN")
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%.2f%%\t%s\n",
			i+1, r.State.Label, r.Seed, len(r.Report.Points), r.Kept, 100*r.Report.AcceptanceRate(), runID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	st, err := resolveState(cfg.State)
	if err != nil {
		return err
	}

	results, err := automation.RunCutoffSweep(cmd.Context(), &automation.CutoffSweep{
		State:    st,
		Points:   cfg.Points,
		Seed:     resolveSeed(cfg),
		MinValue: sweepMin,
		MaxValue: sweepMax,
		NumSteps: sweepSteps,
	}, cfg.Sampler)
	if err != nil {
		return err
	}

	fmt.Printf("cutoff sweep: %s, %d points\n\n", st, cfg.Points)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CUTOFF\tKEPT\tFRACTION")
	fractions := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%.3f\t%d\t%.3f\n", r.Cutoff, r.Kept, r.Fraction)
		fractions[i] = r.Fraction
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(fractions,
		asciigraph.Height(8),
		asciigraph.Caption("fraction kept vs cutoff"),
	))
	return nil
}

func benchState(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	st, err := resolveState(cfg.State)
	if err != nil {
		return err
	}

	counts := []int{1000, 5000, config.MaxPoints}

	fmt.Printf("benchmarking %s\n\n", st)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINTS\tATTEMPTS\tACCEPT\tPADDED\tTIME\tPOINTS/SEC")

	for _, n := range counts {
		s := cloud.NewSeeded(42, cfg.Sampler)

		start := time.Now()
		rep, err := s.GenerateReport(cmd.Context(), cloud.RequestFor(st, n, 0))
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%.2f%%\t%d\t%v\t%.0f\n",
			n, rep.Attempts, 100*rep.AcceptanceRate(), rep.Padded, elapsed, float64(n)/elapsed.Seconds())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		State:     st,
		Points:    cfg.Points,
		NumTrials: trials,
		Seed:      resolveSeed(cfg),
	}, cfg.Sampler)
	if err != nil {
		return err
	}
	mean, std, acc := automation.MonteCarloStats(results)
	fmt.Printf("\nmonte carlo over %d seeds (%d points each)\n", len(results), cfg.Points)
	fmt.Printf("  mean radius: %.4f ± %.4f\n", mean, std)
	fmt.Printf("  acceptance: %.2f%%\n", 100*acc)
	return nil
}
