package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitals/internal/config"
	"github.com/san-kum/orbitals/internal/logger"
	"github.com/san-kum/orbitals/internal/quantum"
)

var (
	configFile string
	preset     string
	dataDir    string
	seed       uint64
	logLevel   string
	pretty     bool

	stateLabel string
	numPoints  int
	cutoff     float64

	format  string
	outPath string

	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
)

// main registers the orbitals commands and runs the interactive viewer when
// no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "orbitals",
		Short:         "hydrogen electron cloud explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runViewer,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "human-readable logs")
	addCloudFlags(rootCmd)

	viewCmd := &cobra.Command{
		Use:   "view [state]",
		Short: "browse electron clouds interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runViewer,
	}
	addCloudFlags(viewCmd)

	statesCmd := &cobra.Command{
		Use:   "states",
		Short: "list the quantum state catalog",
		RunE:  listStates,
	}

	generateCmd := &cobra.Command{
		Use:   "generate [state]",
		Short: "sample a cloud and save it as a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  generateRun,
	}
	addCloudFlags(generateCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot radial and probability distributions of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id|state]",
		Short: "export a saved run, or a fresh cloud for a state, as json, csv, msgpack or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	addCloudFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "json", "output format (json, csv, msgpack, svg)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, - for stdout (default: generated name)")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the catalog and cloud generation over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().String("addr", config.DefaultAddr, "listen address")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "generate every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [state]",
		Short: "count surviving points across cutoff thresholds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addCloudFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "lowest cutoff")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "highest cutoff")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of thresholds")

	benchCmd := &cobra.Command{
		Use:   "bench [state]",
		Short: "benchmark cloud generation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchState,
	}
	benchCmd.Flags().IntVar(&trials, "trials", 8, "seeds per monte carlo estimate")

	rootCmd.AddCommand(viewCmd, statesCmd, generateCmd, listCmd, plotCmd, exportCmd, deleteCmd, serveCmd, presetsCmd, batchCmd, sweepCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addCloudFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&stateLabel, "state", config.DefaultState, "quantum state label, e.g. 1s, 2pz, 3dz2")
	cmd.Flags().IntVar(&numPoints, "points", config.DefaultPoints, "number of points")
	cmd.Flags().Float64Var(&cutoff, "cutoff", config.DefaultCutoff, "probability cutoff in [0, 1]")
}

// loadConfig layers defaults, preset, config file and explicit flags, in
// that order. A positional state argument wins over --state.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		if cfg, err = config.LoadInto(cfg, configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("pretty") {
		cfg.Log.Pretty = pretty
	}
	if flags.Changed("state") {
		cfg.State = stateLabel
	}
	if flags.Changed("points") {
		cfg.Points = numPoints
	}
	if flags.Changed("cutoff") {
		cfg.Cutoff = cutoff
	}
	if len(args) > 0 {
		cfg.State = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(log)
	return log
}

func resolveState(label string) (quantum.State, error) {
	st := quantum.ByLabel(label)
	if st == nil {
		return quantum.State{}, fmt.Errorf("%w: %q", quantum.ErrUnknownState, label)
	}
	return *st, nil
}

func resolveSeed(cfg *config.Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}
