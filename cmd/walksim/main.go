package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/san-kum/walksim/internal/config"
	"github.com/san-kum/walksim/internal/dist"
	"github.com/san-kum/walksim/internal/export"
	"github.com/san-kum/walksim/internal/logging"
	"github.com/san-kum/walksim/internal/playback"
	"github.com/san-kum/walksim/internal/viz"
	"github.com/san-kum/walksim/internal/walk"
)

var (
	distName   string
	steps      int
	mode       string
	intervalMs int
	seed       int64
	configFile string
	preset     string
	logLevel   string
	frameRate  int
	// export
	outPath string
	format  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "walksim",
		Short:         "random walk playback",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPlay,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&distName, "dist", config.DefaultDistribution, "step distribution (constant, binary, zeta3, zeta2 or 0-3)")
	pf.IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	pf.StringVar(&mode, "mode", config.DefaultMode, "presentation mode (cumulative, average)")
	pf.IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "milliseconds between revealed steps")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.IntVar(&frameRate, "fps", config.DefaultFrameRate, "redraw rate")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "interactive playback",
		RunE:  runPlay,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "build one trajectory and plot it",
		RunE:  runOnce,
	}

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "play a trajectory to the terminal without the interactive UI",
		RunE:  runReplay,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write a trajectory as csv or json",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (format from extension); stdout when empty")
	exportCmd.Flags().StringVar(&format, "format", "csv", "stdout format (csv, json)")

	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "list step distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SELECTOR\tNAME\tLABEL\tMEAN\tLAW")
			for _, k := range dist.Kinds() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.6f\t%s\n", int(k), k, k.Label(), dist.Mean(k), k.Description())
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDIST\tSTEPS\tMODE\tINTERVAL")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%dms\n", name, p.Distribution, p.Steps, p.Mode, p.IntervalMs)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, runCmd, replayCmd, exportCmd, kindsCmd, presetsCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dist") {
		cfg.Distribution = distName
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// setup resolves the config and returns it with a logger and a builder
// seeded from it.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, *walk.Builder, walk.Params, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, walk.Params{}, err
	}
	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)

	params, err := cfg.Params()
	if err != nil {
		return nil, nil, nil, walk.Params{}, err
	}
	m, err := cfg.PresentationMode()
	if err != nil {
		return nil, nil, nil, walk.Params{}, err
	}

	sampler := dist.NewSampler(dist.NewSeededSource(cfg.Seed))
	logger.Debug("config resolved", "dist", params.Kind, "steps", params.Steps, "mode", m, "interval_ms", cfg.IntervalMs, "seed", cfg.Seed)
	return cfg, logger, walk.NewBuilder(sampler, m), params, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, logger, builder, params, err := setup(cmd)
	if err != nil {
		return err
	}

	ctrl := playback.New(playback.WithInterval(cfg.Interval()), playback.WithLogger(logger))
	session := playback.NewSession(builder, ctrl, logger)
	if err := session.SetParams(ctx, params); err != nil {
		return err
	}
	if err := ctrl.Start(); err != nil {
		return err
	}
	return viz.Run(ctx, session, cfg.FrameRate)
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, logger, builder, params, err := setup(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	traj, err := builder.Build(cmd.Context(), params)
	if err != nil {
		return err
	}
	logger.Info("trajectory built", "steps", traj.Steps(), "elapsed", time.Since(start))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Chart(traj.Points, viz.ChartOptions{
		Caption: viz.Caption(traj.Params, traj.Mode, traj.Steps()),
		Color:   isatty.IsTerminal(os.Stdout.Fd()),
	}))

	sum := walk.Summarize(traj, traj.Steps())
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "distribution\t%s\n", traj.Params.Kind.Description())
	fmt.Fprintf(w, "mode\t%s\n", traj.Mode)
	fmt.Fprintf(w, "seed\t%d\n", cfg.Seed)
	fmt.Fprintf(w, "mean\t%.6f\n", traj.Mean)
	fmt.Fprintf(w, "final statistic\t%.6f\n", sum.FinalStatistic)
	fmt.Fprintf(w, "final expected\t%.6f\n", sum.FinalReference)
	fmt.Fprintf(w, "final deviation\t%.6f\n", sum.FinalDeviation)
	fmt.Fprintf(w, "max deviation\t%.6f (step %d)\n", sum.MaxDeviation, sum.MaxDeviationAt)
	return w.Flush()
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, logger, builder, params, err := setup(cmd)
	if err != nil {
		return err
	}

	renderer := viz.NewLiveRenderer(cmd.OutOrStdout(), cfg.FrameRate, isatty.IsTerminal(os.Stdout.Fd()))
	ctrl := playback.New(
		playback.WithInterval(cfg.Interval()),
		playback.WithLogger(logger),
		playback.WithObserver(renderer),
	)
	session := playback.NewSession(builder, ctrl, logger)
	if err := session.SetParams(ctx, params); err != nil {
		return err
	}

	renderer.Start()
	defer renderer.Stop()

	if err := ctrl.Start(); err != nil {
		return err
	}

	select {
	case <-renderer.Done():
		logger.Info("replay finished", "steps", params.Steps)
		return nil
	case <-ctx.Done():
		ctrl.Pause()
		if errors.Is(ctx.Err(), context.Canceled) {
			logger.Info("replay interrupted", "cursor", ctrl.State().Cursor)
			return nil
		}
		return ctx.Err()
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, builder, params, err := setup(cmd)
	if err != nil {
		return err
	}

	traj, err := builder.Build(cmd.Context(), params)
	if err != nil {
		return err
	}

	if outPath == "" {
		f, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		return export.Write(cmd.OutOrStdout(), f, traj, cfg.Seed)
	}

	if err := export.SaveFile(outPath, traj, cfg.Seed); err != nil {
		return err
	}
	logger.Info("trajectory exported", "path", outPath, "format", export.FormatFor(outPath), "points", len(traj.Points))
	return nil
}
