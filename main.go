package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/tanksim/app"
	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/config"
	"github.com/pthm-cable/tanksim/session"
	"github.com/pthm-cable/tanksim/sim"
)

func main() {
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := newRootCmd()
	rootCmd.AddCommand(newConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runOptions holds the root command's flags.
type runOptions struct {
	configPath string
	headless   bool
	realtime   bool
	maxTicks   int
	tank1Level int
	pump       bool
	target     float64
	chartPNG   string
	outputDir  string
	logStats   bool
	perf       bool
}

func newRootCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "tanksim",
		Short: "Four-tank plant simulator with a heated pump",
		Long: `tanksim simulates four tanks joined by two transfer edges and a pump
that heats while it runs. It opens a window with the schematic and its
controls, or runs headless and writes telemetry CSVs.

Examples:
  tanksim                                   # interactive window
  tanksim --headless --max-ticks 600 --pump --tank1-level 80 --output-dir out
  tanksim --headless --realtime --chart-png pump.png`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.Flags().Changed("target"))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	f.BoolVar(&opts.headless, "headless", false, "Run without graphics")
	f.BoolVar(&opts.realtime, "realtime", false, "Pace headless ticks at the configured period")
	f.IntVar(&opts.maxTicks, "max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	f.IntVar(&opts.tank1Level, "tank1-level", -1, "Initial Tank 1 level in percent (-1 = keep default)")
	f.BoolVar(&opts.pump, "pump", false, "Start with the pump running")
	f.Float64Var(&opts.target, "target", 0, "Initial target temperature in C")
	f.StringVar(&opts.chartPNG, "chart-png", "", "Export the pump temperature chart to this PNG on exit")
	f.StringVar(&opts.outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	f.BoolVar(&opts.logStats, "log-stats", false, "Output window stats via slog")
	f.BoolVar(&opts.perf, "perf", false, "Log frame timing windows and write perf.csv")
	return cmd
}

func newConfigCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	return cmd
}

// run loads config, builds the session and drives it headless or in a window.
func run(ctx context.Context, opts runOptions, targetSet bool) (err error) {
	if err := config.Init(opts.configPath); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.Cfg()

	sess, err := session.New(cfg, session.Options{
		OutputDir: opts.outputDir,
		LogStats:  opts.logStats,
		LogPerf:   opts.perf,
		ShowChart: opts.chartPNG != "",
	})
	if err != nil {
		return err
	}
	defer func() {
		if opts.chartPNG != "" {
			if exportErr := sess.ExportChart(opts.chartPNG); exportErr != nil {
				slog.Error("chart export failed", "path", opts.chartPNG, "error", exportErr)
			} else {
				slog.Info("chart exported", "path", opts.chartPNG)
			}
		}
		if closeErr := sess.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	sess.Submit(scriptedCommands(cfg, opts, targetSet)...)

	if opts.headless {
		return runHeadless(ctx, sess, opts)
	}
	runWindow(sess, opts)
	return nil
}

// scriptedCommands turns the start-up flags into plant commands.
func scriptedCommands(cfg *config.Config, opts runOptions, targetSet bool) []sim.Command {
	var cmds []sim.Command
	if opts.tank1Level >= 0 {
		cmds = append(cmds, sim.SetTankLevel{Tank: components.Tank1, Percent: float64(opts.tank1Level)})
	}
	if opts.pump {
		cmds = append(cmds, sim.TogglePump{})
	}
	if targetSet {
		cmds = append(cmds, sim.AdjustTarget{Delta: opts.target - cfg.Simulation.DefaultTarget})
	}
	return cmds
}

func runHeadless(ctx context.Context, sess *session.Session, opts runOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	final, err := sess.RunHeadless(ctx, session.HeadlessOptions{
		MaxTicks: opts.maxTicks,
		Realtime: opts.realtime,
	})
	if errors.Is(err, session.ErrUnbounded) {
		return fmt.Errorf("%w: pass --max-ticks or --realtime", err)
	}
	if err != nil {
		return err
	}

	slog.Info("final state",
		"tick", final.Tick,
		"time", final.ElapsedTime,
		"pump_running", final.Pump.Running,
		"pump_temperature", final.Pump.Temperature,
		"total_volume", final.TotalAmount(),
	)
	return nil
}

func runWindow(sess *session.Session, opts runOptions) {
	cfg := sess.Config()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Tank Plant")
	defer rl.CloseWindow()
	rl.SetExitKey(0) // Escape clears the inspector selection
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a := app.New(sess)
	defer a.Unload()

	slog.Info("starting simulation", "max_ticks", opts.maxTicks)
	a.Run(uint64(max(opts.maxTicks, 0)))
}
