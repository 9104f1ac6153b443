// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/relabs-tech/gesture_lock/internal/app"
	"github.com/relabs-tech/gesture_lock/internal/config"
)

const defaultConfigPath = "gesture_lock_config.txt"

var (
	configPath string
	verbose    bool

	simFast  bool
	simNoise float64
	simSeed  uint64

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gesture_lock",
	Short: "Gesture-based lock on an MMA8451 accelerometer",
	Long: `gesture_lock unlocks with a motion password.

Hold the button for more than three seconds to enroll a new gesture, or press
it briefly to verify one. Move the device after the blue countdown.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		if logger, err = zcfg.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
			logger.Info("config: file not found, using defaults", zap.String("path", configPath))
			cfg, err = config.Default(), nil
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lock on the attached hardware",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.RunLock(ctx, cfg, logger)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted enroll and verify sequence on mock hardware",
	RunE: func(cmd *cobra.Command, args []string) error {
		sink, closeSinks := app.OpenSimulationSinks(cfg, logger)
		defer closeSinks()

		_, err := app.RunSimulation(cfg, app.SimOptions{
			Fast:  simFast,
			Noise: simNoise,
			Seed:  simSeed,
		}, sink, logger, cmd.OutOrStdout())
		return err
	},
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Print lock events from the MQTT broker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.RunConsoleMQTT(ctx, cfg, logger, cmd.OutOrStdout())
	},
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the lock status page from MQTT events",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.RunWeb(ctx, cfg, logger)
	},
}

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Check the accelerometer identity and sweep the LEDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunSelfTest(cfg, logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	simulateCmd.Flags().BoolVar(&simFast, "fast", false, "Skip real delays")
	simulateCmd.Flags().Float64Var(&simNoise, "noise", 0.2, "Per-axis jitter of the mock gesture in m/s²")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "Seed of the mock gesture jitter")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(selftestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
