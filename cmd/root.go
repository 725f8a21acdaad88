// Package cmd holds the heritage command line.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/heritage/engine"
	"github.com/spaghettifunk/heritage/engine/config"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "heritage",
	Short: "Procedural viewer for Indian monuments",
	Long: `heritage - Procedural viewer for Indian monuments

Builds the Taj Mahal, the Qutub Minar and a generic monument from primitive
solids, or loads an OBJ model, and shows it with an orbiting camera.

Controls (view, tour):
  R           - Toggle auto-rotation
  1-4         - 3D, front, side and top views
  +/- Scroll  - Zoom
  Arrows      - Orbit
  Esc         - Quit`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel != "" {
			return core.SetLogLevel(logLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// runEngine initializes e, quits it on SIGINT or SIGTERM and runs it until
// the loop stops. report, if set, sees the engine before it shuts down.
func runEngine(e *engine.Engine, report func(*engine.Engine)) error {
	defer func() {
		if err := e.Shutdown(); err != nil {
			core.LogError("shutdown: %s", err)
		}
	}()
	if err := e.Initialize(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	go func() {
		<-ctx.Done()
		e.Quit()
	}()

	if err := e.Run(); err != nil {
		return err
	}
	if report != nil {
		report(e)
	}
	return nil
}
