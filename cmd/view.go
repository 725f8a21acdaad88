package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spaghettifunk/heritage/engine"
	"github.com/spaghettifunk/heritage/engine/viewer"
	"github.com/spf13/cobra"
)

var (
	viewModel  string
	viewPreset string
	viewStill  bool
)

var viewCmd = &cobra.Command{
	Use:   "view [monument]",
	Short: "Open a window showing a monument",
	Long:  "Open a window showing the named monument. Names containing taj/mahal or qutub/minar get their procedural model, anything else gets the generic one. With --model an OBJ file is loaded instead.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if viewPreset != "" {
			if _, ok := viewer.ParsePreset(strings.ToLower(viewPreset)); !ok {
				return fmt.Errorf("unknown view preset %q (valid: 3d, front, side, top)", viewPreset)
			}
			cfg.Viewer.DefaultPreset = strings.ToLower(viewPreset)
		}
		if viewStill {
			cfg.Viewer.AutoRotate = false
		}

		name := "Taj Mahal"
		if len(args) == 1 {
			name = args[0]
		}

		e, err := engine.New(&engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{Config: cfg},
			FnInitialize: func(e *engine.Engine) error {
				if viewModel != "" {
					return e.ShowModel(context.Background(), name, viewModel)
				}
				return e.ShowMonument(context.Background(), name)
			},
		})
		if err != nil {
			return err
		}
		return runEngine(e, nil)
	},
}

func init() {
	viewCmd.Flags().StringVar(&viewModel, "model", "", "OBJ model path or URL to load instead of the procedural model")
	viewCmd.Flags().StringVar(&viewPreset, "preset", "", "Initial view preset (3d, front, side, top)")
	viewCmd.Flags().BoolVar(&viewStill, "still", false, "Start with auto-rotation off")
	rootCmd.AddCommand(viewCmd)
}
