package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spaghettifunk/heritage/engine"
	"github.com/spf13/cobra"
)

var (
	renderFrames uint64
	renderWidth  uint32
	renderHeight uint32
	renderModel  string
)

var renderCmd = &cobra.Command{
	Use:   "render <monument>",
	Short: "Render frames offscreen and print statistics",
	Long:  "Run the viewer without a window on the software rasterizer for a number of frames, then print frame and scene statistics.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Renderer.Backend = "software"
		cfg.Window.Width = renderWidth
		cfg.Window.Height = renderHeight
		name := args[0]

		e, err := engine.New(&engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				Config:    cfg,
				Headless:  true,
				MaxFrames: renderFrames,
			},
			FnInitialize: func(e *engine.Engine) error {
				if renderModel != "" {
					return e.ShowModel(context.Background(), name, renderModel)
				}
				return e.ShowMonument(context.Background(), name)
			},
		})
		if err != nil {
			return err
		}

		start := time.Now()
		return runEngine(e, func(e *engine.Engine) {
			elapsed := time.Since(start)
			state := e.Viewer().State()
			stats := e.Viewer().Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Monument:   %s\n", state.Descriptor.Name)
			fmt.Fprintf(out, "Model:      %s\n", state.Monument.Kind)
			fmt.Fprintf(out, "Resolution: %dx%d\n", renderWidth, renderHeight)
			fmt.Fprintf(out, "Frames:     %d in %s\n", stats.Frames, elapsed.Round(time.Millisecond))
			fmt.Fprintf(out, "Frame time: %.3f ms\n", e.Metrics().FrameTime()*1000)
			fmt.Fprintf(out, "Triangles:  %d (last frame)\n", stats.Frame.TrianglesDrawn)
			fmt.Fprintf(out, "Meshes:     %d tested, %d culled, %d live\n", stats.Frame.MeshesTested, stats.Frame.MeshesCulled, stats.LiveGeometries)
			if state.Err != nil {
				fmt.Fprintf(out, "Error:      %s\n", state.Err)
			}
		})
	},
}

func init() {
	renderCmd.Flags().Uint64VarP(&renderFrames, "frames", "n", 60, "Number of frames to render")
	renderCmd.Flags().Uint32Var(&renderWidth, "width", 320, "Framebuffer width")
	renderCmd.Flags().Uint32Var(&renderHeight, "height", 240, "Framebuffer height")
	renderCmd.Flags().StringVar(&renderModel, "model", "", "OBJ model path or URL to load instead of the procedural model")
	rootCmd.AddCommand(renderCmd)
}
