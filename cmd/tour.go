package cmd

import (
	"github.com/spaghettifunk/heritage/engine"
	"github.com/spaghettifunk/heritage/testbed"
	"github.com/spf13/cobra"
)

var (
	tourDwell    float64
	tourLoops    int
	tourHeadless bool
)

var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Cycle through every monument in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if tourHeadless {
			cfg.Renderer.Backend = "headless"
		}
		tg := testbed.NewTourGame(cfg, tourHeadless, tourDwell, tourLoops)
		e, err := engine.New(tg.Game)
		if err != nil {
			return err
		}
		return runEngine(e, nil)
	},
}

func init() {
	tourCmd.Flags().Float64Var(&tourDwell, "dwell", 8, "Seconds spent on each monument")
	tourCmd.Flags().IntVar(&tourLoops, "loops", 0, "Passes over the catalog before quitting (0 runs until closed)")
	tourCmd.Flags().BoolVar(&tourHeadless, "headless", false, "Run without a window")
	rootCmd.AddCommand(tourCmd)
}
