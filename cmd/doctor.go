package cmd

import (
	"fmt"

	"github.com/spaghettifunk/heritage/engine/renderer/vulkan"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check for a usable Vulkan device",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := vulkan.Probe("heritage doctor")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, d := range devices {
			fmt.Fprintf(out, "%s\n  type:    %s\n  api:     %s\n  driver:  %s\n", d.Name, d.Type, d.APIVersion, d.DriverVersion)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
