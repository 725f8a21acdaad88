package cmd

import (
	"encoding/json"

	"github.com/spaghettifunk/heritage/engine/monument"
	"github.com/spf13/cobra"
)

type infoOutput struct {
	monument.Descriptor
	Model string `json:"model"`
}

var infoCmd = &cobra.Command{
	Use:   "info <monument>",
	Short: "Print the metadata of a monument as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := monument.Identify(args[0])
		out := infoOutput{
			Descriptor: monument.Resolve(args[0]),
			Model:      id.Kind.String(),
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
