package cmd

import (
	"fmt"

	"github.com/spaghettifunk/heritage/engine/monument"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the monuments in the built-in catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := monument.DefaultCatalog()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, e := range c.Monuments {
			model := e.Kind
			if e.Model != "" {
				model += " (" + e.Model + ")"
			}
			fmt.Fprintf(out, "%-20s %-24s %-28s %s\n", e.Slug, e.Name, e.Location, model)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
