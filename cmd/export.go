package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/heritage/engine/export"
	"github.com/spaghettifunk/heritage/engine/monument"
	"github.com/spf13/cobra"
)

var (
	exportOut      string
	exportAll      bool
	exportDir      string
	exportParallel int
)

var exportCmd = &cobra.Command{
	Use:   "export [monument]",
	Short: "Write the procedural model of a monument as binary glTF",
	Long:  "Write the procedural model of a monument to a .glb file. With --all every catalog entry is exported into --dir.",
	Args: func(cmd *cobra.Command, args []string) error {
		if exportAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if exportAll {
			c, err := monument.DefaultCatalog()
			if err != nil {
				return err
			}
			paths, err := export.Catalog(cmd.Context(), c, exportDir, exportParallel)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			return nil
		}

		name := args[0]
		path := exportOut
		if path == "" {
			path = filepath.Join(exportDir, slugify(name)+".glb")
		}
		if err := export.Monument(name, path); err != nil {
			return err
		}
		fmt.Fprintln(out, path)
		return nil
	},
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default <dir>/<name>.glb)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every catalog entry")
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "Output directory")
	exportCmd.Flags().IntVar(&exportParallel, "parallel", 4, "Monuments built concurrently with --all")
	rootCmd.AddCommand(exportCmd)
}
