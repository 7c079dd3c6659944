package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"caveplan/internal/catalog"
	"caveplan/internal/config"
	"caveplan/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export catalog data",
	}

	exportCmd.AddCommand(newExportGPXCommand(ctx))

	return exportCmd
}

func newExportGPXCommand(ctx *commandContext) *cobra.Command {
	var output string
	var region string

	cmd := &cobra.Command{
		Use:   "gpx",
		Short: "Export caves as GPX waypoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				caves, err := store.List(cmd.Context(), region)
				if err != nil {
					return err
				}
				if len(caves) == 0 {
					return fmt.Errorf("no caves in catalog; run `caveplan catalog import` first")
				}

				target := output
				if target == "" {
					target = filepath.Join(cfg.Paths.OutputDir, "caves.gpx")
				} else {
					expanded, err := config.ExpandPath(target)
					if err != nil {
						return fmt.Errorf("resolve output path: %w", err)
					}
					target = expanded
				}

				file, err := os.Create(target)
				if err != nil {
					return fmt.Errorf("create gpx file: %w", err)
				}
				defer file.Close()

				count, err := export.WriteGPX(file, caves)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d waypoints to %s\n", count, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output GPX file (defaults to <output_dir>/caves.gpx)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "Only export caves from this region")
	return cmd
}
