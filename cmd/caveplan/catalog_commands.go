package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"caveplan/internal/catalog"
	"caveplan/internal/config"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Cave catalog utilities",
	}

	catalogCmd.AddCommand(newCatalogImportCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))

	return catalogCmd
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import caves from a JSONL catalog file",
		Long:  "Imports cave records into the local catalog database. Without an argument the configured caves_file is used. Existing records are updated in place.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				path := cfg.Paths.CavesFile
				if len(args) == 1 {
					expanded, err := config.ExpandPath(args[0])
					if err != nil {
						return fmt.Errorf("resolve catalog path: %w", err)
					}
					path = expanded
				}
				if path == "" {
					return fmt.Errorf("no catalog file given and paths.caves_file is not set")
				}

				imported, skipped, err := store.ImportJSONL(cmd.Context(), path)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d caves from %s\n", imported, path)
				if skipped > 0 {
					fmt.Fprintf(out, "Skipped %d malformed lines\n", skipped)
				}
				return nil
			})
		},
	}
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List caves in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				caves, err := store.List(cmd.Context(), region)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(caves) == 0 {
					fmt.Fprintln(out, "No caves in catalog. Run `caveplan catalog import` first.")
					return nil
				}

				rows := make([][]string, 0, len(caves))
				for i := range caves {
					cave := &caves[i]
					coords := "-"
					if cave.HasCoordinates() {
						coords = fmt.Sprintf("%.5f, %.5f", cave.Latitude, cave.Longitude)
					}
					rows = append(rows, []string{
						cave.CaveID,
						cave.Name,
						cave.Region,
						coords,
						strconv.Itoa(len(cave.PlanImages())),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Cave ID", "Name", "Region", "Coordinates", "Plans"},
					rows, 4))
				fmt.Fprintf(out, "%d caves\n", len(caves))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "Only list caves from this region")
	return cmd
}
