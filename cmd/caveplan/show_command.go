package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"caveplan/internal/catalog"
	"caveplan/internal/config"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show CAVE-ID",
		Short: "Show a single cave record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				cave, err := store.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				coords := "-"
				if cave.HasCoordinates() {
					coords = fmt.Sprintf("%.6f, %.6f", cave.Latitude, cave.Longitude)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderKeyValue([][2]string{
					{"Cave ID", cave.CaveID},
					{"Name", cave.Name},
					{"Inventory number", cave.InventoryNumber},
					{"Region", cave.Region},
					{"Commune", cave.Commune},
					{"Coordinates (WGS84)", coords},
					{"Images", strconv.Itoa(len(cave.Images))},
					{"Plan images", strconv.Itoa(len(cave.PlanImages()))},
				}))

				if plans := cave.PlanImages(); len(plans) > 0 {
					rows := make([][]string, 0, len(plans))
					for i, img := range plans {
						rows = append(rows, []string{
							strconv.Itoa(i + 1),
							img.Path,
							img.Metadata.GraphicsType,
						})
					}
					fmt.Fprintln(out, renderTable([]string{"#", "Plan image", "Type"}, rows, 0))
				}
				return nil
			})
		},
	}
}
