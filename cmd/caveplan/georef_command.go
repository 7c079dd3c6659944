package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"caveplan/internal/catalog"
	"caveplan/internal/config"
	"caveplan/internal/export"
	"caveplan/internal/geodesy"
	"caveplan/internal/georef"
	"caveplan/internal/plans"
	"caveplan/internal/session"
)

func newGeorefCommand(ctx *commandContext) *cobra.Command {
	var planIndex int
	var outputDir string
	var crsOverride string
	var noConvergence bool

	cmd := &cobra.Command{
		Use:   "georef CAVE-ID",
		Short: "Interactively georeference a cave plan",
		Long: "Runs the interactive measurement session for one cave plan: entrance " +
			"point, scale bar, north arrow, and magnetic declination. Writes a world " +
			"file and a WGS84 KML ground overlay next to a copy of the plan image.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stdinIsTerminal() {
				return fmt.Errorf("georef needs an interactive terminal; stdin is not a tty")
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				cave, err := store.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				planImages := cave.PlanImages()
				if len(planImages) == 0 {
					return fmt.Errorf("cave %s has no plan images", cave.CaveID)
				}
				if planIndex < 1 || planIndex > len(planImages) {
					return fmt.Errorf("plan index %d out of range: cave has %d plan images", planIndex, len(planImages))
				}
				plan := planImages[planIndex-1]

				imagePath, err := plans.FindPlanFile(cfg.Paths.ImageDir, cave.CaveID, plan.Path)
				if err != nil {
					return err
				}
				size, err := plans.Probe(imagePath)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Georeferencing %s (%s)\n", cave.Name, cave.CaveID)
				fmt.Fprintf(out, "Plan image: %s (%dx%d px)\n", imagePath, size.Width, size.Height)
				fmt.Fprintln(out, "Open the plan in an image viewer and type pixel coordinates as x,y.")
				fmt.Fprintln(out)

				targetCRS := cfg.Georef.TargetCRS
				if crsOverride != "" {
					targetCRS = crsOverride
				}

				gridConvergence := cfg.Georef.GridConvergence && !noConvergence
				terminal := session.NewTerminal(cmd.InOrStdin(), out)
				orchestrator := georef.NewOrchestrator(terminal, terminal, logger, gridConvergence)
				result, err := orchestrator.Run(cmd.Context(), cave.Coordinate(), targetCRS)
				if err != nil {
					return err
				}

				destDir := cfg.Paths.OutputDir
				if outputDir != "" {
					expanded, err := config.ExpandPath(outputDir)
					if err != nil {
						return fmt.Errorf("resolve output directory: %w", err)
					}
					destDir = expanded
				}
				if err := os.MkdirAll(destDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}

				written, err := writeArtifacts(cave, result, imagePath, size, destDir)
				if err != nil {
					return err
				}

				printGeorefSummary(out, cave, result, written)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&planIndex, "plan", "p", 1, "Which plan image to georeference (1-based)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (defaults to the configured output_dir)")
	cmd.Flags().StringVar(&crsOverride, "crs", "", "Target CRS (defaults to the configured target_crs)")
	cmd.Flags().BoolVar(&noConvergence, "no-grid-convergence", false, "Skip the automatic meridian convergence correction")
	return cmd
}

// writeArtifacts copies the plan image into the output directory and writes
// the world file sidecar and KML ground overlay beside it.
func writeArtifacts(cave *catalog.Cave, result *georef.Result, imagePath string, size plans.Size, destDir string) ([]string, error) {
	base := cave.Slug()
	imageDest := filepath.Join(destDir, base+filepath.Ext(imagePath))
	if err := copyFile(imagePath, imageDest); err != nil {
		return nil, fmt.Errorf("copy plan image: %w", err)
	}

	worldPath := export.WorldFilePath(imageDest)
	if err := export.WriteWorldFile(worldPath, result.Transform); err != nil {
		return nil, err
	}

	projector, err := geodesy.ForCRS(result.CRS)
	if err != nil {
		return nil, err
	}
	box := export.OverlayBounds(result.Transform, size.Width, size.Height, projector)

	kmlPath := filepath.Join(destDir, base+".kml")
	kmlFile, err := os.Create(kmlPath)
	if err != nil {
		return nil, fmt.Errorf("create kml file: %w", err)
	}
	defer kmlFile.Close()
	if err := export.WriteKML(kmlFile, cave.Name+" Plan", filepath.Base(imageDest), box); err != nil {
		return nil, err
	}

	return []string{imageDest, worldPath, kmlPath}, nil
}

func printGeorefSummary(out io.Writer, cave *catalog.Cave, result *georef.Result, written []string) {
	m := result.Measurements
	orientationDeg := m.Orientation.AngleFromTopDegrees()
	totalDeg := orientationDeg + m.DeclinationDeg + result.Convergence

	pairs := [][2]string{
		{"Cave", fmt.Sprintf("%s (%s)", cave.Name, cave.CaveID)},
		{"Target CRS", result.CRS},
		{"Entrance (projected)", fmt.Sprintf("%.2f, %.2f", result.World.X, result.World.Y)},
		{"Scale", fmt.Sprintf("%.4f px/m", m.Scale.PixelsPerMeter())},
		{"Orientation", formatDegrees(orientationDeg)},
		{"Declination", formatDegrees(m.DeclinationDeg)},
		{"Grid convergence", formatDegrees(result.Convergence)},
		{"Total rotation", formatDegrees(totalDeg)},
		{"Run ID", result.RunID},
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderKeyValue(pairs))

	c := result.Transform.Coefficients()
	fmt.Fprintf(out, "Transform: a=%.6f b=%.6f c=%.2f d=%.6f e=%.6f f=%.2f\n",
		c[0], c[1], c[2], c[3], c[4], c[5])
	for _, path := range written {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
}

func formatDegrees(deg float64) string {
	return strconv.FormatFloat(deg, 'f', 4, 64) + "°"
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
