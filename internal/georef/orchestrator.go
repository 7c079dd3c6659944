package georef

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"caveplan/internal/geo"
	"caveplan/internal/geodesy"
	"caveplan/internal/logging"
	"caveplan/internal/session"
)

// Result is the final product of a georeferencing run: the pixel→world
// transform and the CRS it maps into, plus the projected reference point and
// the raw measurements for reporting.
type Result struct {
	Transform    geo.Affine
	CRS          string
	World        geo.WorldPoint
	Convergence  float64
	Measurements session.Measurements
	RunID        string
}

// Orchestrator sequences projector lookup, measurement capture, convergence
// correction, and transform composition for one cave plan.
type Orchestrator struct {
	source          session.Source
	prompter        session.Prompter
	logger          *slog.Logger
	gridConvergence bool
}

// NewOrchestrator wires an orchestrator around the given interactive inputs.
func NewOrchestrator(source session.Source, prompter session.Prompter, logger *slog.Logger, gridConvergence bool) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		source:          source,
		prompter:        prompter,
		logger:          logger,
		gridConvergence: gridConvergence,
	}
}

// Run executes the full pipeline for a reference coordinate and target CRS.
// It returns an error wrapping ErrCancelled when the user aborts and an
// error wrapping ErrInvalidMeasurement or ErrUnsupportedCRS on failure; no
// partial result is ever produced.
func (o *Orchestrator) Run(ctx context.Context, ref geo.GeoCoordinate, targetCRS string) (*Result, error) {
	runID := uuid.NewString()
	logger := logging.WithComponent(o.logger, "georef").
		With(logging.String(logging.FieldCorrelationID, runID))

	projector, err := geodesy.ForCRS(targetCRS)
	if err != nil {
		return nil, Wrap(ErrUnsupportedCRS, "projector", targetCRS, err)
	}

	if ref.IsZero() {
		// Upstream data uses (0,0) for "no coordinate"; the run continues
		// but the output will anchor at null island.
		logger.Warn("reference coordinate is (0,0), georeference will be meaningless",
			logging.Alert("missing_coordinate"))
	}

	worldX, worldY := projector.Forward(ref.Latitude, ref.Longitude)
	world := geo.WorldPoint{X: worldX, Y: worldY}
	logger.Info("entrance projected",
		logging.String(logging.FieldCRS, targetCRS),
		logging.Float64("world_x", world.X),
		logging.Float64("world_y", world.Y))

	// Convergence is a function of the geographic position and must be
	// computed from the WGS84 coordinate, not the projected one.
	convergence := 0.0
	if o.gridConvergence {
		convergence = geodesy.Convergence(ref.Latitude, ref.Longitude, targetCRS)
		logger.Info("meridian convergence at entrance",
			logging.Float64("convergence_deg", convergence))
	}

	measurements, err := session.New(o.source, o.prompter, logger).Run(ctx)
	if err != nil {
		// ErrCancelled passes through untouched so callers can treat the
		// abort as a normal outcome.
		return nil, err
	}

	transform, err := Compose(measurements, world, convergence)
	if err != nil {
		return nil, err
	}

	logger.Info("transform composed",
		logging.Float64("meters_per_pixel", 1/measurements.Scale.PixelsPerMeter()),
		logging.Float64("total_rotation_deg",
			measurements.Orientation.AngleFromTopDegrees()+measurements.DeclinationDeg+convergence))

	return &Result{
		Transform:    transform,
		CRS:          targetCRS,
		World:        world,
		Convergence:  convergence,
		Measurements: *measurements,
		RunID:        runID,
	}, nil
}
