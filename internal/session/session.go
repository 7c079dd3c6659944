package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"caveplan/internal/geo"
	"caveplan/internal/logging"
)

// ErrCancelled marks a user-initiated abort. It is the normal outcome of an
// interrupted session, not a failure.
var ErrCancelled = errors.New("session cancelled")

// State identifies the capture step a session is waiting on.
type State string

const (
	StateAwaitingReference   State = "awaiting_reference"
	StateAwaitingScale       State = "awaiting_scale"
	StateAwaitingOrientation State = "awaiting_orientation"
	StateAwaitingDeclination State = "awaiting_declination"
	StateComplete            State = "complete"
)

// Session drives the four capture steps in order over an abstract event
// source. A session is single-use: Run consumes the source and either yields
// a complete set of measurements or nothing at all.
type Session struct {
	source   Source
	prompter Prompter
	logger   *slog.Logger
	state    State
}

// New creates a session reading from the given source and prompter.
func New(source Source, prompter Prompter, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		source:   source,
		prompter: prompter,
		logger:   logger.With(logging.String(logging.FieldComponent, "session")),
		state:    StateAwaitingReference,
	}
}

// State returns the step the session is currently waiting on.
func (s *Session) State() State {
	return s.state
}

// Run walks the capture steps in their fixed order. It returns ErrCancelled
// when the user aborts at any step; in that case no measurements exist.
func (s *Session) Run(ctx context.Context) (*Measurements, error) {
	m := &Measurements{}

	s.state = StateAwaitingReference
	ref, err := s.captureReference(ctx)
	if err != nil {
		return nil, err
	}
	m.Reference = ref

	s.state = StateAwaitingScale
	scale, err := s.captureScale(ctx)
	if err != nil {
		return nil, err
	}
	m.Scale = scale

	s.state = StateAwaitingOrientation
	orientation, err := s.captureOrientation(ctx)
	if err != nil {
		return nil, err
	}
	m.Orientation = orientation

	s.state = StateAwaitingDeclination
	declination, err := s.captureDeclination(ctx)
	if err != nil {
		return nil, err
	}
	m.DeclinationDeg = declination

	s.state = StateComplete
	s.logger.Info("measurement session complete",
		logging.String("reference", m.Reference.String()),
		logging.Float64("pixels_per_meter", m.Scale.PixelsPerMeter()),
		logging.Float64("north_angle_deg", m.Orientation.AngleFromTopDegrees()),
		logging.Float64("declination_deg", m.DeclinationDeg))
	return m, nil
}

// captureReference waits for one click-and-confirm marking the entrance.
func (s *Session) captureReference(ctx context.Context) (geo.PixelPoint, error) {
	s.prompter.Instruct("Mark the cave entrance: click the point, then confirm with ENTER.")

	var point geo.PixelPoint
	placed := false
	for {
		ev, err := s.next(ctx)
		if err != nil {
			return geo.PixelPoint{}, err
		}
		switch ev.Kind {
		case EventClick:
			point = geo.PixelPoint{X: ev.X, Y: ev.Y}
			placed = true
		case EventConfirm:
			if !placed {
				s.prompter.Instruct("Mark a point first.")
				continue
			}
			s.logger.Info("entrance marked", logging.String("pixel", point.String()))
			return point, nil
		case EventCancel:
			return geo.PixelPoint{}, s.cancelled()
		}
	}
}

// captureScale waits for two distinct clicks defining the scale bar, then
// prompts for its real-world length. Coinciding points restart the marking;
// bad distance input re-prompts without discarding the points.
func (s *Session) captureScale(ctx context.Context) (ScaleMeasurement, error) {
	s.prompter.Instruct("Mark the scale bar: click its start point, then its end point.")

	points := make([]geo.PixelPoint, 0, 2)
	for len(points) < 2 {
		ev, err := s.next(ctx)
		if err != nil {
			return ScaleMeasurement{}, err
		}
		switch ev.Kind {
		case EventClick:
			points = append(points, geo.PixelPoint{X: ev.X, Y: ev.Y})
			if len(points) == 2 && points[0] == points[1] {
				s.prompter.Instruct("Scale points coincide; mark the scale bar again.")
				points = points[:0]
			}
		case EventCancel:
			return ScaleMeasurement{}, s.cancelled()
		}
	}

	pixelDist := points[0].DistanceTo(points[1])
	s.logger.Info("scale bar marked", logging.Float64("pixel_length", pixelDist))

	for {
		line, err := s.readLine(ctx, fmt.Sprintf("Real-world length of this line in meters [%.1f px]: ", pixelDist))
		if err != nil {
			return ScaleMeasurement{}, err
		}
		meters, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			s.prompter.Instruct("Invalid input; enter a number.")
			continue
		}
		if meters <= 0 {
			s.prompter.Instruct("Distance must be positive.")
			continue
		}
		measurement := ScaleMeasurement{P1: points[0], P2: points[1], Meters: meters}
		s.logger.Info("scale captured",
			logging.Float64("meters", meters),
			logging.Float64("pixels_per_meter", measurement.PixelsPerMeter()))
		return measurement, nil
	}
}

// captureOrientation accepts either two clicks marking a base→tip north
// arrow or the skip key meaning north is already straight up. Whichever
// completes first wins.
func (s *Session) captureOrientation(ctx context.Context) (Orientation, error) {
	s.prompter.Instruct("Mark north: click arrow base then tip, or press 's' if north is straight up.")

	points := make([]geo.PixelPoint, 0, 2)
	for {
		ev, err := s.next(ctx)
		if err != nil {
			return Orientation{}, err
		}
		switch ev.Kind {
		case EventClick:
			points = append(points, geo.PixelPoint{X: ev.X, Y: ev.Y})
			if len(points) == 2 {
				o := MeasuredOrientation(points[0], points[1])
				s.logger.Info("north arrow marked",
					logging.Float64("angle_from_top_deg", o.AngleFromTopDegrees()))
				return o, nil
			}
		case EventKey:
			if ev.Key == 's' || ev.Key == 'S' {
				s.logger.Info("north marking skipped, assuming north is up")
				return SkippedOrientation(), nil
			}
		case EventCancel:
			return Orientation{}, s.cancelled()
		}
	}
}

// captureDeclination reads the manual correction. Empty input defaults to 0;
// unparseable input logs a warning and also defaults to 0 since this value is
// a small manual nudge, not a correctness-critical measurement.
func (s *Session) captureDeclination(ctx context.Context) (float64, error) {
	line, err := s.readLine(ctx, "Additional declination correction in degrees [0]: ")
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, nil
	}
	declination, parseErr := strconv.ParseFloat(line, 64)
	if parseErr != nil {
		s.logger.Warn("invalid declination input, defaulting to 0",
			logging.String("input", line))
		return 0, nil
	}
	return declination, nil
}

func (s *Session) next(ctx context.Context) (Event, error) {
	ev, err := s.source.Next(ctx)
	if err != nil {
		return Event{}, s.inputError(err)
	}
	return ev, nil
}

func (s *Session) readLine(ctx context.Context, prompt string) (string, error) {
	line, err := s.prompter.ReadLine(ctx, prompt)
	if err != nil {
		return "", s.inputError(err)
	}
	return line, nil
}

// inputError normalizes interrupted input to a cancellation: a closed stream
// or a cancelled context ends the session the same way the escape key does.
func (s *Session) inputError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return s.cancelled()
	}
	return fmt.Errorf("session input: %w", err)
}

func (s *Session) cancelled() error {
	s.logger.Info("session cancelled", logging.String("state", string(s.state)))
	return fmt.Errorf("%w at %s", ErrCancelled, s.state)
}
