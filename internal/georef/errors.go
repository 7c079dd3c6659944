package georef

import (
	"errors"
	"fmt"
	"strings"

	"caveplan/internal/session"
)

// Sentinel markers for pipeline outcomes. Callers classify failures with
// errors.Is against these; everything else wraps one of them.
var (
	// ErrInvalidMeasurement re-exports the session marker so composer
	// callers only need this package for classification.
	ErrInvalidMeasurement = session.ErrInvalidMeasurement

	// ErrCancelled re-exports the session marker for user aborts.
	ErrCancelled = session.ErrCancelled

	// ErrUnsupportedCRS marks a target CRS with no registered projector.
	ErrUnsupportedCRS = errors.New("unsupported CRS")
)

// Wrap builds an error message that includes pipeline context while tagging
// it with the provided marker for later classification.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = errors.New("georeferencing failure")
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
