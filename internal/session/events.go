package session

import "context"

// EventKind discriminates interactive input events.
type EventKind int

const (
	// EventClick places a point at pixel (X, Y).
	EventClick EventKind = iota
	// EventConfirm accepts the pending point.
	EventConfirm
	// EventCancel aborts the whole session.
	EventCancel
	// EventKey carries a single keypress, used for the skip-north shortcut.
	EventKey
)

func (k EventKind) String() string {
	switch k {
	case EventClick:
		return "click"
	case EventConfirm:
		return "confirm"
	case EventCancel:
		return "cancel"
	case EventKey:
		return "key"
	default:
		return "unknown"
	}
}

// Event is a single interactive input.
type Event struct {
	Kind EventKind
	X    int
	Y    int
	Key  rune
}

// Source delivers interactive events one at a time. Next blocks until an
// event is available, the context is cancelled, or the input stream ends.
type Source interface {
	Next(ctx context.Context) (Event, error)
}

// Prompter handles the text side of the interaction: step instructions and
// free-form line input for the scale distance and declination values.
type Prompter interface {
	// Instruct shows a step instruction to the user.
	Instruct(text string)

	// ReadLine prompts for one line of input and blocks until it arrives.
	ReadLine(ctx context.Context, prompt string) (string, error)
}
