package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Terminal adapts line-based terminal input to the Source and Prompter
// interfaces. Clicks are typed as "x,y" pixel coordinates, an empty line
// confirms, a single letter is a key signal, and "q" or "esc" cancels.
type Terminal struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewTerminal creates a terminal input adapter reading from in and writing
// prompts to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{reader: bufio.NewReader(in), out: out}
}

// Instruct prints a step instruction.
func (t *Terminal) Instruct(text string) {
	fmt.Fprintln(t.out, text)
}

// ReadLine prompts and returns one line of input.
func (t *Terminal) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, prompt)
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Next reads the next event. Lines that parse as neither coordinates, a key,
// a confirmation, nor a cancel request are reported and skipped.
func (t *Terminal) Next(ctx context.Context) (Event, error) {
	for {
		line, err := t.ReadLine(ctx, "> ")
		if err != nil {
			return Event{}, err
		}
		ev, ok := parseEvent(line)
		if !ok {
			fmt.Fprintln(t.out, `Enter "x,y" to click, ENTER to confirm, a letter to signal, or "q" to cancel.`)
			continue
		}
		return ev, nil
	}
}

func parseEvent(line string) (Event, bool) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return Event{Kind: EventConfirm}, true
	case "q", "esc", "cancel":
		return Event{Kind: EventCancel}, true
	}

	if x, y, ok := parseClick(line); ok {
		return Event{Kind: EventClick, X: x, Y: y}, true
	}

	runes := []rune(line)
	if len(runes) == 1 {
		return Event{Kind: EventKey, Key: runes[0]}, true
	}
	return Event{}, false
}

func parseClick(line string) (int, int, bool) {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}
