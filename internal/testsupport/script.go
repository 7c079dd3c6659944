package testsupport

import (
	"context"
	"io"

	"caveplan/internal/session"
)

// ScriptSource replays a fixed sequence of events, then reports EOF.
type ScriptSource struct {
	events []session.Event
	next   int
}

// NewScriptSource builds a source from the given event sequence.
func NewScriptSource(events ...session.Event) *ScriptSource {
	return &ScriptSource{events: events}
}

// Next returns the next scripted event.
func (s *ScriptSource) Next(ctx context.Context) (session.Event, error) {
	if err := ctx.Err(); err != nil {
		return session.Event{}, err
	}
	if s.next >= len(s.events) {
		return session.Event{}, io.EOF
	}
	ev := s.events[s.next]
	s.next++
	return ev, nil
}

// Click, Confirm, Cancel, and Key build scripted events.
func Click(x, y int) session.Event { return session.Event{Kind: session.EventClick, X: x, Y: y} }
func Confirm() session.Event       { return session.Event{Kind: session.EventConfirm} }
func Cancel() session.Event        { return session.Event{Kind: session.EventCancel} }
func Key(r rune) session.Event     { return session.Event{Kind: session.EventKey, Key: r} }

// ScriptPrompter replays canned line input and records instructions.
type ScriptPrompter struct {
	Lines        []string
	Instructions []string
	next         int
}

// Instruct records the instruction text.
func (p *ScriptPrompter) Instruct(text string) {
	p.Instructions = append(p.Instructions, text)
}

// ReadLine returns the next canned line, or EOF when the script runs dry.
func (p *ScriptPrompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.next >= len(p.Lines) {
		return "", io.EOF
	}
	line := p.Lines[p.next]
	p.next++
	return line, nil
}
