// Package emit sequences output lines around a value that is discovered only
// after some of the lines that depend on it have been produced.
//
// An Emitter starts in the Buffering state, where every line is held in
// memory. Resolve supplies the value, substitutes it into the held template
// lines, writes everything in order and moves to the Flushed state. Lines
// emitted after that go straight to the Sink.
package emit

import (
	"errors"
	"strings"
)

// Placeholder is replaced by the resolved version in template lines.
const Placeholder = "{{version}}"

// State is the phase of an Emitter.
type State uint8

const (
	Buffering State = iota
	Flushed
)

func (s State) String() string {
	switch s {
	case Buffering:
		return "buffering"
	case Flushed:
		return "flushed"
	default:
		return "invalid"
	}
}

// ErrClosed is returned when emitting to an Emitter after Close.
var ErrClosed = errors.New("emitter closed")

// Sink receives finished lines.
type Sink interface {
	WriteLine(line string) error
	Close() error
}

type pending struct {
	text     string
	template bool
}

// Emitter writes lines to a Sink, holding them until the version is known.
type Emitter struct {
	sink    Sink
	state   State
	version string
	held    []pending
	closed  bool
}

// New returns an Emitter in the Buffering state.
func New(sink Sink) *Emitter {
	return &Emitter{sink: sink}
}

// State returns the current phase.
func (e *Emitter) State() State {
	return e.state
}

// Version returns the resolved version, or an empty string while buffering.
func (e *Emitter) Version() string {
	return e.version
}

// Pending returns the number of held lines.
func (e *Emitter) Pending() int {
	return len(e.held)
}

// Line emits a line verbatim.
func (e *Emitter) Line(text string) error {
	return e.emit(pending{text: text})
}

// Template emits a line in which every Placeholder is replaced by the
// version.
func (e *Emitter) Template(text string) error {
	return e.emit(pending{text: text, template: true})
}

func (e *Emitter) emit(p pending) error {
	if e.closed {
		return ErrClosed
	}
	if e.state == Buffering {
		e.held = append(e.held, p)
		return nil
	}
	return e.sink.WriteLine(e.expand(p))
}

func (e *Emitter) expand(p pending) string {
	if !p.template {
		return p.text
	}
	return Expand(p.text, e.version)
}

// Resolve sets the version and flushes the held lines. Only the first call
// has an effect; later calls report false.
func (e *Emitter) Resolve(version string) (bool, error) {
	if e.closed {
		return false, ErrClosed
	}
	if e.state != Buffering {
		return false, nil
	}
	e.version = version
	e.state = Flushed
	held := e.held
	e.held = nil
	for _, p := range held {
		if err := e.sink.WriteLine(e.expand(p)); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Discard drops held lines without writing them. It has no effect once the
// emitter has flushed.
func (e *Emitter) Discard() {
	e.held = nil
}

// Close closes the sink. Lines still held are discarded, so callers that
// want them written must Resolve first.
func (e *Emitter) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.held = nil
	return e.sink.Close()
}

// Expand replaces every Placeholder in text with version.
func Expand(text, version string) string {
	return strings.ReplaceAll(text, Placeholder, version)
}
