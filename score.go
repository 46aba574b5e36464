package polyvoice

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

type (
	// Score is a list of timed control events, used for rendering offline.
	// Tail is the number of seconds rendered after the last event, so that
	// released notes have time to fade out.
	Score struct {
		Tail   float64 `yaml:",omitempty"`
		Events []ScoreEvent
	}

	// ScoreEvent is one control event at Time seconds from the start. Type is
	// one of "on", "off", "cc", "bend" and "param"; the other fields are used
	// depending on the type.
	ScoreEvent struct {
		Time       float64
		Type       string
		Channel    int     `yaml:",omitempty"`
		Note       int     `yaml:",omitempty"`
		Velocity   int     `yaml:",omitempty"`
		Controller int     `yaml:",omitempty"`
		Value      int     `yaml:",omitempty"`
		Bend       int     `yaml:",omitempty"`
		Path       string  `yaml:",omitempty"`
		Param      float32 `yaml:",omitempty"`
	}
)

const defaultTail = 2.0

// ReadScore parses a YAML score and sorts its events by time. Events with
// equal times keep their order in the document.
func ReadScore(r io.Reader) (Score, error) {
	s := Score{Tail: defaultTail}
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return s, fmt.Errorf("could not parse score: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	s.Sort()
	return s, nil
}

// Validate checks that the tail and the event times are not negative and that
// every event has a known type.
func (s *Score) Validate() error {
	if s.Tail < 0 {
		return fmt.Errorf("score tail cannot be negative, was %v", s.Tail)
	}
	for i, e := range s.Events {
		if _, err := e.Event(); err != nil {
			return fmt.Errorf("score event %d: %w", i, err)
		}
		if e.Time < 0 {
			return fmt.Errorf("score event %d: negative time %v", i, e.Time)
		}
	}
	return nil
}

// Sort sorts the events by time, stably.
func (s *Score) Sort() {
	slices.SortStableFunc(s.Events, func(a, b ScoreEvent) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
}

// Length returns the length of the score in seconds: the time of the latest
// event plus the tail. The events need not be sorted.
func (s *Score) Length() float64 {
	var last float64
	for _, e := range s.Events {
		last = max(last, e.Time)
	}
	return last + s.Tail
}

// Frame returns the sample frame at which the event happens.
func (e ScoreEvent) Frame(sampleRate int) int {
	return int(e.Time * float64(sampleRate))
}

// Event converts the score event into a control event.
func (e ScoreEvent) Event() (Event, error) {
	switch e.Type {
	case "on":
		return NoteOn(e.Channel, e.Note, e.Velocity), nil
	case "off":
		return NoteOff(e.Channel, e.Note), nil
	case "cc":
		return ControlChange(e.Channel, e.Controller, e.Value), nil
	case "bend":
		return PitchBend(e.Channel, e.Bend), nil
	case "param":
		return SetParameter(e.Path, e.Param), nil
	}
	return Event{}, fmt.Errorf("unknown event type %q", e.Type)
}
