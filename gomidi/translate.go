// Package gomidi connects MIDI input to a polyvoice engine using
// gitlab.com/gomidi/midi/v2.
package gomidi

import (
	"github.com/vsariola/polyvoice"
	"gitlab.com/gomidi/midi/v2"
)

// EventPoster accepts control events, e.g. engine.Poly or engine.Engine.
type EventPoster interface {
	Post(polyvoice.Event) bool
}

// Translate converts a MIDI message into a control event. Only note on, note
// off, control change and pitch bend messages are translated; ok is false for
// everything else. A note on with zero velocity is a note off.
func Translate(msg midi.Message) (e polyvoice.Event, ok bool) {
	var channel, key, velocity, controller, value uint8
	var bend int16
	var abs uint16
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		return polyvoice.NoteOn(int(channel), int(key), int(velocity)), true
	case msg.GetNoteEnd(&channel, &key):
		return polyvoice.NoteOff(int(channel), int(key)), true
	case msg.GetControlChange(&channel, &controller, &value):
		return polyvoice.ControlChange(int(channel), int(controller), int(value)), true
	case msg.GetPitchBend(&channel, &bend, &abs):
		return polyvoice.PitchBend(int(channel), int(bend)), true
	}
	return e, false
}

// Forward translates the MIDI message and posts it. Messages that have no
// control event counterpart are ignored.
func Forward(p EventPoster, msg midi.Message) bool {
	e, ok := Translate(msg)
	if !ok {
		return false
	}
	return p.Post(e)
}

// Event converts a control event back to a MIDI message; ok is false for
// events that are not MIDI messages, like parameter writes.
func Event(e polyvoice.Event) (msg midi.Message, ok bool) {
	switch e.Kind {
	case polyvoice.NoteOnEvent:
		return midi.NoteOn(uint8(e.Channel), uint8(e.Note), uint8(e.Velocity)), true
	case polyvoice.NoteOffEvent:
		return midi.NoteOff(uint8(e.Channel), uint8(e.Note)), true
	case polyvoice.ControlChangeEvent:
		return midi.ControlChange(uint8(e.Channel), uint8(e.Controller), uint8(e.Value)), true
	case polyvoice.PitchBendEvent:
		return midi.Pitchbend(uint8(e.Channel), int16(e.Bend)), true
	}
	return nil, false
}
