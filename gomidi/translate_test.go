package gomidi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/gomidi"
	"gitlab.com/gomidi/midi/v2"
)

type recorder []polyvoice.Event

func (r *recorder) Post(e polyvoice.Event) bool {
	*r = append(*r, e)
	return true
}

func TestTranslate(t *testing.T) {
	for _, tc := range []struct {
		msg  midi.Message
		want polyvoice.Event
	}{
		{midi.NoteOn(2, 60, 100), polyvoice.NoteOn(2, 60, 100)},
		{midi.NoteOff(3, 61), polyvoice.NoteOff(3, 61)},
		{midi.NoteOn(4, 62, 0), polyvoice.NoteOff(4, 62)},
		{midi.ControlChange(0, 123, 0), polyvoice.ControlChange(0, 123, 0)},
		{midi.Pitchbend(1, -4096), polyvoice.PitchBend(1, -4096)},
	} {
		got, ok := gomidi.Translate(tc.msg)
		assert.True(t, ok, "%v", tc.msg)
		assert.Equal(t, tc.want, got, "%v", tc.msg)
	}
	_, ok := gomidi.Translate(midi.ProgramChange(0, 5))
	assert.False(t, ok)
}

func TestForward(t *testing.T) {
	var r recorder
	assert.True(t, gomidi.Forward(&r, midi.NoteOn(0, 64, 90)))
	assert.False(t, gomidi.Forward(&r, midi.ProgramChange(0, 1)))
	assert.Equal(t, recorder{polyvoice.NoteOn(0, 64, 90)}, r)
}

func TestEventRoundTrip(t *testing.T) {
	for _, e := range []polyvoice.Event{
		polyvoice.NoteOn(1, 60, 127),
		polyvoice.NoteOff(1, 60),
		polyvoice.ControlChange(4, 120, 0),
		polyvoice.PitchBend(0, 8191),
	} {
		msg, ok := gomidi.Event(e)
		assert.True(t, ok)
		got, ok := gomidi.Translate(msg)
		assert.True(t, ok)
		assert.Equal(t, e, got)
	}
	_, ok := gomidi.Event(polyvoice.SetParameter("/x", 1))
	assert.False(t, ok)
}
