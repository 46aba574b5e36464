package polyvoice

import "fmt"

type (
	// Event is a control event: a note on or off, a controller change, a
	// pitch bend or a parameter write. Events are plain values so they can be
	// copied through queues without allocating.
	Event struct {
		Kind       EventKind
		Channel    int
		Note       int // pitch, 0..127
		Velocity   int // 0..127
		Controller int
		Value      int     // controller value, 0..127
		Bend       int     // pitch bend, -8192..8191
		Path       string  // parameter address
		Param      float32 // parameter value
	}

	EventKind int
)

const (
	NoEvent EventKind = iota
	NoteOnEvent
	NoteOffEvent
	ControlChangeEvent
	PitchBendEvent
	ParameterEvent
	ResetParametersEvent
	ClearStateEvent
)

// MIDI controller numbers with a meaning for the voice allocator.
const (
	AllSoundOff = 120
	AllNotesOff = 123
)

func NoteOn(channel, note, velocity int) Event {
	return Event{Kind: NoteOnEvent, Channel: channel, Note: note, Velocity: velocity}
}

func NoteOff(channel, note int) Event {
	return Event{Kind: NoteOffEvent, Channel: channel, Note: note}
}

func ControlChange(channel, controller, value int) Event {
	return Event{Kind: ControlChangeEvent, Channel: channel, Controller: controller, Value: value}
}

func PitchBend(channel, bend int) Event {
	return Event{Kind: PitchBendEvent, Channel: channel, Bend: bend}
}

func SetParameter(path string, value float32) Event {
	return Event{Kind: ParameterEvent, Path: path, Param: value}
}

// ResetParameters returns an event that sets every voice parameter back to its
// initial value.
func ResetParameters() Event { return Event{Kind: ResetParametersEvent} }

// ClearState returns an event that drops the internal state of every voice
// unit implementing Clearer.
func ClearState() Event { return Event{Kind: ClearStateEvent} }

func (e Event) String() string {
	switch e.Kind {
	case NoteOnEvent:
		return fmt.Sprintf("note on ch %d note %d vel %d", e.Channel, e.Note, e.Velocity)
	case NoteOffEvent:
		return fmt.Sprintf("note off ch %d note %d", e.Channel, e.Note)
	case ControlChangeEvent:
		return fmt.Sprintf("cc ch %d ctrl %d val %d", e.Channel, e.Controller, e.Value)
	case PitchBendEvent:
		return fmt.Sprintf("pitch bend ch %d %d", e.Channel, e.Bend)
	case ParameterEvent:
		return fmt.Sprintf("set %s = %v", e.Path, e.Param)
	case ResetParametersEvent:
		return "reset parameters"
	case ClearStateEvent:
		return "clear state"
	}
	return "no event"
}
