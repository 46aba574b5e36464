package engine

import (
	"math"
	"strings"

	"github.com/vsariola/polyvoice"
)

// Router turns control events into voice allocation decisions and parameter
// writes. Like the VoiceManager, it is only used from the render goroutine.
type Router struct {
	voices    *VoiceManager
	broker    *Broker
	inputs    []polyvoice.Control
	monitored []polyvoice.Control
	index     map[string]int // address -> position in inputs

	// parameter indices of the frequency, gain and gate inputs, -1 if the
	// description has none
	freq, gain, gate int

	block uint64
}

func NewRouter(voices *VoiceManager, controls polyvoice.Controls, cfg polyvoice.Config, broker *Broker) *Router {
	r := &Router{
		voices:    voices,
		broker:    broker,
		inputs:    controls.Inputs,
		monitored: controls.Monitored,
		index:     make(map[string]int, len(controls.Inputs)),
	}
	for i, c := range controls.Inputs {
		if _, ok := r.index[c.Address]; !ok {
			r.index[c.Address] = i
		}
	}
	r.freq = r.bySuffix(cfg.FreqSuffix)
	r.gain = r.bySuffix(cfg.GainSuffix)
	r.gate = r.bySuffix(cfg.GateSuffix)
	return r
}

func (r *Router) bySuffix(suffix string) int {
	if suffix == "" {
		return -1
	}
	for _, c := range r.inputs {
		if strings.HasSuffix(c.Address, suffix) {
			return c.Index
		}
	}
	return -1
}

// MIDIToFreq converts a MIDI note number to Hz, equal temperament with note 69
// at 440 Hz.
func MIDIToFreq(pitch int) float32 {
	return float32(440 * math.Pow(2, float64(pitch-69)/12))
}

// NoteOn allocates a voice for the pitch and writes its frequency and gain
// (velocity/127). It returns the voice index, or NoVoice if the note was
// dropped.
func (r *Router) NoteOn(channel, pitch, velocity int) int {
	i := r.voices.Allocate(pitch)
	if i == NoVoice {
		r.broker.Report(Diagnostic{Kind: VoiceUnavailable, Channel: channel, Note: pitch, Block: r.block})
		return NoVoice
	}
	u := r.voices.Unit(i)
	setParam(u, r.freq, MIDIToFreq(pitch))
	setParam(u, r.gain, float32(velocity)/127)
	return i
}

// NoteOff closes the gate of the oldest voice playing the pitch and marks it
// Releasing. It returns the voice index, or NoVoice if nothing was playing the
// pitch.
func (r *Router) NoteOff(channel, pitch int) int {
	i := r.voices.FindPlaying(pitch)
	if i == NoVoice {
		r.broker.Report(Diagnostic{Kind: VoiceNotFound, Channel: channel, Note: pitch, Block: r.block})
		return NoVoice
	}
	setParam(r.voices.Unit(i), r.gate, 0)
	r.voices.MarkReleasing(i)
	return i
}

// ControlChange handles the controllers that concern voice allocation: all
// sound off and all notes off release every voice. Other controllers are
// ignored.
func (r *Router) ControlChange(channel, controller, value int) {
	switch controller {
	case polyvoice.AllSoundOff, polyvoice.AllNotesOff:
		r.AllNotesOff()
	}
}

// PitchBend does nothing for now; voice units that want to bend can expose a
// parameter for it.
func (r *Router) PitchBend(channel, bend int) {}

// AllNotesOff closes the gate of every non-free voice and marks them all
// Releasing.
func (r *Router) AllNotesOff() {
	for i := 0; i < r.voices.Len(); i++ {
		if r.voices.voices[i].State != Free {
			setParam(r.voices.Unit(i), r.gate, 0)
		}
	}
	r.voices.MarkAllReleasing()
}

// SetParameter writes the value to the parameter at path in every voice.
// Unknown paths are ignored; the return value tells if the path was known.
func (r *Router) SetParameter(path string, value float32) bool {
	i, ok := r.index[path]
	if !ok {
		return false
	}
	index := r.inputs[i].Index
	for v := 0; v < r.voices.Len(); v++ {
		r.voices.Unit(v).SetParam(index, value)
	}
	return true
}

// GetParameter reads the parameter at path from voice 0, which stands for all
// voices since parameter writes are broadcast.
func (r *Router) GetParameter(path string) (float32, bool) {
	i, ok := r.index[path]
	if !ok || r.voices.Len() == 0 {
		return 0, false
	}
	return r.voices.Unit(0).Param(r.inputs[i].Index), true
}

// ResetParameters sets every input of every voice back to its initial value.
func (r *Router) ResetParameters() {
	for v := 0; v < r.voices.Len(); v++ {
		u := r.voices.Unit(v)
		for _, c := range r.inputs {
			u.SetParam(c.Index, c.Init)
		}
	}
}

// ClearState asks every voice unit that supports it to drop its internal
// state.
func (r *Router) ClearState() {
	for v := 0; v < r.voices.Len(); v++ {
		if c, ok := r.voices.Unit(v).(polyvoice.Clearer); ok {
			c.Clear()
		}
	}
}

// Apply dispatches the event to the matching method.
func (r *Router) Apply(e polyvoice.Event) {
	switch e.Kind {
	case polyvoice.NoteOnEvent:
		r.NoteOn(e.Channel, e.Note, e.Velocity)
	case polyvoice.NoteOffEvent:
		r.NoteOff(e.Channel, e.Note)
	case polyvoice.ControlChangeEvent:
		r.ControlChange(e.Channel, e.Controller, e.Value)
	case polyvoice.PitchBendEvent:
		r.PitchBend(e.Channel, e.Bend)
	case polyvoice.ParameterEvent:
		r.SetParameter(e.Path, e.Param)
	case polyvoice.ResetParametersEvent:
		r.ResetParameters()
	case polyvoice.ClearStateEvent:
		r.ClearState()
	}
}

// Parameters returns the addresses of the input controls, in description
// order.
func (r *Router) Parameters() []string {
	return addresses(r.inputs)
}

// Monitored returns the addresses of the monitored outputs, in description
// order.
func (r *Router) Monitored() []string {
	return addresses(r.monitored)
}

// Lookup returns the position of the input control with the address among
// the inputs.
func (r *Router) Lookup(path string) (int, bool) {
	i, ok := r.index[path]
	return i, ok
}

// Gate returns the parameter index of the gate input, or -1.
func (r *Router) Gate() int { return r.gate }

func addresses(controls []polyvoice.Control) []string {
	ret := make([]string, len(controls))
	for i, c := range controls {
		ret[i] = c.Address
	}
	return ret
}

func setParam(u polyvoice.VoiceUnit, index int, value float32) {
	if index >= 0 {
		u.SetParam(index, value)
	}
}
