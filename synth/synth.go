// Package synth implements a small subtractive voice: one oscillator, a
// resonant lowpass filter and an ADSR envelope opened by the gate parameter.
package synth

import (
	"errors"

	"github.com/viterin/vek/vek32"
	"github.com/vsariola/polyvoice"
)

// Parameter indices of the voice.
const (
	Freq = iota
	Gain
	Gate
	Wave
	Cutoff
	Q
	Attack
	Decay
	Sustain
	Release
	Level // monitored: peak of the last computed block
	NumParams
)

// Waveforms selected by the Wave parameter.
const (
	Saw = iota
	Square
	Sine
)

// MaxBlockSize is the largest number of frames Compute handles without
// growing its scratch buffers.
const MaxBlockSize = 4096

const outputGain = 0.2

// Factory creates synth voices. The zero value is ready to use.
type Factory struct{}

// Unit is one synth voice.
type Unit struct {
	sampleRate float64
	params     [NumParams]float32
	gateOn     bool
	osc        oscillator
	filter     biquad
	env        envelope
	buf        []float32
	envBuf     []float32
}

func (Factory) Name() string { return "synth" }

func (Factory) Description() polyvoice.Description {
	return polyvoice.Description{
		Name:    "synth",
		Outputs: 2,
		UI: []polyvoice.Item{
			polyvoice.Group{Kind: polyvoice.VGroup, Label: "synth", Items: []polyvoice.Item{
				polyvoice.Slider{Label: "freq", Address: "/synth/freq", Index: Freq, Init: 440, Min: 20, Max: 20000, Step: 1},
				polyvoice.Slider{Label: "gain", Address: "/synth/gain", Index: Gain, Init: 0.5, Min: 0, Max: 1, Step: 0.01},
				polyvoice.Button{Label: "gate", Address: "/synth/gate", Index: Gate},
				polyvoice.Group{Kind: polyvoice.TGroup, Label: "sound", Items: []polyvoice.Item{
					polyvoice.Group{Kind: polyvoice.HGroup, Label: "oscillator", Items: []polyvoice.Item{
						polyvoice.NumEntry{Label: "wave", Address: "/synth/sound/wave", Index: Wave, Init: Saw, Min: Saw, Max: Sine, Step: 1},
					}},
					polyvoice.Group{Kind: polyvoice.HGroup, Label: "filter", Items: []polyvoice.Item{
						polyvoice.Slider{Kind: polyvoice.VSlider, Label: "cutoff", Address: "/synth/sound/cutoff", Index: Cutoff, Init: 2000, Min: 20, Max: 20000, Step: 1},
						polyvoice.Slider{Kind: polyvoice.VSlider, Label: "q", Address: "/synth/sound/q", Index: Q, Init: 1, Min: 0.5, Max: 20, Step: 0.1},
					}},
					polyvoice.Group{Kind: polyvoice.HGroup, Label: "envelope", Items: []polyvoice.Item{
						polyvoice.Slider{Kind: polyvoice.VSlider, Label: "attack", Address: "/synth/sound/attack", Index: Attack, Init: 0.01, Min: 0, Max: 5, Step: 0.001},
						polyvoice.Slider{Kind: polyvoice.VSlider, Label: "decay", Address: "/synth/sound/decay", Index: Decay, Init: 0.2, Min: 0, Max: 5, Step: 0.001},
						polyvoice.Slider{Kind: polyvoice.VSlider, Label: "sustain", Address: "/synth/sound/sustain", Index: Sustain, Init: 0.7, Min: 0, Max: 1, Step: 0.01},
						polyvoice.Slider{Kind: polyvoice.VSlider, Label: "release", Address: "/synth/sound/release", Index: Release, Init: 0.3, Min: 0, Max: 5, Step: 0.001},
					}},
				}},
				polyvoice.BarGraph{Kind: polyvoice.VBarGraph, Label: "level", Address: "/synth/level", Index: Level, Min: 0, Max: 1},
			}},
		},
	}
}

func (f Factory) NewUnit(sampleRate int) (polyvoice.VoiceUnit, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sample rate should be > 0")
	}
	u := &Unit{
		sampleRate: float64(sampleRate),
		buf:        make([]float32, MaxBlockSize),
		envBuf:     make([]float32, MaxBlockSize),
	}
	for _, c := range f.Description().Flatten().Inputs {
		u.params[c.Index] = c.Init
	}
	return u, nil
}

func (u *Unit) SetParam(index int, value float32) {
	if index >= 0 && index < NumParams {
		u.params[index] = value
	}
}

func (u *Unit) Param(index int) float32 {
	if index >= 0 && index < NumParams {
		return u.params[index]
	}
	return 0
}

// Compute renders frames samples of the voice into every output channel.
func (u *Unit) Compute(frames int, inputs, outputs [][]float32) {
	if frames > len(u.buf) {
		u.buf = make([]float32, frames)
		u.envBuf = make([]float32, frames)
	}
	gate := u.params[Gate] > 0.5
	switch {
	case gate && !u.gateOn:
		u.env.startAttack(u.params[Attack], u.params[Decay], u.params[Sustain], u.sampleRate)
	case !gate && u.gateOn:
		u.env.startRelease(u.params[Release], u.sampleRate)
	}
	u.gateOn = gate
	buf := u.buf[:frames]
	u.osc.process(buf, int(u.params[Wave]), float64(u.params[Freq])/u.sampleRate)
	u.filter.lowpass(float64(u.params[Cutoff]), float64(u.params[Q]), u.sampleRate)
	u.filter.process(buf)
	env := u.envBuf[:frames]
	u.env.process(env)
	vek32.Mul_Inplace(buf, env)
	vek32.MulNumber_Inplace(buf, u.params[Gain]*outputGain)
	for _, out := range outputs {
		copy(out[:frames], buf)
	}
	if frames > 0 {
		u.params[Level] = max(vek32.Max(buf), -vek32.Min(buf))
	}
}

// Clear drops the oscillator, filter and envelope state; the parameters are
// kept.
func (u *Unit) Clear() {
	u.gateOn = false
	u.osc = oscillator{}
	u.filter.clear()
	u.env = envelope{}
	u.params[Level] = 0
}
