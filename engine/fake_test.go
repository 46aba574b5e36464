package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/engine"
)

const (
	freqIndex = iota
	gainIndex
	gateIndex
	cutoffIndex
	levelIndex
	numParams
)

// fakeUnit writes the constant out to every output sample and remembers how
// it was computed.
type fakeUnit struct {
	params  [numParams]float32
	out     float32
	calls   []computeCall
	cleared int
}

type computeCall struct {
	frames int
	gate   float32
}

func (u *fakeUnit) SetParam(index int, value float32) { u.params[index] = value }
func (u *fakeUnit) Param(index int) float32           { return u.params[index] }
func (u *fakeUnit) Clear()                            { u.cleared++ }

func (u *fakeUnit) Compute(frames int, inputs, outputs [][]float32) {
	u.calls = append(u.calls, computeCall{frames: frames, gate: u.params[gateIndex]})
	for c := range outputs {
		for i := 0; i < frames; i++ {
			outputs[c][i] = u.out
		}
	}
	u.params[levelIndex] = u.out
}

var fakeDescription = polyvoice.Description{
	Name:    "fake",
	Outputs: 1,
	UI: []polyvoice.Item{
		polyvoice.Group{Kind: polyvoice.VGroup, Label: "fake", Items: []polyvoice.Item{
			polyvoice.Slider{Label: "freq", Address: "/fake/freq", Index: freqIndex, Init: 440, Min: 20, Max: 20000},
			polyvoice.Slider{Label: "gain", Address: "/fake/gain", Index: gainIndex, Init: 0.5, Max: 1},
			polyvoice.Button{Label: "gate", Address: "/fake/gate", Index: gateIndex},
			polyvoice.Slider{Label: "cutoff", Address: "/fake/cutoff", Index: cutoffIndex, Init: 0.25, Max: 1},
			polyvoice.BarGraph{Label: "level", Address: "/fake/level", Index: levelIndex, Max: 1},
		}},
	},
}

func testConfig(polyphony int) polyvoice.Config {
	cfg := polyvoice.DefaultConfig()
	cfg.BlockSize = 16
	cfg.MaxPolyphony = polyphony
	cfg.QueueSize = 8
	return cfg
}

func fakeUnits(n int) ([]polyvoice.VoiceUnit, []*fakeUnit) {
	units := make([]polyvoice.VoiceUnit, n)
	fakes := make([]*fakeUnit, n)
	for i := range units {
		fakes[i] = &fakeUnit{out: 0.5}
		units[i] = fakes[i]
	}
	return units, fakes
}

func newTestEngine(t *testing.T, polyphony int) (*engine.Engine, []*fakeUnit) {
	t.Helper()
	units, fakes := fakeUnits(polyphony)
	e, err := engine.New(testConfig(polyphony), fakeDescription, units)
	require.NoError(t, err)
	return e, fakes
}

func outputBuffers(e *engine.Engine) [][]float32 {
	ret := make([][]float32, e.NumOutputs())
	for i := range ret {
		ret[i] = make([]float32, e.BlockSize())
	}
	return ret
}

// diagnostics returns the diagnostics reported so far without waiting.
func diagnostics(b *engine.Broker) (ret []engine.Diagnostic) {
	for {
		select {
		case d := <-b.Diagnostics:
			ret = append(ret, d)
		default:
			return
		}
	}
}
