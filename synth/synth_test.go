package synth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/engine"
	"github.com/vsariola/polyvoice/synth"
)

const sampleRate = 44100

func newUnit(t *testing.T) *synth.Unit {
	t.Helper()
	u, err := synth.Factory{}.NewUnit(sampleRate)
	require.NoError(t, err)
	return u.(*synth.Unit)
}

func compute(u *synth.Unit, frames int) [][]float32 {
	out := [][]float32{make([]float32, frames), make([]float32, frames)}
	u.Compute(frames, nil, out)
	return out
}

func peak(buf []float32) (ret float32) {
	for _, v := range buf {
		ret = max(ret, v, -v)
	}
	return
}

func TestDescription(t *testing.T) {
	d := synth.Factory{}.Description()
	c := d.Flatten()
	require.Len(t, c.Inputs, synth.NumParams-1)
	require.Len(t, c.Monitored, 1)
	assert.Equal(t, synth.NumParams-1, c.MaxIndex())
	seen := map[int]bool{}
	for _, ctrl := range c.Inputs {
		assert.False(t, seen[ctrl.Index], "index %d used twice", ctrl.Index)
		seen[ctrl.Index] = true
	}
	cfg := polyvoice.DefaultConfig()
	var found int
	for _, ctrl := range c.Inputs {
		for _, suffix := range []string{cfg.FreqSuffix, cfg.GainSuffix, cfg.GateSuffix} {
			if strings.HasSuffix(ctrl.Address, suffix) {
				found++
			}
		}
	}
	assert.Equal(t, 3, found, "frequency, gain and gate are found by the engine")
}

func TestNewUnitInitialValues(t *testing.T) {
	u := newUnit(t)
	assert.Equal(t, float32(440), u.Param(synth.Freq))
	assert.Equal(t, float32(0.7), u.Param(synth.Sustain))
	assert.Equal(t, float32(0), u.Param(synth.Gate))
	assert.Equal(t, float32(0), u.Param(100))
	_, err := synth.Factory{}.NewUnit(0)
	assert.Error(t, err)
}

func TestClosedGateIsSilent(t *testing.T) {
	u := newUnit(t)
	out := compute(u, 512)
	assert.Equal(t, float32(0), peak(out[0]))
	assert.Equal(t, float32(0), u.Param(synth.Level))
}

func TestGateOpensAndReleases(t *testing.T) {
	for _, wave := range []float32{synth.Saw, synth.Square, synth.Sine} {
		u := newUnit(t)
		u.SetParam(synth.Wave, wave)
		u.SetParam(synth.Gain, 1)
		u.SetParam(synth.Release, 0.01)
		u.SetParam(synth.Gate, 1)
		compute(u, 2048)
		out := compute(u, 256)
		assert.Greater(t, peak(out[0]), float32(0.01), "wave %v", wave)
		assert.LessOrEqual(t, peak(out[0]), float32(1), "wave %v", wave)
		assert.Equal(t, out[0], out[1], "both channels carry the voice")
		assert.Equal(t, peak(out[0]), u.Param(synth.Level))
		u.SetParam(synth.Gate, 0)
		compute(u, 1024) // 10 ms release is 441 samples
		out = compute(u, 256)
		assert.Less(t, peak(out[0]), float32(0.001), "wave %v", wave)
	}
}

func TestLowpassPassesDC(t *testing.T) {
	u := newUnit(t)
	u.SetParam(synth.Wave, synth.Square)
	u.SetParam(synth.Freq, 1) // one period per second: DC for a short block
	u.SetParam(synth.Gain, 1)
	u.SetParam(synth.Attack, 0)
	u.SetParam(synth.Decay, 0)
	u.SetParam(synth.Sustain, 1)
	u.SetParam(synth.Gate, 1)
	compute(u, 4096)
	out := compute(u, 64)
	for _, v := range out[0] {
		assert.InDelta(t, 0.2, v, 1e-3)
	}
}

func TestClear(t *testing.T) {
	u := newUnit(t)
	u.SetParam(synth.Gate, 1)
	compute(u, 1024)
	u.Clear()
	u.SetParam(synth.Gate, 0)
	out := compute(u, 256)
	assert.Equal(t, float32(0), peak(out[0]))
	assert.Equal(t, float32(440), u.Param(synth.Freq), "parameters are kept")
}

func TestSynthInEngine(t *testing.T) {
	cfg := polyvoice.DefaultConfig()
	cfg.MaxPolyphony = 4
	e, err := engine.NewFromFactory(cfg, synth.Factory{})
	require.NoError(t, err)
	e.Apply(polyvoice.SetParameter("/synth/sound/release", 0.05))
	out := [][]float32{make([]float32, cfg.BlockSize), make([]float32, cfg.BlockSize)}
	e.Apply(polyvoice.NoteOn(0, 60, 127))
	e.Apply(polyvoice.NoteOn(0, 64, 127))
	for i := 0; i < 20; i++ {
		e.RenderBlock(nil, out)
	}
	assert.Greater(t, peak(out[0]), float32(0.01))
	assert.Equal(t, 2, e.Voices().Busy())
	e.Apply(polyvoice.ControlChange(0, polyvoice.AllNotesOff, 0))
	for i := 0; i < 40; i++ { // 0.05 s is about 9 blocks
		e.RenderBlock(nil, out)
	}
	assert.Equal(t, 0, e.Voices().Busy(), "released voices are reclaimed once silent")
	assert.Equal(t, float32(0), peak(out[0]))
}
