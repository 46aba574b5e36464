package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/cmd"
	"github.com/vsariola/polyvoice/engine"
)

type nullMIDI struct{ opened string }

func (n *nullMIDI) Inputs() []string { return []string{"Fake Keyboard"} }
func (n *nullMIDI) Close()           {}
func (n *nullMIDI) TryToOpenBy(prefix string, takeFirst bool) error {
	n.opened = prefix
	return nil
}

func newTestREPL(t *testing.T) (*repl, *engine.Poly, *strings.Builder) {
	t.Helper()
	cfg := polyvoice.DefaultConfig()
	cfg.MaxPolyphony = 2
	p, err := cmd.NewPoly(cfg, cmd.DefaultVoice)
	require.NoError(t, err)
	var sb strings.Builder
	return newREPL(p, &nullMIDI{}, &sb), p, &sb
}

func render(p *engine.Poly) {
	out := [][]float32{make([]float32, p.BlockSize()), make([]float32, p.BlockSize())}
	p.RenderBlock(nil, out)
}

func TestEvalNotes(t *testing.T) {
	r, p, _ := newTestREPL(t)
	require.NoError(t, r.eval("on 60"))
	require.NoError(t, r.eval("on 64 127 1"))
	render(p)
	v := p.Engine().Voices()
	assert.Equal(t, 2, v.Busy())
	assert.Equal(t, 64, v.Voice(1).Note)
	require.NoError(t, r.eval("off 64 1"))
	render(p)
	assert.Equal(t, engine.Releasing, v.Voice(1).State)
	require.NoError(t, r.eval("panic"))
	render(p)
	assert.Equal(t, engine.Releasing, v.Voice(0).State)
}

func TestEvalParameters(t *testing.T) {
	r, p, sb := newTestREPL(t)
	require.NoError(t, r.eval("set /synth/sound/cutoff 500"))
	render(p)
	require.NoError(t, r.eval("get /synth/sound/cutoff"))
	assert.Contains(t, sb.String(), "/synth/sound/cutoff = 500")
	assert.Error(t, r.eval("set /synth/nope 1"))
	assert.Error(t, r.eval("set /synth/sound/cutoff loud"))
	require.NoError(t, r.eval("params"))
	assert.Contains(t, sb.String(), "/synth/level")
}

func TestEvalErrors(t *testing.T) {
	r, _, _ := newTestREPL(t)
	assert.NoError(t, r.eval("   "))
	assert.Error(t, r.eval("on"))
	assert.Error(t, r.eval("on C4"))
	assert.Error(t, r.eval("sing"))
}

func TestEvalMIDIAndMonitor(t *testing.T) {
	r, _, sb := newTestREPL(t)
	require.NoError(t, r.eval("midi"))
	assert.Contains(t, sb.String(), "Fake Keyboard")
	require.NoError(t, r.eval("midi Fake Key"))
	assert.Equal(t, "Fake Key", r.midi.(*nullMIDI).opened)
	r.monitor("/synth/level", 0.5)
	assert.NotContains(t, sb.String(), "/synth/level: ")
	require.NoError(t, r.eval("monitor"))
	r.monitor("/synth/level", 0.5)
	assert.Contains(t, sb.String(), "/synth/level: 0.5000")
	require.NoError(t, r.eval("quit"))
	assert.True(t, r.quit)
}
