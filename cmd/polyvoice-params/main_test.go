package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/polyvoice/synth"
)

func TestListDefaultTemplate(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, list(&sb, synth.Factory{}.Description(), defaultTemplate))
	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "Synth: 0 input(s), 2 output(s)"), out)
	assert.Contains(t, out, "/synth/sound/cutoff")
	assert.Contains(t, out, "Cutoff")
	assert.Contains(t, out, "vbargraph")
	assert.Less(t, strings.Index(out, "/synth/freq"), strings.Index(out, "/synth/gate"), "document order")
}

func TestListSprigTemplate(t *testing.T) {
	var sb strings.Builder
	tmpl := `{{ range .Parameters }}{{ .Address | trimPrefix "/synth/" | upper }} {{ end }}`
	require.NoError(t, list(&sb, synth.Factory{}.Description(), tmpl))
	assert.True(t, strings.HasPrefix(sb.String(), "FREQ GAIN GATE SOUND/WAVE"), sb.String())
}

func TestListBadTemplate(t *testing.T) {
	var sb strings.Builder
	assert.Error(t, list(&sb, synth.Factory{}.Description(), "{{ .Nope"))
	assert.Error(t, list(&sb, synth.Factory{}.Description(), "{{ .Nope }}"))
}

func TestDescriptionUnknownVoice(t *testing.T) {
	_, err := description("theremin", "")
	assert.Error(t, err)
}
