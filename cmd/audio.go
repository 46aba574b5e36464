package cmd

import (
	"fmt"

	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/oto"
)

// NewAudioContext opens the named realtime backend: "oto", or "portaudio" in
// builds with cgo.
func NewAudioContext(backend string, sampleRate, channels int, pcm16 bool) (polyvoice.AudioContext, error) {
	switch backend {
	case "oto", "":
		format := oto.Float32
		if pcm16 {
			format = oto.Int16
		}
		c, err := oto.NewContext(sampleRate, channels, format)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "portaudio":
		return newPortAudioContext(sampleRate)
	}
	return nil, fmt.Errorf("unknown audio backend %q", backend)
}
