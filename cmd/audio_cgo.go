//go:build cgo

package cmd

import (
	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/portaudio"
)

func newPortAudioContext(sampleRate int) (polyvoice.AudioContext, error) {
	c, err := portaudio.NewContext(sampleRate)
	if err != nil {
		return nil, err
	}
	return c, nil
}
