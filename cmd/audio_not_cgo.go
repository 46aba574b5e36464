//go:build !cgo

package cmd

import (
	"errors"

	"github.com/vsariola/polyvoice"
)

func newPortAudioContext(sampleRate int) (polyvoice.AudioContext, error) {
	return nil, errors.New("portaudio is not available in builds without cgo")
}
