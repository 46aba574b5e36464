//go:build !cgo

package cmd

import (
	"errors"

	"github.com/vsariola/polyvoice/gomidi"
)

func NewMIDIContext(poster gomidi.EventPoster) MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return NullMIDIContext{}
}

type NullMIDIContext struct{}

func (NullMIDIContext) Inputs() []string { return nil }
func (NullMIDIContext) Close()           {}

func (NullMIDIContext) TryToOpenBy(namePrefix string, takeFirst bool) error {
	if namePrefix == "" && !takeFirst {
		return nil
	}
	return errors.New("MIDI input is not available in builds without cgo")
}
