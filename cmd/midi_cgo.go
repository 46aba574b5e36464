//go:build cgo

package cmd

import (
	"github.com/vsariola/polyvoice/gomidi"
)

func NewMIDIContext(poster gomidi.EventPoster) MIDIContext {
	return gomidi.NewContext(poster)
}
