package cmd

// MIDIContext is a source of MIDI input posting events to an engine.
type MIDIContext interface {
	Inputs() []string
	TryToOpenBy(namePrefix string, takeFirst bool) error
	Close()
}
