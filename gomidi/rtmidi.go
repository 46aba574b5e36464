//go:build cgo

package gomidi

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	// RTMIDIContext listens to one rtmidi input port at a time and forwards
	// its messages to an EventPoster. Messages arrive on the driver's
	// goroutine; the poster must be safe for concurrent use.
	RTMIDIContext struct {
		driver    *rtmididrv.Driver
		poster    EventPoster
		currentIn drivers.In
		stop      func()
	}

	RTMIDIDevice struct {
		context *RTMIDIContext
		in      drivers.In
	}
)

// NewContext opens the rtmidi driver. If the driver is not available, the
// context has no devices.
func NewContext(poster EventPoster) *RTMIDIContext {
	m := RTMIDIContext{poster: poster}
	// there's not much we can do if this fails, so just use m.driver = nil to
	// indicate no driver available
	m.driver, _ = rtmididrv.New()
	return &m
}

func (c *RTMIDIContext) InputDevices(yield func(RTMIDIDevice) bool) {
	if c.driver == nil {
		return
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return
	}
	for _, in := range ins {
		if !yield(RTMIDIDevice{context: c, in: in}) {
			return
		}
	}
}

// Inputs lists the names of the input devices.
func (c *RTMIDIContext) Inputs() (ret []string) {
	for d := range c.InputDevices {
		ret = append(ret, d.String())
	}
	return ret
}

// Open opens the input device, closing the currently open one first.
func (d RTMIDIDevice) Open() error {
	c := d.context
	if c.currentIn == d.in {
		return nil
	}
	if c.driver == nil {
		return errors.New("no driver available")
	}
	c.closeInput()
	if err := d.in.Open(); err != nil {
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	stop, err := midi.ListenTo(d.in, c.HandleMessage)
	if err != nil {
		d.in.Close()
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	c.currentIn, c.stop = d.in, stop
	return nil
}

func (d RTMIDIDevice) String() string {
	return d.in.String()
}

// TryToOpenBy opens the first input whose name starts with namePrefix, or the
// first input at all if takeFirst is set.
func (c *RTMIDIContext) TryToOpenBy(namePrefix string, takeFirst bool) error {
	if namePrefix == "" && !takeFirst {
		return nil
	}
	for input := range c.InputDevices {
		if takeFirst || strings.HasPrefix(input.String(), namePrefix) {
			return input.Open()
		}
	}
	if takeFirst {
		return errors.New("could not find any MIDI input")
	}
	return fmt.Errorf("could not find any MIDI input starting with %q", namePrefix)
}

func (c *RTMIDIContext) HasDeviceOpen() bool {
	return c.currentIn != nil && c.currentIn.IsOpen()
}

// HandleMessage forwards the message to the poster; the timestamp is not
// used, events take effect at the start of the next block.
func (c *RTMIDIContext) HandleMessage(msg midi.Message, timestampms int32) {
	Forward(c.poster, msg)
}

func (c *RTMIDIContext) closeInput() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	if c.HasDeviceOpen() {
		c.currentIn.Close()
	}
	c.currentIn = nil
}

func (c *RTMIDIContext) Close() {
	if c.driver == nil {
		return
	}
	c.closeInput()
	c.driver.Close()
}
