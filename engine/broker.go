package engine

import (
	"context"
	"fmt"
	"log"
	"time"
)

type (
	// Broker carries diagnostics out of the render goroutine. The render
	// goroutine only ever sends with TrySend, so a full channel drops the
	// diagnostic instead of blocking the audio. Closing is done as in the
	// rest of the package: send to Close (capacity 1, never blocks) and wait
	// for Finished to be closed.
	Broker struct {
		Diagnostics chan Diagnostic
		Close       chan struct{}
		Finished    chan struct{}
	}

	// Diagnostic describes an event that the engine could not honor. It is a
	// plain value so that sending it does not allocate; the message is only
	// formatted when the diagnostic is printed.
	Diagnostic struct {
		Kind    DiagnosticKind
		Channel int
		Note    int
		Block   uint64 // index of the block during which it happened
	}

	DiagnosticKind int
)

const (
	// VoiceUnavailable: a note-on was dropped because the pool is empty.
	VoiceUnavailable DiagnosticKind = iota
	// VoiceNotFound: a note-off did not match any active voice.
	VoiceNotFound
	// QueueFull: a control event was dropped because the event queue was
	// full.
	QueueFull
)

const diagnosticsCapacity = 256

func NewBroker() *Broker {
	return &Broker{
		Diagnostics: make(chan Diagnostic, diagnosticsCapacity),
		Close:       make(chan struct{}, 1),
		Finished:    make(chan struct{}),
	}
}

// Report sends the diagnostic if there is room; a nil broker discards it.
func (b *Broker) Report(d Diagnostic) bool {
	if b == nil {
		return false
	}
	return TrySend(b.Diagnostics, d)
}

// TrySend sends v to c only if c has room, and never blocks. It reports
// whether v was sent.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive waits at most t for a value from c. ok is false on timeout
// and when c is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}

// LogDiagnostics prints every diagnostic of the broker with logger until ctx
// is done or something is sent to b.Close. b.Finished is closed on return.
func LogDiagnostics(ctx context.Context, b *Broker, logger *log.Logger) {
	defer close(b.Finished)
	for {
		select {
		case d := <-b.Diagnostics:
			logger.Print(d)
		case <-b.Close:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case VoiceUnavailable:
		return fmt.Sprintf("block %d: no voice available, dropped note on ch %d note %d", d.Block, d.Channel, d.Note)
	case VoiceNotFound:
		return fmt.Sprintf("block %d: no playing voice for note off ch %d note %d", d.Block, d.Channel, d.Note)
	case QueueFull:
		return fmt.Sprintf("block %d: control event queue full, event dropped", d.Block)
	}
	return fmt.Sprintf("block %d: unknown diagnostic %d", d.Block, d.Kind)
}

func (k DiagnosticKind) String() string {
	switch k {
	case VoiceUnavailable:
		return "voice unavailable"
	case VoiceNotFound:
		return "voice not found"
	case QueueFull:
		return "queue full"
	}
	return "unknown"
}
