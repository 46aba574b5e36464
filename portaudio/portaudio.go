//go:build cgo

// Package portaudio plays polyvoice renderers full duplex through
// github.com/gordonklaus/portaudio. The host callback asks for exactly one
// block per call.
package portaudio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/vsariola/polyvoice"
)

type (
	Context struct {
		sampleRate float64
	}

	Playback struct {
		stream   *portaudio.Stream
		once     sync.Once
		finished chan struct{}
	}
)

// NewContext initializes portaudio; Close terminates it.
func NewContext(sampleRate int) (*Context, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("cannot initialize portaudio: %w", err)
	}
	return &Context{sampleRate: float64(sampleRate)}, nil
}

// Play opens the default input and output devices with the channel counts of
// the renderer and starts calling RenderBlock from the portaudio callback.
func (c *Context) Play(r polyvoice.Renderer) (polyvoice.CloserWaiter, error) {
	var callback any
	if r.NumInputs() == 0 {
		callback = func(out [][]float32) { r.RenderBlock(nil, out) }
	} else {
		callback = func(in, out [][]float32) { r.RenderBlock(in, out) }
	}
	stream, err := portaudio.OpenDefaultStream(r.NumInputs(), r.NumOutputs(), c.sampleRate, r.BlockSize(), callback)
	if err != nil {
		return nil, fmt.Errorf("cannot open portaudio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("cannot start portaudio stream: %w", err)
	}
	return &Playback{stream: stream, finished: make(chan struct{})}, nil
}

func (c *Context) Close() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("cannot terminate portaudio: %w", err)
	}
	return nil
}

func (p *Playback) Close() error {
	var err error
	p.once.Do(func() {
		if serr := p.stream.Stop(); serr != nil {
			err = fmt.Errorf("cannot stop portaudio stream: %w", serr)
		}
		if cerr := p.stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close portaudio stream: %w", cerr)
		}
		close(p.finished)
	})
	return err
}

func (p *Playback) Wait() {
	<-p.finished
}
