// Package oto plays polyvoice renderers through github.com/ebitengine/oto/v3.
package oto

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/polyvoice"
)

type (
	// Context is an output-only audio backend. Oto pulls bytes from a reader;
	// the reader renders a new block whenever the previous one has been
	// consumed, so RenderBlock runs on oto's goroutine.
	Context struct {
		ctx        *oto.Context
		channels   int
		format     Format
		bufferSize int
	}

	Format int

	// Playback is a renderer being played. Close stops it.
	Playback struct {
		player   *oto.Player
		stream   *stream
		once     sync.Once
		finished chan struct{}
	}

	stream struct {
		renderer    polyvoice.Renderer
		format      Format
		inputs      [][]float32
		outputs     [][]float32
		interleaved []float32
		bytes       []byte
		pos         int
	}
)

const (
	Float32 Format = iota
	Int16
)

// DefaultBufferSize is the number of frames oto buffers ahead.
const DefaultBufferSize = 2048

// NewContext creates the oto context. Only one context can exist per process.
func NewContext(sampleRate, channels int, format Format) (*Context, error) {
	if channels <= 0 {
		return nil, errors.New("oto: number of channels should be > 0")
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       format.oto(),
		BufferSize:   0, // oto default latency
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx, channels: channels, format: format, bufferSize: DefaultBufferSize}, nil
}

// Play starts pulling blocks from the renderer. Its audio inputs, if it has
// any, are fed with silence.
func (c *Context) Play(r polyvoice.Renderer) (polyvoice.CloserWaiter, error) {
	if r.NumOutputs() != c.channels {
		return nil, fmt.Errorf("oto: renderer has %d output channels, context has %d", r.NumOutputs(), c.channels)
	}
	s := newStream(r, c.format)
	p := &Playback{
		player:   c.ctx.NewPlayer(s),
		stream:   s,
		finished: make(chan struct{}),
	}
	p.player.SetBufferSize(c.bufferSize * c.channels * c.format.bytesPerSample())
	p.player.Play()
	return p, nil
}

func (c *Context) Close() error {
	if err := c.ctx.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

func (p *Playback) Close() error {
	var err error
	p.once.Do(func() {
		if cerr := p.player.Close(); cerr != nil {
			err = fmt.Errorf("cannot close oto player: %w", cerr)
		}
		close(p.finished)
	})
	return err
}

func (p *Playback) Wait() {
	<-p.finished
}

func newStream(r polyvoice.Renderer, format Format) *stream {
	bs := r.BlockSize()
	channels := func(n int) [][]float32 {
		ret := make([][]float32, n)
		for i := range ret {
			ret[i] = make([]float32, bs)
		}
		return ret
	}
	return &stream{
		renderer:    r,
		format:      format,
		inputs:      channels(r.NumInputs()),
		outputs:     channels(r.NumOutputs()),
		interleaved: make([]float32, bs*r.NumOutputs()),
		bytes:       make([]byte, 0, bs*r.NumOutputs()*format.bytesPerSample()),
	}
}

// Read implements io.Reader for oto.
func (s *stream) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if s.pos >= len(s.bytes) {
			s.render()
		}
		c := copy(p[n:], s.bytes[s.pos:])
		s.pos += c
		n += c
	}
	return n, nil
}

func (s *stream) render() {
	s.renderer.RenderBlock(s.inputs, s.outputs)
	interleave(s.interleaved, s.outputs, s.renderer.BlockSize())
	switch s.format {
	case Int16:
		s.bytes = FloatBufferTo16BitLE(s.interleaved, s.bytes[:0])
	default:
		s.bytes = FloatBufferToFloatLE(s.interleaved, s.bytes[:0])
	}
	s.pos = 0
}

func (f Format) oto() oto.Format {
	if f == Int16 {
		return oto.FormatSignedInt16LE
	}
	return oto.FormatFloat32LE
}

func (f Format) bytesPerSample() int {
	if f == Int16 {
		return 2
	}
	return 4
}
