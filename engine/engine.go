package engine

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/vsariola/polyvoice"
)

type (
	// Engine renders a fixed pool of voices block by block. RenderBlock and
	// Apply must be called from one goroutine only, the render goroutine;
	// Post, Parameter, VoiceLevels and the handler setters are safe from any
	// goroutine.
	Engine struct {
		cfg        polyvoice.Config
		desc       polyvoice.Description
		controls   polyvoice.Controls
		numInputs  int
		numOutputs int

		arena  *Arena
		voices *VoiceManager
		router *Router
		queue  *EventQueue
		broker *Broker

		monitorCountdown int

		outputHandler  atomic.Pointer[OutputHandler]
		computeHandler atomic.Pointer[ComputeHandler]

		// values published at the end of every block for other goroutines
		paramShadow []atomic.Uint32 // voice 0 inputs, float32 bits
		levelShadow []atomic.Uint32 // voice levels, float32 bits
		blocks      atomic.Uint64
	}

	// OutputHandler receives the value of one monitored output. It is called
	// on the render goroutine and must not block.
	OutputHandler func(path string, value float32)

	// ComputeHandler is called on the render goroutine at the start of every
	// block, after the queued events have been applied and before any voice
	// is computed. It can inject events with Engine.Apply, e.g. from a
	// sequencer. It must not block.
	ComputeHandler func(frames int)
)

// ErrConfig is wrapped by every error New returns because the configuration,
// the description and the voice units do not fit together.
var ErrConfig = errors.New("invalid engine configuration")

// New validates the configuration against the voice description and builds an
// engine around the units, one voice per unit. All the memory the engine
// needs while rendering is allocated here. Every unit starts with the initial
// values of the description inputs.
func New(cfg polyvoice.Config, desc polyvoice.Description, units []polyvoice.VoiceUnit) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	numInputs, err := channelCount("input", cfg.Inputs, desc.Inputs)
	if err != nil {
		return nil, err
	}
	numOutputs, err := channelCount("output", cfg.Outputs, desc.Outputs)
	if err != nil {
		return nil, err
	}
	if numOutputs == 0 {
		return nil, fmt.Errorf("%w: voice %q has no output channels", ErrConfig, desc.Name)
	}
	if len(units) != cfg.MaxPolyphony {
		return nil, fmt.Errorf("%w: polyphony is %d but %d voice units were given", ErrConfig, cfg.MaxPolyphony, len(units))
	}
	for i, u := range units {
		if u == nil {
			return nil, fmt.Errorf("%w: voice unit %d is nil", ErrConfig, i)
		}
	}
	controls := desc.Flatten()
	if err := checkControls(controls); err != nil {
		return nil, err
	}
	arena, err := NewArena(cfg.BlockSize, numInputs, numOutputs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	e := &Engine{
		cfg:              cfg,
		desc:             desc,
		controls:         controls,
		numInputs:        numInputs,
		numOutputs:       numOutputs,
		arena:            arena,
		voices:           NewVoiceManager(units),
		queue:            NewEventQueue(cfg.QueueSize),
		broker:           NewBroker(),
		monitorCountdown: cfg.MonitorInterval,
		paramShadow:      make([]atomic.Uint32, len(controls.Inputs)),
		levelShadow:      make([]atomic.Uint32, len(units)),
	}
	e.router = NewRouter(e.voices, controls, cfg, e.broker)
	e.router.ResetParameters()
	e.publish()
	return e, nil
}

// NewFromFactory creates cfg.MaxPolyphony units with the factory and builds
// an engine around them.
func NewFromFactory(cfg polyvoice.Config, factory polyvoice.UnitFactory) (*Engine, error) {
	units, err := polyvoice.NewUnits(factory, cfg.MaxPolyphony, cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	return New(cfg, factory.Description(), units)
}

func channelCount(kind string, host, voice int) (int, error) {
	if voice < 0 {
		return 0, fmt.Errorf("%w: voice has a negative number of %s channels (%d)", ErrConfig, kind, voice)
	}
	if host == 0 {
		return voice, nil
	}
	if host != voice {
		return 0, fmt.Errorf("%w: host has %d %s channels but the voice has %d", ErrConfig, host, kind, voice)
	}
	return host, nil
}

func checkControls(c polyvoice.Controls) error {
	seen := make(map[string]bool, len(c.Inputs)+len(c.Monitored))
	for _, l := range [][]polyvoice.Control{c.Inputs, c.Monitored} {
		for _, ctrl := range l {
			if ctrl.Index < 0 {
				return fmt.Errorf("%w: control %q has a negative index %d", ErrConfig, ctrl.Address, ctrl.Index)
			}
			if seen[ctrl.Address] {
				return fmt.Errorf("%w: duplicate control address %q", ErrConfig, ctrl.Address)
			}
			seen[ctrl.Address] = true
		}
	}
	return nil
}

// RenderBlock renders one block of BlockSize frames. inputs must have
// NumInputs channels and outputs NumOutputs channels, each at least BlockSize
// samples long; anything else is a programming error and panics.
func (e *Engine) RenderBlock(inputs, outputs [][]float32) {
	bs := e.cfg.BlockSize
	e.checkBuffers(inputs, outputs)
	e.router.block = e.blocks.Load()
	for ev, ok := e.queue.Pop(); ok; ev, ok = e.queue.Pop() {
		e.router.Apply(ev)
	}
	if h := e.computeHandler.Load(); h != nil {
		(*h)(bs)
	}
	for c, in := range e.arena.inputs {
		copy(in, inputs[c][:bs])
	}
	Clear(e.arena.master, bs)
	for i := range e.voices.voices {
		v := &e.voices.voices[i]
		if v.State == Free {
			continue
		}
		if v.NeedsTrigger {
			e.trigger(v)
		} else {
			v.unit.Compute(bs, e.arena.inputs, e.arena.mixing)
		}
		v.Level = MixVoice(bs, e.numOutputs, e.arena.mixing, e.arena.master)
		e.voices.ReclaimIfSilent(i, v.Level, e.cfg.SilenceThreshold)
	}
	e.updateOutputs()
	for c, m := range e.arena.master {
		copy(outputs[c][:bs], m)
	}
	e.publish()
	e.blocks.Add(1)
}

// trigger restarts the envelope of a freshly allocated voice: a short pass with
// the gate closed, then the full block with the gate open. A voice released
// before its first block still sounds for that block and then releases.
func (e *Engine) trigger(v *Voice) {
	gate := e.router.gate
	setParam(v.unit, gate, 0)
	if p := e.cfg.TriggerPreroll; p > 0 {
		v.unit.Compute(p, e.arena.inputs, e.arena.mixing)
	}
	setParam(v.unit, gate, 1)
	v.unit.Compute(e.cfg.BlockSize, e.arena.inputs, e.arena.mixing)
	if v.State == Releasing {
		setParam(v.unit, gate, 0)
	}
	v.NeedsTrigger = false
}

func (e *Engine) updateOutputs() {
	e.monitorCountdown--
	if e.monitorCountdown > 0 {
		return
	}
	e.monitorCountdown = e.cfg.MonitorInterval
	h := e.outputHandler.Load()
	if h == nil || len(e.controls.Monitored) == 0 || e.voices.Len() == 0 {
		return
	}
	u := e.voices.Unit(0)
	for _, c := range e.controls.Monitored {
		(*h)(c.Address, u.Param(c.Index))
	}
}

func (e *Engine) publish() {
	if e.voices.Len() > 0 {
		u := e.voices.Unit(0)
		for i, c := range e.controls.Inputs {
			e.paramShadow[i].Store(math.Float32bits(u.Param(c.Index)))
		}
	}
	for i := range e.voices.voices {
		var level float32
		if v := &e.voices.voices[i]; v.State != Free {
			level = v.Level
		}
		e.levelShadow[i].Store(math.Float32bits(level))
	}
}

func (e *Engine) checkBuffers(inputs, outputs [][]float32) {
	if len(inputs) != e.numInputs {
		panic(fmt.Sprintf("engine: RenderBlock got %d input channels, expected %d", len(inputs), e.numInputs))
	}
	if len(outputs) != e.numOutputs {
		panic(fmt.Sprintf("engine: RenderBlock got %d output channels, expected %d", len(outputs), e.numOutputs))
	}
	for c, in := range inputs {
		if len(in) < e.cfg.BlockSize {
			panic(fmt.Sprintf("engine: input channel %d has %d frames, block size is %d", c, len(in), e.cfg.BlockSize))
		}
	}
	for c, out := range outputs {
		if len(out) < e.cfg.BlockSize {
			panic(fmt.Sprintf("engine: output channel %d has %d frames, block size is %d", c, len(out), e.cfg.BlockSize))
		}
	}
}

// Post queues the event to be applied at the start of the next block. If the
// queue is full, the event is dropped, a QueueFull diagnostic is reported and
// Post returns false.
func (e *Engine) Post(ev polyvoice.Event) bool {
	if e.queue.Push(ev) {
		return true
	}
	e.broker.Report(Diagnostic{Kind: QueueFull, Block: e.blocks.Load()})
	return false
}

// Apply applies the event immediately. Only call it from the render goroutine,
// e.g. from a ComputeHandler, or when nothing is rendering.
func (e *Engine) Apply(ev polyvoice.Event) {
	e.router.Apply(ev)
}

// SetOutputMonitorHandler sets the handler receiving the monitored outputs
// every MonitorInterval blocks; nil removes it.
func (e *Engine) SetOutputMonitorHandler(h OutputHandler) {
	if h == nil {
		e.outputHandler.Store(nil)
		return
	}
	e.outputHandler.Store(&h)
}

// SetComputeHandler sets the handler called at the start of every block; nil
// removes it.
func (e *Engine) SetComputeHandler(h ComputeHandler) {
	if h == nil {
		e.computeHandler.Store(nil)
		return
	}
	e.computeHandler.Store(&h)
}

// Parameter returns the value of the input at path as published at the end of
// the last block.
func (e *Engine) Parameter(path string) (float32, bool) {
	i, ok := e.router.Lookup(path)
	if !ok || e.voices.Len() == 0 {
		return 0, false
	}
	return math.Float32frombits(e.paramShadow[i].Load()), true
}

// VoiceLevels appends the peak level of every voice, as published at the end
// of the last block, to dst. Free voices have level 0.
func (e *Engine) VoiceLevels(dst []float32) []float32 {
	for i := range e.levelShadow {
		dst = append(dst, math.Float32frombits(e.levelShadow[i].Load()))
	}
	return dst
}

// Blocks returns the number of blocks rendered so far.
func (e *Engine) Blocks() uint64 { return e.blocks.Load() }

func (e *Engine) Router() *Router                    { return e.router }
func (e *Engine) Voices() *VoiceManager              { return e.voices }
func (e *Engine) Broker() *Broker                    { return e.broker }
func (e *Engine) Config() polyvoice.Config           { return e.cfg }
func (e *Engine) Description() polyvoice.Description { return e.desc }
func (e *Engine) Controls() polyvoice.Controls       { return e.controls }
func (e *Engine) SampleRate() int                    { return e.cfg.SampleRate }
func (e *Engine) BlockSize() int                     { return e.cfg.BlockSize }
func (e *Engine) NumInputs() int                     { return e.numInputs }
func (e *Engine) NumOutputs() int                    { return e.numOutputs }
