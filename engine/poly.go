package engine

import "github.com/vsariola/polyvoice"

// Poly is the control surface of an Engine for UI, MIDI and plugin host
// goroutines. Every method is safe to call concurrently with RenderBlock:
// events are queued and applied at the start of the next block, and
// parameter reads come from the values published at the end of the last
// block.
type Poly struct {
	e *Engine
}

func NewPoly(e *Engine) *Poly { return &Poly{e: e} }

// NewPolyFromFactory is a shorthand for NewFromFactory followed by NewPoly.
func NewPolyFromFactory(cfg polyvoice.Config, factory polyvoice.UnitFactory) (*Poly, error) {
	e, err := NewFromFactory(cfg, factory)
	if err != nil {
		return nil, err
	}
	return NewPoly(e), nil
}

func (p *Poly) NoteOn(channel, pitch, velocity int) bool {
	return p.e.Post(polyvoice.NoteOn(channel, pitch, velocity))
}

func (p *Poly) NoteOff(channel, pitch int) bool {
	return p.e.Post(polyvoice.NoteOff(channel, pitch))
}

func (p *Poly) ControlChange(channel, controller, value int) bool {
	return p.e.Post(polyvoice.ControlChange(channel, controller, value))
}

func (p *Poly) PitchBend(channel, bend int) bool {
	return p.e.Post(polyvoice.PitchBend(channel, bend))
}

func (p *Poly) SetParameter(path string, value float32) bool {
	return p.e.Post(polyvoice.SetParameter(path, value))
}

// AllNotesOff releases every sounding voice.
func (p *Poly) AllNotesOff() bool {
	return p.e.Post(polyvoice.ControlChange(0, polyvoice.AllNotesOff, 0))
}

func (p *Poly) ResetParameters() bool { return p.e.Post(polyvoice.ResetParameters()) }
func (p *Poly) ClearState() bool      { return p.e.Post(polyvoice.ClearState()) }

// Post queues any event; see Engine.Post.
func (p *Poly) Post(ev polyvoice.Event) bool { return p.e.Post(ev) }

// GetParameter returns the value of the input parameter at path, as seen by
// voice 0 at the end of the last rendered block. ok is false for unknown
// paths and for an engine without voices.
func (p *Poly) GetParameter(path string) (value float32, ok bool) {
	return p.e.Parameter(path)
}

// Parameters lists the addresses of the controllable parameters.
func (p *Poly) Parameters() []string { return p.e.router.Parameters() }

// Monitored lists the addresses of the monitored outputs.
func (p *Poly) Monitored() []string { return p.e.router.Monitored() }

func (p *Poly) SetOutputMonitorHandler(h OutputHandler) { p.e.SetOutputMonitorHandler(h) }
func (p *Poly) SetComputeHandler(h ComputeHandler)      { p.e.SetComputeHandler(h) }

func (p *Poly) RenderBlock(inputs, outputs [][]float32) { p.e.RenderBlock(inputs, outputs) }

func (p *Poly) VoiceLevels(dst []float32) []float32 { return p.e.VoiceLevels(dst) }

func (p *Poly) Engine() *Engine                    { return p.e }
func (p *Poly) Broker() *Broker                    { return p.e.broker }
func (p *Poly) Description() polyvoice.Description { return p.e.desc }
func (p *Poly) SampleRate() int                    { return p.e.cfg.SampleRate }
func (p *Poly) BlockSize() int                     { return p.e.cfg.BlockSize }
func (p *Poly) NumInputs() int                     { return p.e.numInputs }
func (p *Poly) NumOutputs() int                    { return p.e.numOutputs }
