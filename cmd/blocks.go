package cmd

import "github.com/vsariola/polyvoice"

// BlockAdapter serves hosts whose buffers have any number of frames from a
// renderer that only renders fixed size blocks. Output is delayed by at most
// one block. The renderer's inputs, if any, are fed with silence.
type BlockAdapter struct {
	renderer polyvoice.Renderer
	inputs   [][]float32
	block    [][]float32
	pos      int
}

func NewBlockAdapter(r polyvoice.Renderer) *BlockAdapter {
	bs := r.BlockSize()
	channels := func(n int) [][]float32 {
		ret := make([][]float32, n)
		for i := range ret {
			ret[i] = make([]float32, bs)
		}
		return ret
	}
	return &BlockAdapter{
		renderer: r,
		inputs:   channels(r.NumInputs()),
		block:    channels(r.NumOutputs()),
		pos:      bs,
	}
}

// Process fills the first frames samples of every channel in out.
func (a *BlockAdapter) Process(out [][]float32, frames int) {
	bs := a.renderer.BlockSize()
	for n := 0; n < frames; {
		if a.pos == bs {
			a.renderer.RenderBlock(a.inputs, a.block)
			a.pos = 0
		}
		k := min(frames-n, bs-a.pos)
		for c := range out {
			if c < len(a.block) {
				copy(out[c][n:n+k], a.block[c][a.pos:a.pos+k])
			} else {
				clear(out[c][n : n+k])
			}
		}
		n += k
		a.pos += k
	}
}
