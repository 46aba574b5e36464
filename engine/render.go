package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/vsariola/polyvoice"
)

// Render renders the score offline, from the current state of the engine, and
// returns the output channels. Events take effect at the start of the block
// their time falls in. inputs are the host input channels; shorter inputs are
// padded with silence. The events of the score need not be sorted. Render
// drives the engine itself, so nothing else may be rendering with it at the
// same time.
func Render(e *Engine, score polyvoice.Score, inputs [][]float32) ([][]float32, error) {
	if len(inputs) != e.numInputs {
		return nil, fmt.Errorf("Render: got %d input channels, voice has %d", len(inputs), e.numInputs)
	}
	if err := score.Validate(); err != nil {
		return nil, fmt.Errorf("Render: %w", err)
	}
	score.Events = slices.Clone(score.Events)
	score.Sort()
	events := make([]polyvoice.Event, len(score.Events))
	for i, se := range score.Events {
		events[i], _ = se.Event()
	}
	bs := e.cfg.BlockSize
	totalFrames := int(math.Ceil(score.Length() * float64(e.cfg.SampleRate)))
	numBlocks := (totalFrames + bs - 1) / bs
	outputs := make([][]float32, e.numOutputs)
	for c := range outputs {
		outputs[c] = make([]float32, numBlocks*bs)
	}
	blockIn := make([][]float32, e.numInputs)
	for c := range blockIn {
		blockIn[c] = make([]float32, bs)
	}
	blockOut := make([][]float32, e.numOutputs)
	next := 0
	for b := 0; b < numBlocks; b++ {
		start := b * bs
		for next < len(events) && score.Events[next].Frame(e.cfg.SampleRate) < start+bs {
			e.Apply(events[next])
			next++
		}
		for c, in := range inputs {
			n := 0
			if start < len(in) {
				n = copy(blockIn[c], in[start:])
			}
			clear(blockIn[c][n:])
		}
		for c := range blockOut {
			blockOut[c] = outputs[c][start : start+bs]
		}
		e.RenderBlock(blockIn, blockOut)
	}
	for c := range outputs {
		outputs[c] = outputs[c][:totalFrames]
	}
	return outputs, nil
}
