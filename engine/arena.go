package engine

import "fmt"

// Arena is one contiguous block of samples, allocated once, holding the input
// channels, the master output channels and the mixing channels that a voice
// renders into before being added to the master. Channels are addressed by
// index and never overlap.
type Arena struct {
	data      []float32
	blockSize int
	inputs    [][]float32
	master    [][]float32
	mixing    [][]float32
}

// NewArena allocates an arena for blocks of blockSize frames. The voice
// mixing channels have the same count as the master channels.
func NewArena(blockSize, numInputs, numOutputs int) (*Arena, error) {
	if blockSize <= 0 || numInputs < 0 || numOutputs < 0 {
		return nil, fmt.Errorf("NewArena: invalid dimensions (block size %d, inputs %d, outputs %d)", blockSize, numInputs, numOutputs)
	}
	a := &Arena{
		data:      make([]float32, blockSize*(numInputs+2*numOutputs)),
		blockSize: blockSize,
	}
	offset := 0
	take := func(n int) [][]float32 {
		ret := make([][]float32, n)
		for i := range ret {
			ret[i] = a.data[offset : offset+blockSize : offset+blockSize]
			offset += blockSize
		}
		return ret
	}
	a.inputs = take(numInputs)
	a.master = take(numOutputs)
	a.mixing = take(numOutputs)
	return a, nil
}

func (a *Arena) BlockSize() int      { return a.blockSize }
func (a *Arena) Inputs() [][]float32 { return a.inputs }
func (a *Arena) Master() [][]float32 { return a.master }
func (a *Arena) Mixing() [][]float32 { return a.mixing }
