package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/polyvoice/engine"
)

func TestArenaChannelsDoNotOverlap(t *testing.T) {
	a, err := engine.NewArena(8, 2, 3)
	require.NoError(t, err)
	var all [][]float32
	all = append(all, a.Inputs()...)
	all = append(all, a.Master()...)
	all = append(all, a.Mixing()...)
	require.Len(t, all, 8)
	for i, ch := range all {
		require.Len(t, ch, 8)
		for j := range ch {
			ch[j] = float32(i)
		}
	}
	for i, ch := range all {
		for _, v := range ch {
			assert.Equal(t, float32(i), v)
		}
		assert.Equal(t, 8, cap(ch), "appending to a channel must not spill into the next one")
	}
}

func TestArenaInvalidDimensions(t *testing.T) {
	_, err := engine.NewArena(0, 1, 1)
	assert.Error(t, err)
	_, err = engine.NewArena(16, -1, 1)
	assert.Error(t, err)
}
