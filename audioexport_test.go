package polyvoice_test

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/polyvoice"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestWavRoundTrip(t *testing.T) {
	channels := [][]float32{
		{0, 0.5, -0.5, 0.25, 1, -1},
		{0.1, 0.2, 0.3, -0.3, -0.2, 2},
	}
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, polyvoice.Wav(f, channels, 22050))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, rate, err := polyvoice.ReadWav(f)
	require.NoError(t, err)
	assert.Equal(t, 22050, rate)
	require.Len(t, got, 2)
	for c := range channels {
		require.Len(t, got[c], len(channels[c]))
		for i, want := range channels[c] {
			want = max(-1, min(1, want)) // clipped on export
			if !scalar.EqualWithinAbs(float64(got[c][i]), float64(want), 1e-3) {
				t.Errorf("channel %d sample %d: got %v, want %v", c, i, got[c][i], want)
			}
		}
	}
}

func TestWavNoChannels(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "empty.wav"))
	require.NoError(t, err)
	defer f.Close()
	assert.Error(t, polyvoice.Wav(f, nil, 44100))
}

func TestRaw(t *testing.T) {
	channels := [][]float32{{0.5, 1}, {-0.5, 2}}
	b, err := polyvoice.Raw(channels, false)
	require.NoError(t, err)
	require.Len(t, b, 16)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(b[0:])))
	assert.Equal(t, float32(-0.5), math.Float32frombits(binary.LittleEndian.Uint32(b[4:])))
	b, err = polyvoice.Raw(channels, true)
	require.NoError(t, err)
	require.Len(t, b, 8)
	assert.Equal(t, int16(math.MaxInt16), int16(binary.LittleEndian.Uint16(b[6:])), "clipped")
}

func TestInterleave(t *testing.T) {
	got := polyvoice.Interleave(nil, [][]float32{{1, 2, 3}, {4, 5, 6}})
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, got)
	assert.Empty(t, polyvoice.Interleave(nil, nil))
}
