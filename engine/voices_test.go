package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/polyvoice/engine"
)

func newVoiceManager(n int) *engine.VoiceManager {
	units, _ := fakeUnits(n)
	return engine.NewVoiceManager(units)
}

func TestAllocatePrefersLowestFreeVoice(t *testing.T) {
	m := newVoiceManager(4)
	assert.Equal(t, 0, m.Allocate(60))
	assert.Equal(t, 1, m.Allocate(62))
	assert.Equal(t, 2, m.Allocate(64))
	v := m.Voice(1)
	assert.Equal(t, engine.Active, v.State)
	assert.Equal(t, 62, v.Note)
	assert.True(t, v.NeedsTrigger)
	assert.Equal(t, 3, m.Busy())
}

func TestAllocateStealsOldestActive(t *testing.T) {
	m := newVoiceManager(2)
	require.Equal(t, 0, m.Allocate(60))
	require.Equal(t, 1, m.Allocate(64))
	assert.Equal(t, 0, m.Allocate(67))
	v := m.Voice(0)
	assert.Equal(t, engine.Active, v.State)
	assert.Equal(t, 67, v.Note)
	assert.Equal(t, engine.NoVoice, m.FindPlaying(60))
	assert.Equal(t, 1, m.Allocate(72), "voice 1 is now the oldest")
}

func TestAllocatePrefersReleasingOverActive(t *testing.T) {
	m := newVoiceManager(3)
	m.Allocate(60)
	m.Allocate(62)
	m.Allocate(64)
	m.MarkReleasing(2)
	m.MarkReleasing(1)
	// voice 1 was allocated before voice 2, so it is the oldest releasing one
	assert.Equal(t, 1, m.Allocate(65))
	assert.Equal(t, 2, m.Allocate(67))
	assert.Equal(t, 0, m.Allocate(69))
}

func TestAllocateEmptyPool(t *testing.T) {
	m := newVoiceManager(0)
	assert.Equal(t, engine.NoVoice, m.Allocate(60))
	assert.Equal(t, uint64(0), m.Clock())
	assert.Equal(t, engine.NoVoice, m.FindPlaying(60))
}

func TestAllocationClockIsStrictlyIncreasing(t *testing.T) {
	m := newVoiceManager(3)
	var last uint64
	for i := 0; i < 20; i++ {
		v := m.Allocate(60 + i)
		date := m.Voice(v).Date
		if i > 0 {
			assert.Greater(t, date, last)
		}
		last = date
		if i%2 == 0 {
			m.MarkReleasing(v)
		}
	}
	assert.Equal(t, uint64(20), m.Clock())
}

func TestFindPlayingReturnsOldestActive(t *testing.T) {
	m := newVoiceManager(4)
	m.Allocate(50)
	m.Allocate(60)
	m.Allocate(60)
	assert.Equal(t, 1, m.FindPlaying(60))
	m.MarkReleasing(1)
	assert.Equal(t, 2, m.FindPlaying(60), "releasing voices are not playing")
	m.MarkReleasing(2)
	assert.Equal(t, engine.NoVoice, m.FindPlaying(60))
}

func TestMarkReleasing(t *testing.T) {
	m := newVoiceManager(2)
	m.MarkReleasing(0)
	assert.Equal(t, engine.Free, m.Voice(0).State, "a free voice stays free")
	m.Allocate(60)
	m.MarkReleasing(0)
	assert.Equal(t, engine.Releasing, m.Voice(0).State)
	assert.Equal(t, 60, m.Voice(0).Note)
	m.MarkReleasing(0)
	assert.Equal(t, engine.Releasing, m.Voice(0).State)
}

func TestMarkAllReleasing(t *testing.T) {
	m := newVoiceManager(4)
	m.Allocate(60)
	m.Allocate(62)
	m.MarkReleasing(1)
	m.MarkAllReleasing()
	assert.Equal(t, engine.Releasing, m.Voice(0).State)
	assert.Equal(t, engine.Releasing, m.Voice(1).State)
	assert.Equal(t, engine.Free, m.Voice(2).State)
	assert.Equal(t, engine.Free, m.Voice(3).State)
}

func TestReclaimIfSilent(t *testing.T) {
	m := newVoiceManager(2)
	m.Allocate(60)
	assert.False(t, m.ReclaimIfSilent(0, 0, 0.001), "active voices are never reclaimed")
	m.MarkReleasing(0)
	assert.False(t, m.ReclaimIfSilent(0, 0.001, 0.001), "level equal to the threshold is not silent")
	assert.True(t, m.ReclaimIfSilent(0, 0.0009, 0.001))
	assert.Equal(t, engine.Free, m.Voice(0).State)
	assert.False(t, m.ReclaimIfSilent(1, 0, 0.001), "free voices stay free")
}
