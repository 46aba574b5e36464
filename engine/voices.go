package engine

import "github.com/vsariola/polyvoice"

type (
	// Voice is one slot of the voice pool. Slots are created once, when the
	// engine is built, and never move: Index is the position in the pool.
	Voice struct {
		Index int
		State VoiceState
		// Note is the pitch the voice was last allocated for; meaningful only
		// when State is Active or Releasing.
		Note int
		// Date is the value of the allocation clock when the voice was last
		// allocated. Smaller is older.
		Date uint64
		// NeedsTrigger is set by allocation and cleared by the first block
		// rendered after it.
		NeedsTrigger bool
		// Level is the peak absolute sample of the last rendered block.
		Level float32

		unit polyvoice.VoiceUnit
	}

	VoiceState int

	// VoiceManager owns the voice pool and decides which voice plays which
	// note. It is not safe for concurrent use; the Engine only calls it from
	// the render goroutine.
	VoiceManager struct {
		voices []Voice
		clock  uint64
	}
)

const (
	Free VoiceState = iota
	Active
	Releasing
)

// NoVoice is returned instead of a voice index when no voice was found.
const NoVoice = -1

func NewVoiceManager(units []polyvoice.VoiceUnit) *VoiceManager {
	m := &VoiceManager{voices: make([]Voice, len(units))}
	for i, u := range units {
		m.voices[i] = Voice{Index: i, unit: u}
	}
	return m
}

// Allocate picks a voice for the note and returns its index, or NoVoice if the
// pool is empty. A free voice (the lowest index) is preferred, then the oldest
// releasing voice, then the oldest active voice. The picked voice gets the
// next allocation date, becomes Active for the note and needs a trigger.
func (m *VoiceManager) Allocate(note int) int {
	i := m.pick()
	if i == NoVoice {
		return NoVoice
	}
	v := &m.voices[i]
	v.State = Active
	v.Note = note
	v.Date = m.clock
	v.NeedsTrigger = true
	m.clock++
	return i
}

func (m *VoiceManager) pick() int {
	for i := range m.voices {
		if m.voices[i].State == Free {
			return i
		}
	}
	if i := m.oldest(Releasing); i != NoVoice {
		return i
	}
	return m.oldest(Active)
}

func (m *VoiceManager) oldest(state VoiceState) int {
	ret := NoVoice
	for i := range m.voices {
		v := &m.voices[i]
		if v.State == state && (ret == NoVoice || v.Date < m.voices[ret].Date) {
			ret = i
		}
	}
	return ret
}

// FindPlaying returns the oldest voice that is Active for the note, or
// NoVoice. Releasing voices are never returned.
func (m *VoiceManager) FindPlaying(note int) int {
	ret := NoVoice
	for i := range m.voices {
		v := &m.voices[i]
		if v.State == Active && v.Note == note && (ret == NoVoice || v.Date < m.voices[ret].Date) {
			ret = i
		}
	}
	return ret
}

// MarkReleasing moves an Active voice to Releasing, keeping its note. Voices
// in other states are left as they are.
func (m *VoiceManager) MarkReleasing(i int) {
	if v := &m.voices[i]; v.State == Active {
		v.State = Releasing
	}
}

// MarkAllReleasing moves every non-free voice to Releasing.
func (m *VoiceManager) MarkAllReleasing() {
	for i := range m.voices {
		if m.voices[i].State != Free {
			m.voices[i].State = Releasing
		}
	}
}

// ReclaimIfSilent returns a Releasing voice to the pool if level is below
// threshold. It reports whether the voice was freed. This is the only way a
// voice ever becomes Free again.
func (m *VoiceManager) ReclaimIfSilent(i int, level, threshold float32) bool {
	v := &m.voices[i]
	if v.State != Releasing || level >= threshold {
		return false
	}
	v.State = Free
	return true
}

func (m *VoiceManager) Len() int { return len(m.voices) }

// Voice returns a copy of the voice slot i.
func (m *VoiceManager) Voice(i int) Voice { return m.voices[i] }

func (m *VoiceManager) Unit(i int) polyvoice.VoiceUnit { return m.voices[i].unit }

// Clock returns the allocation date the next allocated voice will get.
func (m *VoiceManager) Clock() uint64 { return m.clock }

// Busy returns the number of voices that are not Free.
func (m *VoiceManager) Busy() (ret int) {
	for i := range m.voices {
		if m.voices[i].State != Free {
			ret++
		}
	}
	return
}

func (s VoiceState) String() string {
	switch s {
	case Free:
		return "free"
	case Active:
		return "active"
	case Releasing:
		return "releasing"
	}
	return "unknown"
}
