package engine

import "github.com/viterin/vek/vek32"

// Clear silences the first frames samples of every master channel.
func Clear(master [][]float32, frames int) {
	for _, ch := range master {
		clear(ch[:frames])
	}
}

// MixVoice adds the first frames samples of the first channels channels of
// voice into master and returns the largest absolute sample value found in
// the voice block. The voice block is not modified.
func MixVoice(frames, channels int, voice, master [][]float32) float32 {
	var peak float32
	if frames <= 0 {
		return 0
	}
	for c := 0; c < channels; c++ {
		v := voice[c][:frames]
		vek32.Add_Inplace(master[c][:frames], v)
		peak = max(peak, vek32.Max(v), -vek32.Min(v))
	}
	return peak
}
