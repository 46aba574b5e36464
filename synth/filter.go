package synth

import "math"

// biquad is a second order filter in transposed direct form II.
// Coefficients are normalized so that a0 = 1.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	z1, z2             float64

	freq, q float64 // parameters of the current coefficients
}

// lowpass sets the coefficients to the lowpass of the audio EQ cookbook
// (https://www.w3.org/2011/audio/audio-eq-cookbook.html). Coefficients are
// only recalculated when the parameters change.
func (f *biquad) lowpass(freq, q, sampleRate float64) {
	freq = min(max(freq, 10), sampleRate*0.49)
	q = max(q, 0.1)
	if freq == f.freq && q == f.q {
		return
	}
	f.freq, f.q = freq, q
	w := 2 * math.Pi * freq / sampleRate
	sin, cos := math.Sincos(w)
	alpha := sin / (2 * q)
	a0 := 1 + alpha
	f.b0 = (1 - cos) / 2 / a0
	f.b1 = (1 - cos) / a0
	f.b2 = f.b0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) process(buf []float32) {
	for i, v := range buf {
		in := float64(v)
		out := f.b0*in + f.z1
		f.z1 = f.b1*in - f.a1*out + f.z2
		f.z2 = f.b2*in - f.a2*out
		buf[i] = float32(out)
	}
}

func (f *biquad) clear() {
	f.z1, f.z2 = 0, 0
}
