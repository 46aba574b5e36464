package synth

import "math"

// oscillator keeps its phase in [0, 1).
type oscillator struct {
	phase float64
}

func (o *oscillator) process(buf []float32, wave int, delta float64) {
	for i := range buf {
		var v float64
		switch wave {
		case Square:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case Sine:
			v = math.Sin(2 * math.Pi * o.phase)
		default:
			v = 2*o.phase - 1
		}
		buf[i] = float32(v)
		o.phase += delta
		o.phase -= math.Floor(o.phase)
	}
}
