package synth

type envelopeState int

const (
	envIdle envelopeState = iota
	envAttack
	envDecay
	envSustain
	envRelease
)

// envelope is a linear ADSR envelope. Times are in seconds.
type envelope struct {
	sustain     float32
	attackRate  float32
	decayRate   float32
	releaseRate float32
	val         float32
	state       envelopeState
}

// rate returns the per-sample step that covers distance in seconds.
func rate(distance, seconds float32, sampleRate float64) float32 {
	if samples := float32(float64(seconds) * sampleRate); samples > 1 {
		return distance / samples
	}
	return distance
}

// startAttack rises from the current value, so retriggering a sounding voice
// does not click.
func (e *envelope) startAttack(attack, decay, sustain float32, sampleRate float64) {
	e.sustain = min(max(sustain, 0), 1)
	e.attackRate = rate(1, attack, sampleRate)
	e.decayRate = rate(1-e.sustain, decay, sampleRate)
	e.state = envAttack
}

func (e *envelope) startRelease(release float32, sampleRate float64) {
	if e.state == envIdle {
		return
	}
	e.releaseRate = rate(e.val, release, sampleRate)
	e.state = envRelease
}

func (e *envelope) next() float32 {
	switch e.state {
	case envAttack:
		e.val += e.attackRate
		if e.val >= 1 {
			e.val = 1
			e.state = envDecay
		}
	case envDecay:
		e.val -= e.decayRate
		if e.val <= e.sustain {
			e.val = e.sustain
			e.state = envSustain
		}
	case envRelease:
		e.val -= e.releaseRate
		if e.val <= 0 || e.releaseRate <= 0 {
			e.val = 0
			e.state = envIdle
		}
	}
	return e.val
}

func (e *envelope) process(buf []float32) {
	for i := range buf {
		buf[i] = e.next()
	}
}
