package polyvoice

import "fmt"

type (
	// VoiceUnit is one instance of a synthesis algorithm. The voice allocation
	// core treats it as a black box: it only sets and reads parameters by
	// their numeric index and asks the unit to compute blocks of audio.
	//
	// Compute renders frames samples into outputs, reading inputs. Both are
	// non-interleaved channel slices of at least frames samples; the unit
	// overwrites outputs[c][:frames] and must not retain the slices.
	VoiceUnit interface {
		SetParam(index int, value float32)
		Param(index int) float32
		Compute(frames int, inputs, outputs [][]float32)
	}

	// UnitFactory creates voice units that all share one Description. All
	// units created by a factory have identical control topology, so the
	// parameter indices in the Description are valid for every unit.
	UnitFactory interface {
		Name() string
		Description() Description
		NewUnit(sampleRate int) (VoiceUnit, error)
	}

	// Clearer is implemented by units that can drop their internal state
	// (delay lines, filter memories, envelope stage) without touching their
	// parameter values.
	Clearer interface {
		Clear()
	}
)

// NewUnits creates count units from the factory, all at the same sample rate.
func NewUnits(factory UnitFactory, count, sampleRate int) ([]VoiceUnit, error) {
	units := make([]VoiceUnit, 0, count)
	for i := 0; i < count; i++ {
		u, err := factory.NewUnit(sampleRate)
		if err != nil {
			return nil, fmt.Errorf("%v: creating voice unit %d failed: %w", factory.Name(), i, err)
		}
		units = append(units, u)
	}
	return units, nil
}
