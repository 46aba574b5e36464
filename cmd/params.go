package cmd

import (
	"fmt"

	"github.com/vsariola/polyvoice/engine"
	"gopkg.in/yaml.v3"
)

// MarshalParameters saves the current values of every controllable parameter
// as a YAML mapping from address to value.
func MarshalParameters(p *engine.Poly) ([]byte, error) {
	values := make(map[string]float32)
	for _, path := range p.Parameters() {
		if v, ok := p.GetParameter(path); ok {
			values[path] = v
		}
	}
	b, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("could not marshal parameters: %w", err)
	}
	return b, nil
}

// UnmarshalParameters queues a parameter write for every value in the YAML
// mapping. Addresses the voice does not have are ignored.
func UnmarshalParameters(p *engine.Poly, data []byte) error {
	var values map[string]float32
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("could not unmarshal parameters: %w", err)
	}
	for path, v := range values {
		if !p.SetParameter(path, v) {
			return fmt.Errorf("could not set %v: event queue full", path)
		}
	}
	return nil
}
