package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/engine"
	"github.com/vsariola/polyvoice/synth"
)

// Factories lists the voice units the command line tools can play, by name.
var Factories = map[string]polyvoice.UnitFactory{
	synth.Factory{}.Name(): synth.Factory{},
}

const DefaultVoice = "synth"

func FactoryNames() []string {
	ret := make([]string, 0, len(Factories))
	for name := range Factories {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}

// LoadConfig reads the YAML configuration at path; an empty path gives the
// default configuration.
func LoadConfig(path string) (polyvoice.Config, error) {
	if path == "" {
		return polyvoice.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return polyvoice.Config{}, fmt.Errorf("could not open config: %w", err)
	}
	defer f.Close()
	return polyvoice.LoadConfig(f)
}

// NewPoly builds an engine playing the named voice.
func NewPoly(cfg polyvoice.Config, voice string) (*engine.Poly, error) {
	factory, ok := Factories[voice]
	if !ok {
		return nil, fmt.Errorf("unknown voice %q, available voices: %v", voice, FactoryNames())
	}
	p, err := engine.NewPolyFromFactory(cfg, factory)
	if err != nil {
		return nil, fmt.Errorf("could not create engine for voice %q: %w", voice, err)
	}
	return p, nil
}
