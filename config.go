package polyvoice

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config fixes the render and polyphony parameters of an engine. All of them
// are set once, before the first block is rendered, and never change
// afterwards.
type Config struct {
	SampleRate int
	BlockSize  int // frames per rendered block

	// Inputs and Outputs are the number of host audio channels. Zero means
	// "use the number of channels of the voice description".
	Inputs  int `yaml:",omitempty"`
	Outputs int `yaml:",omitempty"`

	MaxPolyphony int `yaml:"polyphony"`

	// SilenceThreshold is the block peak level below which a releasing voice
	// is returned to the pool.
	SilenceThreshold float32

	// MonitorInterval is the number of blocks between two polls of the
	// monitored outputs.
	MonitorInterval int

	// TriggerPreroll is the number of frames computed with the gate off
	// before a retriggered voice renders its block with the gate on.
	TriggerPreroll int

	// QueueSize is the capacity of the control event queue; a power of two.
	QueueSize int

	// FreqSuffix, GainSuffix and GateSuffix pick the inputs written on note
	// on and note off by address suffix. When several inputs end with the
	// same suffix, the first one in description order is used.
	FreqSuffix string `yaml:",omitempty"`
	GainSuffix string `yaml:",omitempty"`
	GateSuffix string `yaml:",omitempty"`
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		SampleRate:       44100,
		BlockSize:        256,
		MaxPolyphony:     16,
		SilenceThreshold: 0.001,
		MonitorInterval:  5,
		TriggerPreroll:   1,
		QueueSize:        1024,
		FreqSuffix:       "/freq",
		GainSuffix:       "/gain",
		GateSuffix:       "/gate",
	}
}

// LoadConfig reads a YAML configuration; keys missing from the document keep
// their DefaultConfig values.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("could not parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks every field and reports all the problems found at once.
func (c *Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate should be > 0, was %d", c.SampleRate))
	}
	if c.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("block size should be > 0, was %d", c.BlockSize))
	}
	if c.Inputs < 0 || c.Outputs < 0 {
		errs = append(errs, fmt.Errorf("channel counts cannot be negative (inputs %d, outputs %d)", c.Inputs, c.Outputs))
	}
	if c.MaxPolyphony < 0 {
		errs = append(errs, fmt.Errorf("polyphony cannot be negative, was %d", c.MaxPolyphony))
	}
	if c.SilenceThreshold < 0 {
		errs = append(errs, fmt.Errorf("silence threshold cannot be negative, was %v", c.SilenceThreshold))
	}
	if c.MonitorInterval < 1 {
		errs = append(errs, fmt.Errorf("monitor interval should be >= 1 block, was %d", c.MonitorInterval))
	}
	if c.TriggerPreroll < 0 || c.TriggerPreroll > c.BlockSize {
		errs = append(errs, fmt.Errorf("trigger preroll should be within [0, %d], was %d", c.BlockSize, c.TriggerPreroll))
	}
	if c.QueueSize <= 0 || c.QueueSize&(c.QueueSize-1) != 0 {
		errs = append(errs, fmt.Errorf("queue size should be a power of two, was %d", c.QueueSize))
	}
	return errors.Join(errs...)
}
