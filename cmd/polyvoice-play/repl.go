package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/chzyer/readline"
	"github.com/vsariola/polyvoice/cmd"
	"github.com/vsariola/polyvoice/engine"
)

type (
	repl struct {
		poly     *engine.Poly
		midi     cmd.MIDIContext
		out      io.Writer
		monitors atomic.Bool
		quit     bool
	}

	command struct {
		name  string
		usage string
		arity int // minimum number of arguments
		run   func(r *repl, args []string) error
	}
)

var errQueueFull = errors.New("event queue full, event dropped")

var commands []command

func init() {
	commands = []command{
		{"on", "on <note> [velocity] [channel]", 1, (*repl).noteOn},
		{"off", "off <note> [channel]", 1, (*repl).noteOff},
		{"cc", "cc <controller> <value> [channel]", 2, (*repl).controlChange},
		{"bend", "bend <value> [channel]", 1, (*repl).pitchBend},
		{"set", "set <path> <value>", 2, (*repl).set},
		{"get", "get <path>", 1, (*repl).get},
		{"params", "params", 0, (*repl).params},
		{"levels", "levels", 0, (*repl).levels},
		{"monitor", "monitor: toggle printing the monitored outputs", 0, (*repl).toggleMonitor},
		{"panic", "panic: release all notes", 0, (*repl).panic},
		{"reset", "reset: set all parameters to their initial values", 0, (*repl).reset},
		{"clear", "clear: drop the internal state of the voices", 0, (*repl).clearState},
		{"midi", "midi [name prefix]: list MIDI inputs or open one", 0, (*repl).midiInput},
		{"help", "help", 0, (*repl).help},
		{"quit", "quit", 0, func(r *repl, args []string) error { r.quit = true; return nil }},
	}
}

func newREPL(p *engine.Poly, midi cmd.MIDIContext, out io.Writer) *repl {
	return &repl{poly: p, midi: midi, out: out}
}

func (r *repl) run(prompt string) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()
	r.out = rl.Stdout()
	for !r.quit {
		line, err := rl.Readline()
		if err == io.EOF {
			return err
		}
		if err != nil {
			fmt.Fprintln(r.out, err)
			continue
		}
		if err := r.eval(line); err != nil {
			fmt.Fprintln(r.out, err)
		}
	}
	return nil
}

func (r *repl) eval(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	for _, c := range commands {
		if c.name != fields[0] {
			continue
		}
		if len(fields)-1 < c.arity {
			return fmt.Errorf("%s: wrong number of arguments, usage: %s", c.name, c.usage)
		}
		if err := c.run(r, fields[1:]); err != nil {
			return fmt.Errorf("%s error: %w", c.name, err)
		}
		return nil
	}
	return fmt.Errorf("unknown command: %s (try help)", fields[0])
}

// ints parses the arguments; missing optional ones get the defaults.
func ints(args []string, defaults ...int) ([]int, error) {
	ret := make([]int, max(len(args), len(defaults)))
	copy(ret, defaults)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %s", a)
		}
		ret[i] = v
	}
	return ret, nil
}

func posted(ok bool) error {
	if !ok {
		return errQueueFull
	}
	return nil
}

func (r *repl) noteOn(args []string) error {
	v, err := ints(args, 0, 100, 0)
	if err != nil {
		return err
	}
	return posted(r.poly.NoteOn(v[2], v[0], v[1]))
}

func (r *repl) noteOff(args []string) error {
	v, err := ints(args, 0, 0)
	if err != nil {
		return err
	}
	return posted(r.poly.NoteOff(v[1], v[0]))
}

func (r *repl) controlChange(args []string) error {
	v, err := ints(args, 0, 0, 0)
	if err != nil {
		return err
	}
	return posted(r.poly.ControlChange(v[2], v[0], v[1]))
}

func (r *repl) pitchBend(args []string) error {
	v, err := ints(args, 0, 0)
	if err != nil {
		return err
	}
	return posted(r.poly.PitchBend(v[1], v[0]))
}

func (r *repl) set(args []string) error {
	v, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return fmt.Errorf("not a number: %s", args[1])
	}
	if _, ok := r.poly.GetParameter(args[0]); !ok {
		return fmt.Errorf("unknown parameter: %s", args[0])
	}
	return posted(r.poly.SetParameter(args[0], float32(v)))
}

func (r *repl) get(args []string) error {
	v, ok := r.poly.GetParameter(args[0])
	if !ok {
		return fmt.Errorf("unknown parameter: %s", args[0])
	}
	fmt.Fprintf(r.out, "%s = %v\n", args[0], v)
	return nil
}

func (r *repl) params(args []string) error {
	for _, p := range r.poly.Parameters() {
		v, _ := r.poly.GetParameter(p)
		fmt.Fprintf(r.out, "%-32s %v\n", p, v)
	}
	for _, p := range r.poly.Monitored() {
		fmt.Fprintf(r.out, "%-32s (monitored)\n", p)
	}
	return nil
}

func (r *repl) levels(args []string) error {
	for i, l := range r.poly.VoiceLevels(nil) {
		fmt.Fprintf(r.out, "voice %2d: %.4f\n", i, l)
	}
	return nil
}

func (r *repl) toggleMonitor(args []string) error {
	on := !r.monitors.Load()
	r.monitors.Store(on)
	fmt.Fprintf(r.out, "monitor: %v\n", on)
	return nil
}

// monitor is the output monitor handler; it runs on the audio goroutine, so it
// only prints when asked to.
func (r *repl) monitor(path string, value float32) {
	if r.monitors.Load() {
		fmt.Fprintf(r.out, "%s: %.4f\n", path, value)
	}
}

func (r *repl) panic(args []string) error { return posted(r.poly.AllNotesOff()) }
func (r *repl) reset(args []string) error { return posted(r.poly.ResetParameters()) }

func (r *repl) clearState(args []string) error { return posted(r.poly.ClearState()) }

func (r *repl) midiInput(args []string) error {
	if len(args) == 0 {
		for _, name := range r.midi.Inputs() {
			fmt.Fprintln(r.out, name)
		}
		return nil
	}
	return r.midi.TryToOpenBy(strings.Join(args, " "), false)
}

func (r *repl) help(args []string) error {
	for _, c := range commands {
		fmt.Fprintln(r.out, c.usage)
	}
	return nil
}
