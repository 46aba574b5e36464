package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/vsariola/polyvoice/cmd"
	"github.com/vsariola/polyvoice/engine"
	"github.com/vsariola/polyvoice/version"
)

var (
	cpuprofile       = flag.String("cpuprofile", "", "write cpu profile to `file`")
	configFile       = flag.String("config", "", "read the engine configuration from a YAML `file`")
	voice            = flag.String("voice", cmd.DefaultVoice, "voice unit to play")
	backend          = flag.String("backend", "oto", "audio backend: oto or portaudio")
	pcm              = flag.Bool("pcm", false, "send 16-bit PCM instead of float32 to oto")
	defaultMidiInput = flag.String("midi-input", "", "connect MIDI input to matching device name prefix")
	firstMidiInput   = flag.Bool("midi-first", false, "connect the first MIDI input found")
	versionFlag      = flag.Bool("v", false, "Print version.")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := cmd.LoadConfig(*configFile)
	if err != nil {
		return err
	}
	poly, err := cmd.NewPoly(cfg, *voice)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.LogDiagnostics(ctx, poly.Broker(), log.Default())

	audioContext, err := cmd.NewAudioContext(*backend, poly.SampleRate(), poly.NumOutputs(), *pcm)
	if err != nil {
		return fmt.Errorf("could not acquire %v audio context: %w", *backend, err)
	}
	defer audioContext.Close()
	playback, err := audioContext.Play(poly)
	if err != nil {
		return fmt.Errorf("could not start playback: %w", err)
	}
	defer playback.Close()

	midiContext := cmd.NewMIDIContext(poly)
	defer midiContext.Close()
	if err := midiContext.TryToOpenBy(*defaultMidiInput, *firstMidiInput); err != nil {
		log.Printf("MIDI input: %v", err)
	}

	r := newREPL(poly, midiContext, os.Stdout)
	poly.SetOutputMonitorHandler(r.monitor)
	if err := r.run("polyvoice> "); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Realtime player for polyvoice voices, played from MIDI input or the command prompt.\nUsage: %s [flags]\n", os.Args[0])
	flag.PrintDefaults()
}
