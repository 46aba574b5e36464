package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/cmd"
	"github.com/vsariola/polyvoice/engine"
	"github.com/vsariola/polyvoice/version"
)

func main() {
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the working directory.")
	configFile := flag.String("config", "", "Read the engine configuration from a YAML file.")
	voice := flag.String("voice", cmd.DefaultVoice, "Voice unit to render with.")
	inputFile := flag.String("i", "", "Feed the channels of this .wav file to the voice inputs.")
	rawOut := flag.Bool("r", false, "Output the rendered score as .raw file. By default, saves float32 samples.")
	wavOut := flag.Bool("w", false, "Output the rendered score as .wav file (default when no other output is given).")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting .raw.")
	tail := flag.Float64("tail", -1, "Seconds rendered after the last event; negative uses the tail of the score.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*wavOut {
		*wavOut = true
	}
	cfg, err := cmd.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var inputs [][]float32
	if *inputFile != "" {
		inputs, err = readInputs(*inputFile, cfg.SampleRate)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	process := func(filename string) error {
		f, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("could not read file %v: %v", filename, err)
		}
		score, err := polyvoice.ReadScore(f)
		f.Close()
		if err != nil {
			return err
		}
		if *tail >= 0 {
			score.Tail = *tail
		}
		poly, err := cmd.NewPoly(cfg, *voice)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go engine.LogDiagnostics(ctx, poly.Broker(), log.New(os.Stderr, filepath.Base(filename)+": ", 0))
		e := poly.Engine()
		in := inputs
		if e.NumInputs() == 0 {
			in = nil
		} else if len(in) != e.NumInputs() {
			return fmt.Errorf("voice %v has %d inputs but %d input channels were given", *voice, e.NumInputs(), len(in))
		}
		channels, err := engine.Render(e, score, in)
		if err != nil {
			return err
		}
		name, err := outputName(filename, *directory)
		if err != nil {
			return err
		}
		if *rawOut {
			raw, err := polyvoice.Raw(channels, *pcm)
			if err != nil {
				return fmt.Errorf("could not generate .raw file: %v", err)
			}
			if err := os.WriteFile(name+".raw", raw, 0644); err != nil {
				return fmt.Errorf("could not write file %v: %v", name+".raw", err)
			}
		}
		if *wavOut {
			out, err := os.Create(name + ".wav")
			if err != nil {
				return fmt.Errorf("could not create file %v: %v", name+".wav", err)
			}
			defer out.Close()
			if err := polyvoice.Wav(out, channels, cfg.SampleRate); err != nil {
				return fmt.Errorf("error outputting .wav file: %v", err)
			}
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		if err := process(param); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", param, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

// outputName returns the path of the output without its extension, creating
// the output directory if needed.
func outputName(filename, directory string) (string, error) {
	dir := directory
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
		}
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("could not create output directory %v: %v", dir, err)
	}
	_, name := filepath.Split(filename)
	return filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))), nil
}

func readInputs(filename string, sampleRate int) ([][]float32, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open input %v: %v", filename, err)
	}
	defer f.Close()
	channels, rate, err := polyvoice.ReadWav(f)
	if err != nil {
		return nil, err
	}
	if rate != sampleRate {
		return nil, fmt.Errorf("input %v has sample rate %d, engine runs at %d", filename, rate, sampleRate)
	}
	return channels, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Renders .yml scores of timed note events to .wav or .raw files.\nUsage: %s [flags] [score ...]\n", os.Args[0])
	flag.PrintDefaults()
}
