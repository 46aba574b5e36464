//go:build plugin

package main

import (
	"context"
	"log"
	"os"

	"github.com/vsariola/polyvoice"
	"github.com/vsariola/polyvoice/cmd"
	"github.com/vsariola/polyvoice/engine"
	"github.com/vsariola/polyvoice/gomidi"
	"gitlab.com/gomidi/midi/v2"
	"pipelined.dev/audio/vst2"
)

const (
	pluginName   = "Polyvoice"
	pluginVendor = "vsariola/polyvoice"
)

var pluginID = [4]byte{'P', 'v', 'o', 'x'}

func init() {
	var (
		version = int32(100)
	)
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		logger := log.New(os.Stderr, "polyvoice-vsti: ", log.LstdFlags)
		cfg := polyvoice.DefaultConfig()
		poly, err := cmd.NewPoly(cfg, cmd.DefaultVoice)
		if err != nil {
			logger.Fatal(err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		go engine.LogDiagnostics(ctx, poly.Broker(), logger)
		adapter := cmd.NewBlockAdapter(poly)
		outputs := make([][]float32, poly.NumOutputs())
		return vst2.Plugin{
				UniqueID:       pluginID,
				Version:        version,
				InputChannels:  0,
				OutputChannels: poly.NumOutputs(),
				Name:           pluginName,
				Vendor:         pluginVendor,
				Category:       vst2.PluginCategorySynth,
				Flags:          vst2.PluginIsSynth,
				ProcessFloatFunc: func(in, out vst2.FloatBuffer) {
					for i := range outputs {
						outputs[i] = out.Channel(i)
					}
					adapter.Process(outputs, out.Frames)
				},
			}, vst2.Dispatcher{
				CanDoFunc: func(pcds vst2.PluginCanDoString) vst2.CanDoResponse {
					switch pcds {
					case vst2.PluginCanReceiveEvents, vst2.PluginCanReceiveMIDIEvent:
						return vst2.YesCanDo
					}
					return vst2.NoCanDo
				},
				ProcessEventsFunc: func(ev *vst2.EventsPtr) {
					for i := 0; i < ev.NumEvents(); i++ {
						switch v := ev.Event(i).(type) {
						case *vst2.MIDIEvent:
							if e, ok := gomidi.Translate(midi.Message(v.Data[:])); ok && !poly.Post(e) {
								logger.Printf("event queue full, dropped %v", e)
							}
						}
					}
				},
				CloseFunc: func() {
					cancel()
					<-poly.Broker().Finished
				},
				GetChunkFunc: func(isPreset bool) []byte {
					b, err := cmd.MarshalParameters(poly)
					if err != nil {
						logger.Print(err)
						return nil
					}
					return b
				},
				SetChunkFunc: func(data []byte, isPreset bool) {
					if err := cmd.UnmarshalParameters(poly, data); err != nil {
						logger.Print(err)
					}
				},
			}
	}
}

func main() {}
