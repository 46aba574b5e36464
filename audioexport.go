package polyvoice

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Wav writes the non-interleaved channels into w as a 16-bit PCM .wav file.
// All channels should have the same length.
func Wav(w io.WriteSeeker, channels [][]float32, sampleRate int) error {
	if len(channels) == 0 {
		return errors.New("Wav: no channels to write")
	}
	enc := wav.NewEncoder(w, sampleRate, 16, len(channels), 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           PCM16(Interleave(nil, channels)),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("Wav failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("Wav failed to finalize the file: %w", err)
	}
	return nil
}

// ReadWav decodes a PCM .wav file into non-interleaved float channels scaled
// to [-1, 1].
func ReadWav(r io.ReadSeeker) (channels [][]float32, sampleRate int, err error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("ReadWav: not a valid .wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("ReadWav: could not decode PCM data: %w", err)
	}
	numChannels := buf.Format.NumChannels
	if numChannels <= 0 {
		return nil, 0, errors.New("ReadWav: file has no channels")
	}
	scale := float32(math.Pow(2, float64(dec.BitDepth)-1))
	frames := len(buf.Data) / numChannels
	channels = make([][]float32, numChannels)
	for c := range channels {
		channels[c] = make([]float32, frames)
		for i := range frames {
			channels[c][i] = float32(buf.Data[i*numChannels+c]) / scale
		}
	}
	return channels, buf.Format.SampleRate, nil
}

// Raw returns the channels interleaved, either as little-endian float32 or as
// 16-bit signed PCM.
func Raw(channels [][]float32, pcm16 bool) ([]byte, error) {
	buf := new(bytes.Buffer)
	data := Interleave(nil, channels)
	var err error
	if pcm16 {
		ints := PCM16(data)
		int16data := make([]int16, len(ints))
		for i, v := range ints {
			int16data[i] = int16(v)
		}
		err = binary.Write(buf, binary.LittleEndian, int16data)
	} else {
		err = binary.Write(buf, binary.LittleEndian, data)
	}
	if err != nil {
		return nil, fmt.Errorf("Raw failed: could not binary write data to binary buffer: %v", err)
	}
	return buf.Bytes(), nil
}

// Interleave appends the frames of the channels to dst, one frame at a time:
// L0 R0 L1 R1 ... The length of the first channel decides the frame count.
func Interleave(dst []float32, channels [][]float32) []float32 {
	if len(channels) == 0 {
		return dst
	}
	for i := range channels[0] {
		for _, ch := range channels {
			dst = append(dst, ch[i])
		}
	}
	return dst
}

// PCM16 converts float samples to 16-bit integer range, clipping values
// outside [-1, 1].
func PCM16(data []float32) []int {
	ret := make([]int, len(data))
	for i, v := range data {
		ret[i] = clamp(int(v*math.MaxInt16), math.MinInt16, math.MaxInt16)
	}
	return ret
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
