package polyvoice

type (
	// Renderer is anything that renders fixed size blocks of non-interleaved
	// audio. The host calls RenderBlock once per cycle with exactly
	// BlockSize() frames in every channel.
	Renderer interface {
		RenderBlock(inputs, outputs [][]float32)
		BlockSize() int
		NumInputs() int
		NumOutputs() int
	}

	// AudioContext is a host audio backend that can drive a Renderer
	// periodically, e.g. from the callback of the sound card.
	AudioContext interface {
		Play(r Renderer) (CloserWaiter, error)
		Close() error
	}

	// CloserWaiter is returned by AudioContext.Play. Close stops the playback;
	// Wait blocks until the playback has stopped.
	CloserWaiter interface {
		Close() error
		Wait()
	}
)
