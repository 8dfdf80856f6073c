package ports

import (
	"image"
	"time"
)

// Engine abstracts one MPEG-1 demux/decode engine instance bound to a single stream.
// Implementations are single-threaded and not reentrant; callers serialize access.
type Engine interface {
	// SetVideoEnabled toggles video decoding.
	SetVideoEnabled(enabled bool)

	// SetAudioEnabled toggles audio decoding.
	SetAudioEnabled(enabled bool)

	// SetAudioStream selects which audio stream (0-3) is decoded.
	SetAudioStream(index int)

	// Width returns the display width of the video stream, 0 without video.
	Width() int

	// Height returns the display height of the video stream, 0 without video.
	Height() int

	// NumVideoStreams returns the number of video streams reported in the system header.
	NumVideoStreams() int

	// NumAudioStreams returns the number of audio streams reported in the system header.
	NumAudioStreams() int

	// Framerate returns the video frame rate in frames per second.
	Framerate() float64

	// Samplerate returns the audio sample rate in samples per second.
	Samplerate() int

	// Time returns the current decode position.
	Time() time.Duration

	// Duration returns the total stream duration.
	Duration() time.Duration

	// DecodeVideo decodes the next video frame.
	// Returns nil at end of stream or when video decoding is disabled.
	// The returned image is only valid until the next call.
	DecodeVideo() image.Image

	// DecodeAudio decodes the next block of interleaved stereo samples.
	// Returns nil at end of stream or when audio decoding is disabled.
	// The returned slice is only valid until the next call.
	DecodeAudio() []float32

	// SamplesPerBlock returns the fixed per-channel sample count of one audio block.
	SamplesPerBlock() int

	// Seek moves the decode position to t. When exact is false the engine lands on the
	// nearest prior intra frame. Returns false if no seek target was found.
	Seek(t time.Duration, exact bool) bool

	// Close destroys the engine and releases its input.
	Close() error
}

// EngineOpener creates engines from file paths.
type EngineOpener interface {
	// Open creates an engine reading the file at path.
	Open(path string) (Engine, error)
}
