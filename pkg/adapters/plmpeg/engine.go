// Package plmpeg adapts github.com/gen2brain/mpeg, a pure Go port of pl_mpeg,
// to the ports.Engine interface.
package plmpeg

import (
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/gen2brain/mpeg"

	"github.com/user/mpegctx/pkg/adapters/containerdetect"
	"github.com/user/mpegctx/pkg/ports"
)

var (
	// ErrNotProgramStream is returned when the file is readable but is not an MPEG-1 program stream.
	ErrNotProgramStream = errors.New("plmpeg: not an MPEG-1 program stream")
)

// Opener implements ports.EngineOpener for files on disk.
type Opener struct{}

// New creates a new Opener.
func New() *Opener {
	return &Opener{}
}

// Open opens path and creates an engine over it.
// The file stays open until the engine is closed; seeking re-reads it.
func (o *Opener) Open(path string) (ports.Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	m, err := mpeg.New(f)
	if err != nil {
		f.Close()
		if errors.Is(err, mpeg.ErrInvalidMPEG) {
			return nil, describeRejected(path)
		}
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	// Interleaved, normalized float32 samples land in Samples.Interleaved.
	m.SetAudioFormat(mpeg.AudioF32N)

	// The demuxer finds the duration by scanning to the last packet, which
	// leaves it at the end of the file.
	duration := m.Duration()
	m.Rewind()

	return &Engine{mpeg: m, file: f, duration: duration}, nil
}

// describeRejected explains why a readable file was rejected.
func describeRejected(path string) error {
	result, err := containerdetect.DetectFromFile(path)
	if err != nil {
		return ErrNotProgramStream
	}
	return fmt.Errorf("%w: found %s", ErrNotProgramStream, result)
}

// Engine wraps *mpeg.MPEG.
type Engine struct {
	mpeg     *mpeg.MPEG
	file     *os.File
	duration time.Duration
}

// SetVideoEnabled toggles video decoding.
func (e *Engine) SetVideoEnabled(enabled bool) {
	e.mpeg.SetVideoEnabled(enabled)
}

// SetAudioEnabled toggles audio decoding.
func (e *Engine) SetAudioEnabled(enabled bool) {
	e.mpeg.SetAudioEnabled(enabled)
}

// SetAudioStream selects the audio stream. Out of range indices are ignored by the engine.
func (e *Engine) SetAudioStream(index int) {
	e.mpeg.SetAudioStream(index)
}

func (e *Engine) Width() int           { return e.mpeg.Width() }
func (e *Engine) Height() int          { return e.mpeg.Height() }
func (e *Engine) NumVideoStreams() int { return e.mpeg.NumVideoStreams() }
func (e *Engine) NumAudioStreams() int { return e.mpeg.NumAudioStreams() }
func (e *Engine) Framerate() float64   { return e.mpeg.Framerate() }
func (e *Engine) Samplerate() int      { return e.mpeg.Samplerate() }

// Time returns the current decode position.
func (e *Engine) Time() time.Duration {
	return e.mpeg.Time()
}

// Duration returns the duration of the video track, measured once at open.
func (e *Engine) Duration() time.Duration {
	return e.duration
}

// DecodeVideo decodes the next frame as *image.YCbCr.
func (e *Engine) DecodeVideo() image.Image {
	e.drainDone()

	frame := e.mpeg.DecodeVideo()
	if frame == nil {
		return nil
	}
	return frame.YCbCr()
}

// DecodeAudio decodes the next block of interleaved stereo samples.
// Mono streams are duplicated into both channels by the engine.
func (e *Engine) DecodeAudio() []float32 {
	e.drainDone()

	samples := e.mpeg.DecodeAudio()
	if samples == nil {
		return nil
	}
	return samples.Interleaved
}

// SamplesPerBlock returns the MPEG-1 layer II frame size.
func (e *Engine) SamplesPerBlock() int {
	return mpeg.SamplesPerFrame
}

// Seek seeks to t, clamped by the engine to [0, duration].
func (e *Engine) Seek(t time.Duration, exact bool) bool {
	e.drainDone()
	return e.mpeg.Seek(t, exact)
}

// Close releases the underlying file.
func (e *Engine) Close() error {
	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	e.mpeg = nil
	return err
}

// drainDone empties the engine's end-of-stream channel. The engine sends on it
// each time a decode hits the end, and the channel holds a single value.
func (e *Engine) drainDone() {
	select {
	case <-e.mpeg.Done():
	default:
	}
}

// Ensure Engine implements ports.Engine
var _ ports.Engine = (*Engine)(nil)

// Ensure Opener implements ports.EngineOpener
var _ ports.EngineOpener = (*Opener)(nil)
