// Package wavwriter writes interleaved stereo float samples as 16-bit PCM WAV.
package wavwriter

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	headerSize    = 44
	channels      = 2
	bitsPerSample = 16
	blockAlign    = channels * bitsPerSample / 8

	// formatPCM is the WAVE format tag for linear PCM.
	formatPCM = 1

	// maxDataSize keeps the RIFF chunk size within 32 bits.
	maxDataSize = math.MaxUint32 - headerSize
)

// ErrTooLarge is returned when the data chunk would exceed the 4 GiB RIFF limit.
var ErrTooLarge = errors.New("wavwriter: data exceeds 4 GiB WAV limit")

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("wavwriter: writer is closed")

// Writer streams samples through a wav.Encoder, which patches the header
// sizes on Close.
type Writer struct {
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	frames int
	closed bool
}

// New writes a placeholder header to w and returns a Writer.
func New(w io.WriteSeeker, sampleRate int) (*Writer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wavwriter: invalid sample rate %d", sampleRate)
	}

	ww := &Writer{
		enc: wav.NewEncoder(w, sampleRate, bitsPerSample, channels, formatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitsPerSample,
		},
	}

	// An empty buffer makes the encoder emit the RIFF, fmt and data headers
	// up front, so a stream without samples still yields a valid file.
	if err := ww.enc.Write(ww.buf); err != nil {
		return nil, fmt.Errorf("wavwriter: write header: %w", err)
	}
	return ww, nil
}

// WriteSamples appends interleaved left/right samples in [-1, 1].
// Values outside the range are clipped. An odd trailing sample is dropped.
func (w *Writer) WriteSamples(samples []float64) error {
	if w.closed {
		return ErrClosed
	}

	n := len(samples) &^ 1
	if uint64(w.frames+n/channels)*blockAlign > maxDataSize {
		return ErrTooLarge
	}

	if cap(w.buf.Data) < n {
		w.buf.Data = make([]int, n)
	}
	w.buf.Data = w.buf.Data[:n]
	for i := 0; i < n; i++ {
		w.buf.Data[i] = int(toPCM16(samples[i]))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wavwriter: write samples: %w", err)
	}
	w.frames += n / channels
	return nil
}

// Frames returns the number of stereo sample frames written so far.
func (w *Writer) Frames() int {
	return w.frames
}

// Close rewrites the header with the final sizes. It does not close the
// underlying writer. Further calls are no-ops.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: finalize: %w", err)
	}
	return nil
}

func toPCM16(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= 1:
		return math.MaxInt16
	case v <= -1:
		return -math.MaxInt16
	default:
		return int16(math.Round(v * math.MaxInt16))
	}
}
