package mocks

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/user/mpegctx/pkg/ports"
)

// SeekCall records a call to Engine.Seek.
type SeekCall struct {
	Time  time.Duration
	Exact bool
}

// Engine is a scripted implementation of ports.Engine.
// It yields Frames video frames and Blocks audio blocks, then reports end of stream.
type Engine struct {
	W, H          int
	FrameW        int // decoded frame width, defaults to W
	FrameH        int // decoded frame height, defaults to H
	VideoStreams  int
	AudioStreams  int
	FPS           float64
	SampleRate    int
	DurationValue time.Duration
	Frames        int
	Blocks        int
	BlockSamples  int
	KeyInterval   int // intra frame spacing used by inexact seeks, defaults to 1

	SeekFunc func(t time.Duration, exact bool) bool
	CloseErr error

	// Recorded state for verification
	VideoEnabled bool
	AudioEnabled bool
	AudioStream  int
	SeekCalls    []SeekCall
	VideoCalls   int
	AudioCalls   int

	mu         sync.Mutex
	videoPos   int
	audioPos   int
	now        time.Duration
	closeCount atomic.Int32
}

// NewEngine returns a 320x240, 10 fps, 2 second stream with 20 frames and one audio track.
func NewEngine() *Engine {
	return &Engine{
		W:             320,
		H:             240,
		VideoStreams:  1,
		AudioStreams:  1,
		FPS:           10,
		SampleRate:    44100,
		DurationValue: 2 * time.Second,
		Frames:        20,
		Blocks:        77,
		BlockSamples:  1152,
		VideoEnabled:  true,
		AudioEnabled:  true,
	}
}

func (m *Engine) SetVideoEnabled(enabled bool) { m.VideoEnabled = enabled }
func (m *Engine) SetAudioEnabled(enabled bool) { m.AudioEnabled = enabled }
func (m *Engine) SetAudioStream(index int)     { m.AudioStream = index }
func (m *Engine) Width() int                   { return m.W }
func (m *Engine) Height() int                  { return m.H }
func (m *Engine) NumVideoStreams() int         { return m.VideoStreams }
func (m *Engine) NumAudioStreams() int         { return m.AudioStreams }
func (m *Engine) Framerate() float64           { return m.FPS }
func (m *Engine) Samplerate() int              { return m.SampleRate }
func (m *Engine) Duration() time.Duration      { return m.DurationValue }

func (m *Engine) Time() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// DecodeVideo returns a uniformly grey YCbCr frame whose luma equals the frame index.
func (m *Engine) DecodeVideo() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.VideoCalls++
	if !m.VideoEnabled || m.videoPos >= m.Frames {
		return nil
	}

	w, h := m.FrameW, m.FrameH
	if w == 0 {
		w = m.W
	}
	if h == 0 {
		h = m.H
	}

	img := image.NewYCbCr(image.Rect(0, 0, w, h), image.YCbCrSubsampleRatio420)
	for i := range img.Y {
		img.Y[i] = uint8(m.videoPos)
	}
	for i := range img.Cb {
		img.Cb[i] = 128
		img.Cr[i] = 128
	}

	m.now = m.frameTime(m.videoPos)
	m.videoPos++
	return img
}

// DecodeAudio returns a block with left samples at 0.25 and right samples at -0.5.
func (m *Engine) DecodeAudio() []float32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AudioCalls++
	if !m.AudioEnabled || m.audioPos >= m.Blocks {
		return nil
	}

	block := make([]float32, m.BlockSamples*2)
	for i := range block {
		if i%2 == 0 {
			block[i] = 0.25
		} else {
			block[i] = -0.5
		}
	}

	if m.SampleRate > 0 {
		m.now = time.Duration(float64(m.audioPos*m.BlockSamples) / float64(m.SampleRate) * float64(time.Second))
	}
	m.audioPos++
	return block
}

func (m *Engine) SamplesPerBlock() int { return m.BlockSamples }

// Seek moves the video position to the frame at t. Inexact seeks round down to KeyInterval.
func (m *Engine) Seek(t time.Duration, exact bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SeekCalls = append(m.SeekCalls, SeekCall{Time: t, Exact: exact})
	if m.SeekFunc != nil {
		return m.SeekFunc(t, exact)
	}

	if !m.VideoEnabled || m.Frames == 0 {
		return false
	}

	if t < 0 {
		t = 0
	}
	if t > m.DurationValue {
		t = m.DurationValue
	}

	idx := int(t.Seconds() * m.FPS)
	if idx >= m.Frames {
		idx = m.Frames - 1
	}
	if !exact {
		interval := m.KeyInterval
		if interval < 1 {
			interval = 1
		}
		idx -= idx % interval
	}

	m.videoPos = idx
	m.now = m.frameTime(idx)
	return true
}

func (m *Engine) Close() error {
	m.closeCount.Add(1)
	return m.CloseErr
}

// CloseCount returns how many times Close was called. Safe from any goroutine.
func (m *Engine) CloseCount() int {
	return int(m.closeCount.Load())
}

func (m *Engine) frameTime(idx int) time.Duration {
	if m.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(idx) / m.FPS * float64(time.Second))
}

var _ ports.Engine = (*Engine)(nil)

// Opener is a mock implementation of ports.EngineOpener.
type Opener struct {
	Engine ports.Engine
	Err    error

	// Recorded calls for verification
	OpenedPaths []string
}

func (m *Opener) Open(path string) (ports.Engine, error) {
	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Engine, nil
}

var _ ports.EngineOpener = (*Opener)(nil)
