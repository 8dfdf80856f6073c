package mpegctx

import "time"

// Info is a snapshot of stream properties.
//
// All fields are whole numbers. FrameRate, CurrentTime and Duration are truncated
// toward zero, matching the engine's integer accessors.
type Info struct {
	Width        int `yaml:"width" json:"width"`
	Height       int `yaml:"height" json:"height"`
	VideoStreams int `yaml:"video_streams" json:"video_streams"`
	AudioStreams int `yaml:"audio_streams" json:"audio_streams"`
	FrameRate    int `yaml:"fps" json:"fps"`
	SampleRate   int `yaml:"sample_rate" json:"sample_rate"`
	CurrentTime  int `yaml:"interval_time" json:"interval_time"` // seconds
	Duration     int `yaml:"duration" json:"duration"`           // seconds
}

// Info reads the current stream properties from the engine.
// CurrentTime follows the decode position; the other fields are static.
func (c *Context) Info() (Info, error) {
	h, err := c.acquire()
	if err != nil {
		return Info{}, err
	}
	defer h.mu.Unlock()

	e := h.engine
	return Info{
		Width:        e.Width(),
		Height:       e.Height(),
		VideoStreams: e.NumVideoStreams(),
		AudioStreams: e.NumAudioStreams(),
		FrameRate:    int(e.Framerate()),
		SampleRate:   e.Samplerate(),
		CurrentTime:  int(e.Time().Seconds()),
		Duration:     int(e.Duration().Seconds()),
	}, nil
}

// Position returns the exact decode position, without the truncation Info applies.
func (c *Context) Position() (time.Duration, error) {
	h, err := c.acquire()
	if err != nil {
		return 0, err
	}
	defer h.mu.Unlock()

	return h.engine.Time(), nil
}

// Duration returns the exact stream duration.
func (c *Context) Duration() (time.Duration, error) {
	h, err := c.acquire()
	if err != nil {
		return 0, err
	}
	defer h.mu.Unlock()

	return h.engine.Duration(), nil
}
