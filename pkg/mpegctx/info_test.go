package mpegctx

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/user/mpegctx/pkg/mocks"
)

func TestInfo(t *testing.T) {
	engine := mocks.NewEngine()
	engine.FPS = 29.97
	engine.DurationValue = 2900 * time.Millisecond
	engine.AudioStreams = 2
	c := openMock(t, engine)

	info, err := c.Info()
	require.NoError(t, err)

	assert.Equal(t, Info{
		Width:        320,
		Height:       240,
		VideoStreams: 1,
		AudioStreams: 2,
		FrameRate:    29,
		SampleRate:   44100,
		CurrentTime:  0,
		Duration:     2,
	}, info)
}

func TestInfoTracksPosition(t *testing.T) {
	engine := mocks.NewEngine()
	c := openMock(t, engine)

	for i := 0; i < 16; i++ {
		_, _, err := c.DecodeVideo()
		require.NoError(t, err)
	}

	info, err := c.Info()
	require.NoError(t, err)
	assert.Equal(t, 1, info.CurrentTime)
}

func TestInfoFieldNames(t *testing.T) {
	info := Info{Width: 1, Height: 2, VideoStreams: 3, AudioStreams: 4, FrameRate: 5, SampleRate: 6, CurrentTime: 7, Duration: 8}
	want := []string{"width", "height", "video_streams", "audio_streams", "fps", "sample_rate", "interval_time", "duration"}

	data, err := json.Marshal(info)
	require.NoError(t, err)
	var asJSON map[string]int
	require.NoError(t, json.Unmarshal(data, &asJSON))

	out, err := yaml.Marshal(info)
	require.NoError(t, err)
	var asYAML map[string]int
	require.NoError(t, yaml.Unmarshal(out, &asYAML))

	for i, key := range want {
		assert.Equal(t, i+1, asJSON[key], "json %s", key)
		assert.Equal(t, i+1, asYAML[key], "yaml %s", key)
	}
}

func TestPositionAndDuration(t *testing.T) {
	engine := mocks.NewEngine()
	engine.DurationValue = 2500 * time.Millisecond
	c := openMock(t, engine)

	d, err := c.Duration()
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, d)

	_, err = c.Seek(1.5, true)
	require.NoError(t, err)
	pos, err := c.Position()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, pos)

	require.NoError(t, c.Release())
	_, err = c.Position()
	assert.ErrorIs(t, err, ErrInvalidContext)
	_, err = c.Duration()
	assert.ErrorIs(t, err, ErrInvalidContext)
}
