package mpegctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/mpegctx/pkg/mocks"
)

func assertAllFill(t *testing.T, pix []uint8) {
	t.Helper()
	for i, b := range pix {
		if b != rasterFill {
			t.Fatalf("byte %d = %d, want %d", i, b, rasterFill)
		}
	}
}

func TestDecodeVideo(t *testing.T) {
	engine := mocks.NewEngine()
	c := openMock(t, engine)

	raster, err := c.Raster()
	require.NoError(t, err)

	for i := 0; i < engine.Frames; i++ {
		frame, ok, err := c.DecodeVideo()
		require.NoError(t, err)
		require.True(t, ok, "frame %d", i)
		assert.Same(t, raster, frame)

		px := frame.RGBAAt(17, 33)
		assert.Equal(t, uint8(i), px.R)
		assert.Equal(t, uint8(i), px.G)
		assert.Equal(t, uint8(i), px.B)
		assert.Equal(t, uint8(255), px.A)
	}

	frame, ok, err := c.DecodeVideo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, frame)
	assertAllFill(t, raster.Pix)

	// Repeated calls past the end keep reporting end of stream.
	_, ok, err = c.DecodeVideo()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeVideoDisabled(t *testing.T) {
	engine := mocks.NewEngine()
	opts := DefaultOptions()
	opts.EnableVideo = false
	opts.Opener = &mocks.Opener{Engine: engine}

	c, err := Open("clip.mpg", opts)
	require.NoError(t, err)
	defer c.Release()

	frame, ok, err := c.DecodeVideo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, frame)

	raster, err := c.Raster()
	require.NoError(t, err)
	assertAllFill(t, raster.Pix)
}

func TestDecodeVideoSmallerFrameKeepsFill(t *testing.T) {
	engine := mocks.NewEngine()
	engine.FrameW, engine.FrameH = 160, 120
	c := openMock(t, engine)

	_, _, err := c.DecodeVideo()
	require.NoError(t, err)
	frame, ok, err := c.DecodeVideo()
	require.NoError(t, err)
	require.True(t, ok)

	inside := frame.RGBAAt(10, 10)
	assert.Equal(t, uint8(1), inside.R)
	assert.Equal(t, uint8(255), inside.A)

	for _, pt := range [][2]int{{200, 10}, {10, 200}, {319, 239}} {
		px := frame.RGBAAt(pt[0], pt[1])
		assert.Equal(t, uint8(255), px.R, "pixel %v", pt)
		assert.Equal(t, uint8(255), px.G, "pixel %v", pt)
		assert.Equal(t, uint8(255), px.B, "pixel %v", pt)
		assert.Equal(t, uint8(255), px.A, "pixel %v", pt)
	}
}

func TestDecodeVideoMissingBuffer(t *testing.T) {
	engine := mocks.NewEngine()
	c := openMock(t, engine)
	c.h.raster = nil

	_, _, err := c.DecodeVideo()
	assert.ErrorIs(t, err, ErrMissingBuffer)
	assert.Zero(t, engine.VideoCalls)

	_, err = c.Raster()
	assert.ErrorIs(t, err, ErrMissingBuffer)
}

func TestDecodeVideoZeroSizedStream(t *testing.T) {
	engine := mocks.NewEngine()
	engine.W, engine.H = 0, 0
	engine.Frames = 0
	c := openMock(t, engine)

	frame, ok, err := c.DecodeVideo()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, frame)
}
