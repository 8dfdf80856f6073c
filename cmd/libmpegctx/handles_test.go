package main

import (
	"errors"
	"testing"

	"github.com/user/mpegctx/pkg/mocks"
	"github.com/user/mpegctx/pkg/mpegctx"
)

func withEngine(t *testing.T, engine *mocks.Engine) {
	t.Helper()
	prev := opener
	opener = &mocks.Opener{Engine: engine}
	t.Cleanup(func() { opener = prev })
}

func TestHandleLifecycle(t *testing.T) {
	engine := mocks.NewEngine()
	withEngine(t, engine)

	token, err := openHandle("clip.mpg", true, true, 0)
	if err != nil {
		t.Fatalf("openHandle failed: %v", err)
	}

	info, err := infoOf(token)
	if err != nil {
		t.Fatalf("infoOf failed: %v", err)
	}
	if info.Width != 320 || info.Height != 240 {
		t.Errorf("unexpected info %+v", info)
	}

	frame := make([]byte, 320*240*4)
	if got := decodeVideoInto(token, frame); got != 1 {
		t.Fatalf("decodeVideoInto = %d, want 1", got)
	}
	if frame[3] != 255 {
		t.Errorf("alpha = %d, want 255", frame[3])
	}

	block := make([]float64, 2304)
	if got := decodeAudioInto(token, block); got != 2304 {
		t.Fatalf("decodeAudioInto = %d, want 2304", got)
	}
	if block[0] != 0.25 || block[1] != -0.5 {
		t.Errorf("unexpected samples %v", block[:2])
	}

	if got := seekTo(token, 1, true); got != 1 {
		t.Errorf("seekTo = %d, want 1", got)
	}

	releaseHandle(token)
	releaseHandle(token)
	if engine.CloseCount() != 1 {
		t.Errorf("CloseCount = %d, want 1", engine.CloseCount())
	}

	if got := decodeVideoInto(token, frame); got != -1 {
		t.Errorf("decode after release = %d, want -1", got)
	}
	if _, err := infoOf(token); !errors.Is(err, mpegctx.ErrInvalidContext) {
		t.Errorf("expected ErrInvalidContext, got %v", err)
	}
}

func TestHandleEndOfStream(t *testing.T) {
	engine := mocks.NewEngine()
	engine.Frames = 1
	engine.Blocks = 0
	withEngine(t, engine)

	token, err := openHandle("clip.mpg", true, true, 0)
	if err != nil {
		t.Fatalf("openHandle failed: %v", err)
	}
	defer releaseHandle(token)

	frame := make([]byte, 320*240*4)
	decodeVideoInto(token, frame)
	if got := decodeVideoInto(token, frame); got != 0 {
		t.Errorf("decodeVideoInto at end = %d, want 0", got)
	}
	if got := decodeAudioInto(token, make([]float64, 2304)); got != 0 {
		t.Errorf("decodeAudioInto at end = %d, want 0", got)
	}
}

func TestHandleSmallBuffers(t *testing.T) {
	withEngine(t, mocks.NewEngine())

	token, err := openHandle("clip.mpg", true, true, 0)
	if err != nil {
		t.Fatalf("openHandle failed: %v", err)
	}
	defer releaseHandle(token)

	if got := decodeVideoInto(token, make([]byte, 16)); got != -1 {
		t.Errorf("decodeVideoInto = %d, want -1", got)
	}
	if lastError() != errBufferTooSmall.Error() {
		t.Errorf("lastError = %q", lastError())
	}
	if got := decodeAudioInto(token, nil); got != -1 {
		t.Errorf("decodeAudioInto = %d, want -1", got)
	}
}

func TestHandleOpenFailure(t *testing.T) {
	prev := opener
	opener = &mocks.Opener{Err: errors.New("boom")}
	defer func() { opener = prev }()

	token, err := openHandle("missing.mpg", true, true, 0)
	if token != nil || !errors.Is(err, mpegctx.ErrOpen) {
		t.Errorf("expected ErrOpen and nil token, got %v, %v", token, err)
	}
}

func TestLookupInvalid(t *testing.T) {
	if _, err := lookup(nil); !errors.Is(err, mpegctx.ErrInvalidContext) {
		t.Errorf("expected ErrInvalidContext for nil token, got %v", err)
	}
	if got := seekTo(nil, 0, false); got != -1 {
		t.Errorf("seekTo(nil) = %d, want -1", got)
	}
}
