package main

import (
	"errors"
	"os"
	"sync"
	"unsafe"

	pointer "github.com/mattn/go-pointer"

	"github.com/user/mpegctx/pkg/adapters/logger"
	"github.com/user/mpegctx/pkg/mpegctx"
	"github.com/user/mpegctx/pkg/ports"
)

// errBufferTooSmall is reported when the host buffer cannot hold a frame or block.
var errBufferTooSmall = errors.New("libmpegctx: destination buffer too small")

// opener is replaced in tests.
var opener ports.EngineOpener

var (
	lastErrMu sync.Mutex
	lastErr   string
)

func setLastError(err error) {
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	if err == nil {
		lastErr = ""
		return
	}
	lastErr = err.Error()
}

func lastError() string {
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	return lastErr
}

// hostLogger logs to the console when MPEGCTX_LOG_LEVEL is set.
func hostLogger() ports.Logger {
	level := os.Getenv("MPEGCTX_LOG_LEVEL")
	if level == "" {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// openHandle opens a Context and returns an opaque token for it.
func openHandle(path string, video, audio bool, stream int) (unsafe.Pointer, error) {
	ctx, err := mpegctx.Open(path, mpegctx.Options{
		EnableVideo: video,
		EnableAudio: audio,
		AudioStream: stream,
		Opener:      opener,
		Logger:      hostLogger(),
	})
	if err != nil {
		return nil, err
	}
	return pointer.Save(ctx), nil
}

// lookup restores the Context behind token. Unknown, released or foreign
// tokens yield ErrInvalidContext.
func lookup(token unsafe.Pointer) (*mpegctx.Context, error) {
	if token == nil {
		return nil, mpegctx.ErrInvalidContext
	}
	ctx, ok := pointer.Restore(token).(*mpegctx.Context)
	if !ok || ctx == nil {
		return nil, mpegctx.ErrInvalidContext
	}
	return ctx, nil
}

// releaseHandle releases the Context and forgets the token. Repeated calls are no-ops.
func releaseHandle(token unsafe.Pointer) {
	ctx, err := lookup(token)
	if err != nil {
		return
	}
	pointer.Unref(token)
	ctx.Release()
}

// decodeVideoInto decodes the next frame into dst.
// It returns 1 for a frame, 0 at end of stream and -1 on error.
func decodeVideoInto(token unsafe.Pointer, dst []byte) int {
	ctx, err := lookup(token)
	if err != nil {
		setLastError(err)
		return -1
	}

	frame, ok, err := ctx.DecodeVideo()
	if err != nil {
		setLastError(err)
		return -1
	}
	if !ok {
		return 0
	}
	if len(dst) < len(frame.Pix) {
		setLastError(errBufferTooSmall)
		return -1
	}
	copy(dst, frame.Pix)
	return 1
}

// decodeAudioInto decodes the next block into dst.
// It returns the sample count, 0 at end of stream and -1 on error.
func decodeAudioInto(token unsafe.Pointer, dst []float64) int {
	ctx, err := lookup(token)
	if err != nil {
		setLastError(err)
		return -1
	}

	samples, ok, err := ctx.DecodeAudio()
	if err != nil {
		setLastError(err)
		return -1
	}
	if !ok {
		return 0
	}
	if len(dst) < len(samples) {
		setLastError(errBufferTooSmall)
		return -1
	}
	return copy(dst, samples)
}

// seekTo returns 1 when a target was found, 0 when not and -1 on error.
func seekTo(token unsafe.Pointer, seconds float64, exact bool) int {
	ctx, err := lookup(token)
	if err != nil {
		setLastError(err)
		return -1
	}
	found, err := ctx.Seek(seconds, exact)
	if err != nil {
		setLastError(err)
		return -1
	}
	if found {
		return 1
	}
	return 0
}

func infoOf(token unsafe.Pointer) (mpegctx.Info, error) {
	ctx, err := lookup(token)
	if err != nil {
		return mpegctx.Info{}, err
	}
	return ctx.Info()
}
