package mpegctx

import (
	"image"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/user/mpegctx/pkg/adapters/logger"
	"github.com/user/mpegctx/pkg/adapters/plmpeg"
	"github.com/user/mpegctx/pkg/ports"
)

// Options configures Open.
type Options struct {
	// EnableVideo turns video decoding on.
	EnableVideo bool
	// EnableAudio turns audio decoding on.
	EnableAudio bool
	// AudioStream selects which audio stream (0-3) is decoded.
	AudioStream int

	// Opener creates the engine. Defaults to plmpeg.New().
	Opener ports.EngineOpener
	// Logger receives debug output. Defaults to a no-op logger.
	Logger ports.Logger
}

// DefaultOptions enables both tracks on the first audio stream.
func DefaultOptions() Options {
	return Options{
		EnableVideo: true,
		EnableAudio: true,
		AudioStream: 0,
	}
}

// Context owns one engine and the raster that video frames are decoded into.
// The zero value is not usable; every operation on it returns ErrInvalidContext.
type Context struct {
	h       *handle
	cleanup runtime.Cleanup
}

// handle holds the state shared by the Context and its collector cleanup.
// It must never point back at the Context, or the Context would stay reachable.
type handle struct {
	mu     sync.Mutex
	id     string
	engine ports.Engine // nil once released
	raster *image.RGBA
	log    ports.Logger
}

// Open creates a Context for the stream at path.
//
// Failures are returned as *OpenError naming path. If the raster cannot be sized
// from the stream, the engine is closed before returning.
func Open(path string, opts Options) (*Context, error) {
	opener := opts.Opener
	if opener == nil {
		opener = plmpeg.New()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	log = log.WithComponent("mpegctx")

	engine, err := opener.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if engine == nil {
		return nil, &OpenError{Path: path, Err: errNoEngine}
	}

	engine.SetVideoEnabled(opts.EnableVideo)
	engine.SetAudioEnabled(opts.EnableAudio)
	engine.SetAudioStream(opts.AudioStream)

	width, height := engine.Width(), engine.Height()
	raster, err := newRaster(width, height)
	if err != nil {
		if cerr := engine.Close(); cerr != nil {
			log.Warn("Failed to close engine for %s: %v", path, cerr)
		}
		return nil, &OpenError{Path: path, Err: err}
	}

	h := &handle{
		id:     uuid.NewString(),
		engine: engine,
		raster: raster,
		log:    log,
	}
	c := &Context{h: h}
	c.cleanup = runtime.AddCleanup(c, func(h *handle) {
		h.teardown("Context %s collected")
	}, h)

	log.Debug("Opened %s as %s: %dx%d, %d video / %d audio streams",
		path, h.id, width, height, engine.NumVideoStreams(), engine.NumAudioStreams())

	return c, nil
}

// Release destroys the engine and drops the raster. It is safe to call any
// number of times, and concurrently with the collector cleanup. Engine close
// failures are logged, so the returned error is always nil.
func (c *Context) Release() error {
	if c == nil || c.h == nil {
		return nil
	}
	c.cleanup.Stop()
	c.h.teardown("Context %s released")
	return nil
}

// Close calls Release so a Context can be used as an io.Closer.
func (c *Context) Close() error {
	return c.Release()
}

// Alive reports whether the Context can still be used.
func (c *Context) Alive() bool {
	if c == nil || c.h == nil {
		return false
	}
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	return c.h.engine != nil
}

// ID returns the identifier used for this Context in log output.
func (c *Context) ID() string {
	if c == nil || c.h == nil {
		return ""
	}
	return c.h.id
}

// Raster returns the shared raster without decoding.
func (c *Context) Raster() (*image.RGBA, error) {
	h, err := c.acquire()
	if err != nil {
		return nil, err
	}
	defer h.mu.Unlock()

	if h.raster == nil {
		return nil, ErrMissingBuffer
	}
	return h.raster, nil
}

// acquire validates the Context and returns its handle locked.
// Callers must unlock h.mu.
func (c *Context) acquire() (*handle, error) {
	if c == nil || c.h == nil {
		return nil, ErrInvalidContext
	}

	h := c.h
	h.mu.Lock()
	if h.engine == nil {
		h.mu.Unlock()
		return nil, ErrInvalidContext
	}
	return h, nil
}

// teardown closes the engine once and logs msg with the handle ID. Later calls are no-ops.
func (h *handle) teardown(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.engine == nil {
		return
	}

	if err := h.engine.Close(); err != nil {
		h.log.Warn("Engine for %s closed with error: %v", h.id, err)
	}
	h.engine = nil
	h.raster = nil

	h.log.Debug(msg, h.id)
}
