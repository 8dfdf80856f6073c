package mpegctx

import (
	"math"
	"time"
)

// maxSeekSeconds keeps the conversion to time.Duration from overflowing.
const maxSeekSeconds = float64(math.MaxInt64 / int64(time.Second))

// Seek moves the decode position to seconds from the start of the stream.
//
// With exact set the engine decodes forward from the previous intra frame to land
// on the requested time; otherwise it stops at that intra frame. It reports
// whether a seek target was found. Nothing is decoded for the caller: the next
// DecodeVideo or DecodeAudio yields the first data at or after the target.
// A false result is not an error and leaves the position wherever the engine left it.
func (c *Context) Seek(seconds float64, exact bool) (bool, error) {
	h, err := c.acquire()
	if err != nil {
		return false, err
	}
	defer h.mu.Unlock()

	if math.IsNaN(seconds) {
		return false, nil
	}
	seconds = math.Max(-maxSeekSeconds, math.Min(seconds, maxSeekSeconds))

	target := time.Duration(seconds * float64(time.Second))
	found := h.engine.Seek(target, exact)

	h.log.Debug("Seek %s to %s (exact: %t): %t", h.id, target, exact, found)
	return found, nil
}
