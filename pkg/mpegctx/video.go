package mpegctx

import (
	"image"
)

// DecodeVideo decodes the next video frame into the shared raster.
//
// The raster is reset to all-255 bytes first. When the engine yields a frame it
// is packed into the raster, which is returned with ok set. At end of stream, or
// when video decoding is disabled, it returns (nil, false, nil) and the raster
// stays blank.
func (c *Context) DecodeVideo() (frame *image.RGBA, ok bool, err error) {
	h, err := c.acquire()
	if err != nil {
		return nil, false, err
	}
	defer h.mu.Unlock()

	if h.raster == nil {
		return nil, false, ErrMissingBuffer
	}

	resetRaster(h.raster)

	decoded := h.engine.DecodeVideo()
	if decoded == nil {
		h.log.Debug("No video frame for %s at %s", h.id, h.engine.Time())
		return nil, false, nil
	}

	convertFrame(h.raster, decoded)
	return h.raster, true, nil
}
