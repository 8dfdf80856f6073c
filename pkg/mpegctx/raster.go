package mpegctx

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// maxDimension is the largest width or height an MPEG-1 sequence header can carry.
const maxDimension = 4095

// rasterFill is the value every raster byte is reset to before a decode.
const rasterFill = 0xff

// newRaster allocates a zeroed width x height RGBA raster with stride width*4.
func newRaster(width, height int) (*image.RGBA, error) {
	if width < 0 || height < 0 || width > maxDimension || height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", errInvalidDimensions, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// resetRaster sets every byte of dst to rasterFill.
func resetRaster(dst *image.RGBA) {
	pix := dst.Pix
	if len(pix) == 0 {
		return
	}
	pix[0] = rasterFill
	for n := 1; n < len(pix); n *= 2 {
		copy(pix[n:], pix[:n])
	}
}

// convertFrame packs frame into dst. Pixels outside the frame keep their value.
func convertFrame(dst *image.RGBA, frame image.Image) {
	draw.Draw(dst, dst.Bounds(), frame, frame.Bounds().Min, draw.Src)
}

// CloneRaster returns a deep copy of src. DecodeVideo overwrites its raster on
// every call; callers that keep frames copy them with this.
func CloneRaster(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
