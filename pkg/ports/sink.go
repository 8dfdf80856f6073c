package ports

import (
	"image"
)

// FrameSink persists decoded frames and derived images.
type FrameSink interface {
	// SaveFrame saves one decoded frame. index is the frame's position in the stream.
	SaveFrame(index int, img image.Image) (string, error)

	// SaveImage saves a derived image (e.g. a contact sheet) under the given base name.
	SaveImage(name string, img image.Image) (string, error)
}
