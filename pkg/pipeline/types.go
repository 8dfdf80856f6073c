package pipeline

import (
	"image"
	"image/color"
	"time"

	"github.com/user/mpegctx/pkg/mpegctx"
)

// Source is the part of *mpegctx.Context the stages drive.
type Source interface {
	DecodeVideo() (*image.RGBA, bool, error)
	Seek(seconds float64, exact bool) (bool, error)
	Info() (mpegctx.Info, error)
	Position() (time.Duration, error)
	Duration() (time.Duration, error)
}

var _ Source = (*mpegctx.Context)(nil)

// =============================================================================
// Extract Stage Types
// =============================================================================

// ExtractInput selects which frames to pull from a Source.
type ExtractInput struct {
	Source Source
	Start  time.Duration // seek here first when positive
	Exact  bool          // exact seek to Start
	Every  int           // keep every Nth decoded frame (default: 1)
	Max    int           // stop after this many kept frames, 0 for no limit
}

// Frame is one extracted frame.
type Frame struct {
	Index int           // position among decoded frames, counted from Start
	Time  time.Duration // decode position after the frame
	Image *image.RGBA   // a private copy; nil when the frame went to a sink
	Path  string        // where the sink stored the frame, if any
}

// ExtractResult contains the extracted frames.
type ExtractResult struct {
	Frames  []Frame
	Decoded int // total frames decoded, including skipped ones
}

// =============================================================================
// Contact Sheet Stage Types
// =============================================================================

// ContactInput describes a contact sheet.
type ContactInput struct {
	Source     Source
	Count      int // thumbnails (default: 16)
	Columns    int // grid columns (default: 4)
	ThumbWidth int // thumbnail width in pixels, height follows the aspect ratio (default: 240)
	Gap        int // spacing around cells
	Exact      bool
	Background color.Color
	LabelColor color.Color
	LabelFont  string // TrueType font path, empty for the built-in face
}

// DefaultContactInput returns ContactInput with default values.
func DefaultContactInput() ContactInput {
	return ContactInput{
		Count:      16,
		Columns:    4,
		ThumbWidth: 240,
		Gap:        8,
		Exact:      true,
		Background: color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff},
		LabelColor: color.White,
	}
}

// Thumb records where one thumbnail was placed.
type Thumb struct {
	Time   time.Duration
	Bounds image.Rectangle
	Found  bool // false when the seek or decode produced no frame
}

// ContactResult contains the composed sheet.
type ContactResult struct {
	Image  image.Image
	Thumbs []Thumb
	Path   string // set when a sink stored the sheet
}
