// Package contact implements the contact sheet stage.
package contact

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/user/mpegctx/pkg/pipeline"
	"github.com/user/mpegctx/pkg/ports"
)

// labelHeight is the strip below each thumbnail that holds its timestamp.
const labelHeight = 18

// Stage lays out evenly spaced thumbnails of a Source in a grid.
type Stage struct {
	renderer ports.Renderer
	sink     ports.FrameSink
	logger   ports.Logger
}

// NewStage creates a new contact sheet stage. sink may be nil.
func NewStage(renderer ports.Renderer, sink ports.FrameSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("contact"),
	}
}

// Execute seeks to Count evenly spaced points, decodes one frame at each and
// composes the sheet. Points where nothing decodes are left as background.
func (s *Stage) Execute(ctx context.Context, input pipeline.ContactInput) (pipeline.ContactResult, error) {
	var result pipeline.ContactResult

	if input.Source == nil {
		return result, fmt.Errorf("contact: no source")
	}
	input = withDefaults(input)

	info, err := input.Source.Info()
	if err != nil {
		return result, fmt.Errorf("contact: info: %w", err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return result, fmt.Errorf("contact: stream has no video dimensions")
	}
	duration, err := input.Source.Duration()
	if err != nil {
		return result, fmt.Errorf("contact: duration: %w", err)
	}

	layout := computeLayout(input, info.Width, info.Height)
	s.logger.Debug("Contact sheet %dx%d, %d thumbnails of %dx%d",
		layout.canvas.X, layout.canvas.Y, input.Count, layout.thumb.X, layout.thumb.Y)

	canvas := s.renderer.CreateCanvas(layout.canvas.X, layout.canvas.Y, input.Background)
	labelStyle := ports.TextStyle{
		FontSize: 12,
		FontPath: input.LabelFont,
		Color:    input.LabelColor,
		Align:    ports.AlignCenter,
	}

	found := 0
	for i := 0; i < input.Count; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		at := sampleTime(duration, i, input.Count)
		rect := layout.cell(i)
		thumb := pipeline.Thumb{Time: at, Bounds: rect}

		img, err := s.frameAt(input, at)
		if err != nil {
			return result, err
		}
		if img != nil {
			canvas.DrawImage(s.renderer.ResizeImage(img, layout.thumb.X, layout.thumb.Y), rect.Min.X, rect.Min.Y)
			thumb.Found = true
			found++
		} else {
			s.logger.Debug("No frame at %s", at)
		}

		canvas.DrawText(FormatTimestamp(at), rect.Min.X+rect.Dx()/2, rect.Max.Y+labelHeight/2, labelStyle)
		result.Thumbs = append(result.Thumbs, thumb)
	}

	result.Image = canvas.ToImage()

	if s.sink != nil {
		path, err := s.sink.SaveImage("contact", result.Image)
		if err != nil {
			return result, fmt.Errorf("contact: save: %w", err)
		}
		result.Path = path
	}

	s.logger.Info("Contact sheet with %d of %d thumbnails", found, input.Count)
	return result, nil
}

func (s *Stage) frameAt(input pipeline.ContactInput, at time.Duration) (image.Image, error) {
	ok, err := input.Source.Seek(at.Seconds(), input.Exact)
	if err != nil {
		return nil, fmt.Errorf("contact: seek to %s: %w", at, err)
	}
	if !ok {
		return nil, nil
	}

	img, ok, err := input.Source.DecodeVideo()
	if err != nil {
		return nil, fmt.Errorf("contact: decode at %s: %w", at, err)
	}
	if !ok {
		return nil, nil
	}
	return img, nil
}

func withDefaults(input pipeline.ContactInput) pipeline.ContactInput {
	def := pipeline.DefaultContactInput()
	if input.Count <= 0 {
		input.Count = def.Count
	}
	if input.Columns <= 0 {
		input.Columns = def.Columns
	}
	if input.Columns > input.Count {
		input.Columns = input.Count
	}
	if input.ThumbWidth <= 0 {
		input.ThumbWidth = def.ThumbWidth
	}
	if input.Gap < 0 {
		input.Gap = 0
	}
	if input.Background == nil {
		input.Background = def.Background
	}
	if input.LabelColor == nil {
		input.LabelColor = def.LabelColor
	}
	return input
}

// sampleTime returns the midpoint of the i-th of n equal slices of d.
func sampleTime(d time.Duration, i, n int) time.Duration {
	return time.Duration((float64(i) + 0.5) / float64(n) * float64(d))
}

type layout struct {
	columns int
	gap     int
	thumb   image.Point
	canvas  image.Point
}

func computeLayout(input pipeline.ContactInput, width, height int) layout {
	thumbH := input.ThumbWidth * height / width
	if thumbH < 1 {
		thumbH = 1
	}
	rows := (input.Count + input.Columns - 1) / input.Columns

	return layout{
		columns: input.Columns,
		gap:     input.Gap,
		thumb:   image.Pt(input.ThumbWidth, thumbH),
		canvas: image.Pt(
			input.Columns*input.ThumbWidth+(input.Columns+1)*input.Gap,
			rows*(thumbH+labelHeight)+(rows+1)*input.Gap,
		),
	}
}

// cell returns the thumbnail rectangle for index i. Its label sits below it.
func (l layout) cell(i int) image.Rectangle {
	col, row := i%l.columns, i/l.columns
	x := l.gap + col*(l.thumb.X+l.gap)
	y := l.gap + row*(l.thumb.Y+labelHeight+l.gap)
	return image.Rect(x, y, x+l.thumb.X, y+l.thumb.Y)
}

// FormatTimestamp renders d as mm:ss.mmm, or h:mm:ss.mmm past an hour.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	h := ms / 3600000
	m := ms / 60000 % 60
	sec := ms / 1000 % 60
	ms %= 1000
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, sec, ms)
	}
	return fmt.Sprintf("%02d:%02d.%03d", m, sec, ms)
}

var _ pipeline.Stage[pipeline.ContactInput, pipeline.ContactResult] = (*Stage)(nil)
