package mocks

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/user/mpegctx/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// Without overrides it returns real RGBA canvases so layouts can be inspected.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	// Recorded calls for verification
	Canvases []*Canvas
	Encoded  []ports.ImageFormat
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	m.Canvases = append(m.Canvases, c)
	return c
}

// EncodeImage returns the format name as bytes by default.
func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.Encoded = append(m.Encoded, format)
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte(format.String()), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// DrawCall records one DrawImage call.
type DrawCall struct {
	X, Y int
	Size image.Point
}

// TextCall records one DrawText call.
type TextCall struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

// Canvas is a mock implementation of ports.Canvas backed by an RGBA image.
type Canvas struct {
	img *image.RGBA

	Images []DrawCall
	Rects  []image.Rectangle
	Texts  []TextCall
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	m.Images = append(m.Images, DrawCall{X: x, Y: y, Size: img.Bounds().Size()})
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	m.Rects = append(m.Rects, image.Rect(x, y, x+w, y+h))
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
