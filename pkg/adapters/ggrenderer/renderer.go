// Package ggrenderer composes contact sheets with the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/user/mpegctx/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
// Font faces are loaded once per path and size and shared by its canvases.
type Renderer struct {
	logger ports.Logger

	mu     sync.Mutex
	faces  map[faceKey]font.Face
	broken map[string]bool
}

type faceKey struct {
	path   string
	points float64
}

// New creates a new Renderer. Font loading failures are reported to logger.
func New(logger ports.Logger) *Renderer {
	return &Renderer{
		logger: logger.WithComponent("render"),
		faces:  make(map[faceKey]font.Face),
		broken: make(map[string]bool),
	}
}

// CreateCanvas creates a drawing canvas filled with bg.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc, r: r}
}

// face returns the cached face for path at points. A font that fails to load
// is logged once and yields nil from then on.
func (r *Renderer) face(path string, points float64) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.broken[path] {
		return nil
	}
	key := faceKey{path: path, points: points}
	if f, ok := r.faces[key]; ok {
		return f
	}

	f, err := gg.LoadFontFace(path, points)
	if err != nil {
		r.broken[path] = true
		r.logger.Warn("Failed to load font %s, using the built-in face: %v", path, err)
		return nil
	}
	r.faces[key] = f
	return f
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage scales img to width x height with Catmull-Rom resampling.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
	r  *Renderer
}

// DrawImage draws an image with its top-left corner at x, y.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawText draws text vertically centred on y. Without a loadable font the
// built-in 7x13 face is used.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.dc.SetColor(style.Color)

	if style.FontPath != "" {
		if f := c.r.face(style.FontPath, style.FontSize); f != nil {
			c.dc.SetFontFace(f)
		}
	}

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	c.dc.DrawStringAnchored(text, float64(x), float64(y), ax, 0.5)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

var _ ports.Canvas = (*Canvas)(nil)
