// Package framesink writes decoded frames and contact sheets as image files.
package framesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/mpegctx/pkg/ports"
)

// Sink encodes images with a Renderer and stores them through a FileSystem.
// Frames go to <baseDir>/frame-NNNNNN.<ext>; named images to <baseDir>/<name>.<ext>.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
	format   ports.ImageFormat
	quality  int
}

// New creates a Sink. quality is only used for JPEG.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer, format ports.ImageFormat, quality int) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
		format:   format,
		quality:  quality,
	}
}

// SaveFrame saves a decoded frame and returns the written path.
func (s *Sink) SaveFrame(index int, img image.Image) (string, error) {
	return s.save(fmt.Sprintf("frame-%06d", index), img)
}

// SaveImage saves a derived image under name and returns the written path.
func (s *Sink) SaveImage(name string, img image.Image) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid image name %q", name)
	}
	return s.save(name, img)
}

func (s *Sink) save(name string, img image.Image) (string, error) {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return "", fmt.Errorf("create %s: %w", s.baseDir, err)
	}

	data, err := s.renderer.EncodeImage(img, s.format, s.quality)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(s.baseDir, name+"."+s.format.String())
	if err := s.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

var _ ports.FrameSink = (*Sink)(nil)
