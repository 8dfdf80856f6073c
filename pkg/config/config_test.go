package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/mpegctx/pkg/adapters/logger"
	"github.com/user/mpegctx/pkg/ports"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults() invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mpegctx.yaml")
	data := `
audio: false
audio_stream: 2
log_level: debug
export:
  format: jpg
  every: 5
contact:
  columns: 6
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if !cfg.Video {
		t.Error("expected video to keep its default")
	}
	if cfg.Audio {
		t.Error("expected audio to be disabled")
	}
	if cfg.AudioStream != 2 {
		t.Errorf("AudioStream = %d, want 2", cfg.AudioStream)
	}
	if cfg.Level() != ports.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	if cfg.ImageFormat() != ports.FormatJPEG {
		t.Errorf("ImageFormat() = %v, want jpg", cfg.ImageFormat())
	}
	if cfg.Export.Every != 5 {
		t.Errorf("Export.Every = %d, want 5", cfg.Export.Every)
	}
	if cfg.Export.JPEGQuality != 90 {
		t.Errorf("Export.JPEGQuality = %d, want default 90", cfg.Export.JPEGQuality)
	}
	if cfg.Contact.Columns != 6 || cfg.Contact.Count != 16 {
		t.Errorf("Contact = %+v, want columns 6 and default count", cfg.Contact)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "video: [", "parse"},
		{"bad stream", "audio_stream: 7", "audio_stream"},
		{"bad every", "export:\n  every: 0", "export.every"},
		{"bad quality", "export:\n  jpeg_quality: 101", "jpeg_quality"},
		{"bad columns", "contact:\n  columns: 0", "contact.columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFromFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}},
		{"00ff00", color.RGBA{G: 255, A: 255}},
		{"#1A1a2E", color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255}},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"", color.Black},
		{"#12345", color.Black},
		{"#gg0000", color.Black},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseColor(tt.in); got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Video = false
	cfg.AudioStream = 1
	log := logger.NewNoop()

	opts := cfg.ToOptions(log)
	if opts.EnableVideo || !opts.EnableAudio || opts.AudioStream != 1 {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.Logger != log {
		t.Error("expected logger to be passed through")
	}
}
