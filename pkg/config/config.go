// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/mpegctx/pkg/mpegctx"
	"github.com/user/mpegctx/pkg/ports"
)

// Config represents the full configuration for the mpegctx CLI.
type Config struct {
	// Decoding
	Video       bool `yaml:"video"`
	Audio       bool `yaml:"audio"`
	AudioStream int  `yaml:"audio_stream"`
	ExactSeek   bool `yaml:"exact_seek"`

	LogLevel string `yaml:"log_level"`

	Export  ExportConfig  `yaml:"export"`
	Contact ContactConfig `yaml:"contact"`
}

// ExportConfig controls frame export.
type ExportConfig struct {
	Format      string `yaml:"format"`
	JPEGQuality int    `yaml:"jpeg_quality"`
	Every       int    `yaml:"every"`
	MaxFrames   int    `yaml:"max_frames"`
}

// ContactConfig controls contact sheet layout.
type ContactConfig struct {
	Columns         int    `yaml:"columns"`
	Count           int    `yaml:"count"`
	ThumbWidth      int    `yaml:"thumb_width"`
	Gap             int    `yaml:"gap"`
	BackgroundColor string `yaml:"background_color"`
	LabelColor      string `yaml:"label_color"`
	Font            string `yaml:"font"` // TrueType font for labels, empty for the built-in face
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Video:       true,
		Audio:       true,
		AudioStream: 0,
		ExactSeek:   true,
		LogLevel:    "info",

		Export: ExportConfig{
			Format:      "png",
			JPEGQuality: 90,
			Every:       1,
			MaxFrames:   0,
		},

		Contact: ContactConfig{
			Columns:         4,
			Count:           16,
			ThumbWidth:      240,
			Gap:             8,
			BackgroundColor: "#1a1a2e",
			LabelColor:      "#ffffff",
		},
	}
}

// LoadFromFile loads configuration from a YAML file over Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.AudioStream < 0 || c.AudioStream > 3 {
		return fmt.Errorf("audio_stream must be 0-3, got %d", c.AudioStream)
	}
	if c.Export.Every < 1 {
		return fmt.Errorf("export.every must be at least 1, got %d", c.Export.Every)
	}
	if c.Export.MaxFrames < 0 {
		return fmt.Errorf("export.max_frames must not be negative, got %d", c.Export.MaxFrames)
	}
	if c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100 {
		return fmt.Errorf("export.jpeg_quality must be 1-100, got %d", c.Export.JPEGQuality)
	}
	if c.Contact.Columns < 1 || c.Contact.Count < 1 || c.Contact.ThumbWidth < 1 {
		return fmt.Errorf("contact.columns, contact.count and contact.thumb_width must be positive")
	}
	if c.Contact.Gap < 0 {
		return fmt.Errorf("contact.gap must not be negative, got %d", c.Contact.Gap)
	}
	return nil
}

// ParseColor parses a #rrggbb or #rgb hex color. Malformed input yields black.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return color.Black
	}

	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexValue(hex[i*2])
		lo, ok2 := hexValue(hex[i*2+1])
		if !ok1 || !ok2 {
			return color.Black
		}
		rgb[i] = hi<<4 | lo
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// ImageFormat returns the export format.
func (c Config) ImageFormat() ports.ImageFormat {
	return ports.ParseImageFormat(c.Export.Format)
}

// Level returns the parsed log level.
func (c Config) Level() ports.LogLevel {
	return ports.ParseLogLevel(c.LogLevel)
}

// ToOptions converts Config to mpegctx.Options. The opener is left to its default.
func (c Config) ToOptions(log ports.Logger) mpegctx.Options {
	opts := mpegctx.DefaultOptions()
	opts.EnableVideo = c.Video
	opts.EnableAudio = c.Audio
	opts.AudioStream = c.AudioStream
	opts.Logger = log
	return opts
}
