// Package summarizer produces human-readable reports of export runs.
package summarizer

import (
	"time"

	"github.com/user/mpegctx/pkg/mpegctx"
)

// Summary contains the data collected during one export.
type Summary struct {
	GeneratedAt time.Time

	Source SourceInfo
	Stream mpegctx.Info
	Export ExportInfo
}

// SourceInfo describes the input file.
type SourceInfo struct {
	Path      string
	Container string
	Size      int64
}

// ExportInfo describes what was written.
type ExportInfo struct {
	Command   string
	Output    string
	Start     time.Duration
	Frames    int // frames or thumbnails written
	Decoded   int // frames decoded, including skipped ones
	AudioTime time.Duration
	Elapsed   time.Duration
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets input file information.
func (b *Builder) WithSource(path, container string, size int64) *Builder {
	b.summary.Source = SourceInfo{
		Path:      path,
		Container: container,
		Size:      size,
	}
	return b
}

// WithStream sets the stream properties.
func (b *Builder) WithStream(info mpegctx.Info) *Builder {
	b.summary.Stream = info
	return b
}

// WithExport sets export results.
func (b *Builder) WithExport(export ExportInfo) *Builder {
	b.summary.Export = export
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
