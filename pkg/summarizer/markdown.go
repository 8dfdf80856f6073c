package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Export Summary\n\n")
	fmt.Fprintf(&b, "Generated at %s\n\n", s.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Source\n\n")
	b.WriteString("| Item | Value |\n|---|---|\n")
	row(&b, "File", s.Source.Path)
	row(&b, "Container", orDash(s.Source.Container))
	row(&b, "Size", formatBytes(s.Source.Size))
	b.WriteString("\n")

	st := s.Stream
	b.WriteString("## Stream\n\n")
	b.WriteString("| Item | Value |\n|---|---|\n")
	row(&b, "Resolution", fmt.Sprintf("%dx%d", st.Width, st.Height))
	row(&b, "Frame rate", fmt.Sprintf("%d fps", st.FrameRate))
	row(&b, "Video streams", fmt.Sprint(st.VideoStreams))
	row(&b, "Audio streams", fmt.Sprint(st.AudioStreams))
	if st.AudioStreams > 0 {
		row(&b, "Sample rate", fmt.Sprintf("%d Hz", st.SampleRate))
	}
	row(&b, "Duration", fmt.Sprintf("%d s", st.Duration))
	b.WriteString("\n")

	ex := s.Export
	if ex.Command != "" {
		b.WriteString("## Export\n\n")
		b.WriteString("| Item | Value |\n|---|---|\n")
		row(&b, "Command", ex.Command)
		row(&b, "Output", orDash(ex.Output))
		if ex.Start > 0 {
			row(&b, "Start", ex.Start.String())
		}
		if ex.Frames > 0 || ex.Decoded > 0 {
			row(&b, "Images written", fmt.Sprint(ex.Frames))
		}
		if ex.Decoded > 0 {
			row(&b, "Frames decoded", fmt.Sprint(ex.Decoded))
		}
		if ex.AudioTime > 0 {
			row(&b, "Audio written", ex.AudioTime.Round(time.Millisecond).String())
		}
		row(&b, "Elapsed", ex.Elapsed.Round(time.Millisecond).String())
	}

	return b.String()
}

func row(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", name, strings.ReplaceAll(value, "|", "\\|"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatBytes renders n with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
