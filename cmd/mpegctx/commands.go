package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/user/mpegctx/pkg/adapters/containerdetect"
	"github.com/user/mpegctx/pkg/adapters/framesink"
	"github.com/user/mpegctx/pkg/adapters/ggrenderer"
	"github.com/user/mpegctx/pkg/adapters/osfilesystem"
	"github.com/user/mpegctx/pkg/adapters/wavwriter"
	"github.com/user/mpegctx/pkg/config"
	"github.com/user/mpegctx/pkg/mpegctx"
	"github.com/user/mpegctx/pkg/pipeline"
	"github.com/user/mpegctx/pkg/ports"
	"github.com/user/mpegctx/pkg/stages/contact"
	"github.com/user/mpegctx/pkg/stages/extract"
	"github.com/user/mpegctx/pkg/summarizer"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     l10n.T("Print stream properties"),
		ArgsUsage: "<file.mpg>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: l10n.T("Print JSON instead of YAML")},
		},
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			path, err := inputPath(c)
			if err != nil {
				return err
			}

			dec, err := mpegctx.Open(path, e.cfg.ToOptions(e.log))
			if err != nil {
				return err
			}
			defer dec.Release()

			info, err := dec.Info()
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			enc := yaml.NewEncoder(c.App.Writer)
			defer enc.Close()
			return enc.Encode(info)
		},
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Identify the container of a file"),
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			path, err := inputPath(c)
			if err != nil {
				return err
			}

			result, err := containerdetect.DetectFromFile(path)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, result.String())
			if !result.Playable() {
				return cli.Exit(l10n.F("%s cannot be decoded", path), 1)
			}
			return nil
		},
	}
}

func framesCommand() *cli.Command {
	return &cli.Command{
		Name:      "frames",
		Usage:     l10n.T("Export video frames as images"),
		ArgsUsage: "<file.mpg>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "frames", Usage: l10n.T("Output directory")},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: l10n.T("Image format (png, jpg)")},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("JPEG quality (1-100)")},
			&cli.IntFlag{Name: "every", Aliases: []string{"n"}, Usage: l10n.T("Keep every Nth frame")},
			&cli.IntFlag{Name: "max", Aliases: []string{"m"}, Usage: l10n.T("Maximum number of frames, 0 for all")},
			&cli.Float64Flag{Name: "start", Aliases: []string{"s"}, Usage: l10n.T("Start time in seconds")},
			&cli.BoolFlag{Name: "exact", Usage: l10n.T("Seek exactly instead of to the previous intra frame")},
			summaryFlag(),
		},
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			path, err := inputPath(c)
			if err != nil {
				return err
			}
			applyExportFlags(c, &e.cfg)
			if err := e.cfg.Validate(); err != nil {
				return err
			}

			opts := e.cfg.ToOptions(e.log)
			opts.EnableVideo = true
			opts.EnableAudio = false
			dec, err := mpegctx.Open(path, opts)
			if err != nil {
				return err
			}
			defer dec.Release()

			began := time.Now()
			fs := osfilesystem.New()
			sink := framesink.New(c.String("out"), fs, ggrenderer.New(e.log), e.cfg.ImageFormat(), e.cfg.Export.JPEGQuality)

			start := seconds(c.Float64("start"))
			result, err := extract.NewStage(sink, e.log).Execute(c.Context, pipeline.ExtractInput{
				Source: dec,
				Start:  start,
				Exact:  e.cfg.ExactSeek,
				Every:  e.cfg.Export.Every,
				Max:    e.cfg.Export.MaxFrames,
			})
			if err != nil {
				return err
			}

			e.log.Info("Exported %d frames to %s", len(result.Frames), c.String("out"))
			return writeSummary(c, fs, path, dec, summarizer.ExportInfo{
				Command: "frames",
				Output:  c.String("out"),
				Start:   start,
				Frames:  len(result.Frames),
				Decoded: result.Decoded,
				Elapsed: time.Since(began),
			})
		},
	}
}

func audioCommand() *cli.Command {
	return &cli.Command{
		Name:      "audio",
		Usage:     l10n.T("Export the audio track as WAV"),
		ArgsUsage: "<file.mpg>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "audio.wav", Usage: l10n.T("Output WAV file")},
			&cli.IntFlag{Name: "stream", Usage: l10n.T("Audio stream index (0-3)")},
			&cli.Float64Flag{Name: "start", Aliases: []string{"s"}, Usage: l10n.T("Start time in seconds")},
			summaryFlag(),
		},
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			path, err := inputPath(c)
			if err != nil {
				return err
			}
			if c.IsSet("stream") {
				e.cfg.AudioStream = c.Int("stream")
			}
			if err := e.cfg.Validate(); err != nil {
				return err
			}

			opts := e.cfg.ToOptions(e.log)
			opts.EnableVideo = false
			opts.EnableAudio = true
			dec, err := mpegctx.Open(path, opts)
			if err != nil {
				return err
			}
			defer dec.Release()

			began := time.Now()
			fs := osfilesystem.New()
			frames, err := exportAudio(c.Context, dec, fs, c.String("out"), seconds(c.Float64("start")), e.log)
			if err != nil {
				return err
			}

			info, err := dec.Info()
			if err != nil {
				return err
			}
			return writeSummary(c, fs, path, dec, summarizer.ExportInfo{
				Command:   "audio",
				Output:    c.String("out"),
				Start:     seconds(c.Float64("start")),
				AudioTime: time.Duration(frames) * time.Second / time.Duration(info.SampleRate),
				Elapsed:   time.Since(began),
			})
		},
	}
}

// exportAudio decodes every remaining audio block of dec into a WAV file and
// returns the number of stereo sample frames written. Blocks that end before
// start are decoded and dropped, since the engine can only seek on video.
func exportAudio(ctx context.Context, dec *mpegctx.Context, fs ports.FileSystem, out string, start time.Duration, log ports.Logger) (int, error) {
	info, err := dec.Info()
	if err != nil {
		return 0, err
	}
	if info.AudioStreams == 0 || info.SampleRate <= 0 {
		return 0, cli.Exit(l10n.T("Stream has no audio"), 1)
	}

	f, err := fs.Create(out)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	w, err := wavwriter.New(f, info.SampleRate)
	if err != nil {
		return 0, err
	}

	blockLen, err := dec.BlockLen()
	if err != nil {
		return 0, err
	}
	blockTime := time.Duration(blockLen/2) * time.Second / time.Duration(info.SampleRate)

	for {
		if err := ctx.Err(); err != nil {
			return w.Frames(), err
		}
		samples, ok, err := dec.DecodeAudio()
		if err != nil {
			return w.Frames(), err
		}
		if !ok {
			break
		}
		if start > 0 {
			at, err := dec.Position()
			if err != nil {
				return w.Frames(), err
			}
			if at+blockTime <= start {
				continue
			}
		}
		if err := w.WriteSamples(samples); err != nil {
			return w.Frames(), err
		}
	}

	if err := w.Close(); err != nil {
		return w.Frames(), err
	}

	log.Info("Wrote %d sample frames at %d Hz to %s", w.Frames(), info.SampleRate, out)
	return w.Frames(), f.Close()
}

func contactCommand() *cli.Command {
	return &cli.Command{
		Name:      "contact",
		Usage:     l10n.T("Render a contact sheet of evenly spaced frames"),
		ArgsUsage: "<file.mpg>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: ".", Usage: l10n.T("Output directory")},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: l10n.T("Image format (png, jpg)")},
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: l10n.T("Number of thumbnails")},
			&cli.IntFlag{Name: "columns", Usage: l10n.T("Grid columns")},
			&cli.IntFlag{Name: "width", Aliases: []string{"w"}, Usage: l10n.T("Thumbnail width in pixels")},
			&cli.IntFlag{Name: "gap", Usage: l10n.T("Gap between thumbnails in pixels")},
			&cli.StringFlag{Name: "background", Usage: l10n.T("Background color (hex)")},
			summaryFlag(),
		},
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			path, err := inputPath(c)
			if err != nil {
				return err
			}
			applyContactFlags(c, &e.cfg)
			if err := e.cfg.Validate(); err != nil {
				return err
			}

			opts := e.cfg.ToOptions(e.log)
			opts.EnableVideo = true
			opts.EnableAudio = false
			dec, err := mpegctx.Open(path, opts)
			if err != nil {
				return err
			}
			defer dec.Release()

			began := time.Now()
			fs := osfilesystem.New()
			renderer := ggrenderer.New(e.log)
			sink := framesink.New(c.String("out"), fs, renderer, e.cfg.ImageFormat(), e.cfg.Export.JPEGQuality)

			cc := e.cfg.Contact
			result, err := contact.NewStage(renderer, sink, e.log).Execute(c.Context, pipeline.ContactInput{
				Source:     dec,
				Count:      cc.Count,
				Columns:    cc.Columns,
				ThumbWidth: cc.ThumbWidth,
				Gap:        cc.Gap,
				Exact:      e.cfg.ExactSeek,
				Background: config.ParseColor(cc.BackgroundColor),
				LabelColor: config.ParseColor(cc.LabelColor),
				LabelFont:  cc.Font,
			})
			if err != nil {
				return err
			}

			found := 0
			for _, th := range result.Thumbs {
				if th.Found {
					found++
				}
			}

			e.log.Info("Output saved to %s", result.Path)
			return writeSummary(c, fs, path, dec, summarizer.ExportInfo{
				Command: "contact",
				Output:  result.Path,
				Frames:  found,
				Elapsed: time.Since(began),
			})
		},
	}
}

func applyExportFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("format") {
		cfg.Export.Format = c.String("format")
	}
	if c.IsSet("quality") {
		cfg.Export.JPEGQuality = c.Int("quality")
	}
	if c.IsSet("every") {
		cfg.Export.Every = c.Int("every")
	}
	if c.IsSet("max") {
		cfg.Export.MaxFrames = c.Int("max")
	}
	if c.IsSet("exact") {
		cfg.ExactSeek = c.Bool("exact")
	}
}

func applyContactFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("format") {
		cfg.Export.Format = c.String("format")
	}
	if c.IsSet("count") {
		cfg.Contact.Count = c.Int("count")
	}
	if c.IsSet("columns") {
		cfg.Contact.Columns = c.Int("columns")
	}
	if c.IsSet("width") {
		cfg.Contact.ThumbWidth = c.Int("width")
	}
	if c.IsSet("gap") {
		cfg.Contact.Gap = c.Int("gap")
	}
	if c.IsSet("background") {
		cfg.Contact.BackgroundColor = c.String("background")
	}
}

func summaryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "summary",
		Usage: l10n.T("Write a Markdown summary to this path"),
	}
}

// writeSummary writes a Markdown report when --summary is set.
func writeSummary(c *cli.Context, fs ports.FileSystem, input string, dec *mpegctx.Context, export summarizer.ExportInfo) error {
	out := c.String("summary")
	if out == "" {
		return nil
	}

	info, err := dec.Info()
	if err != nil {
		return err
	}

	var size int64
	if st, err := os.Stat(input); err == nil {
		size = st.Size()
	}
	container := ""
	if result, err := containerdetect.DetectFromFile(input); err == nil {
		container = result.String()
	}

	summary := summarizer.NewBuilder().
		WithSource(input, container, size).
		WithStream(info).
		WithExport(export).
		Build()

	return summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs).Write(out, summary)
}

// seconds converts a flag value to a Duration.
func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
