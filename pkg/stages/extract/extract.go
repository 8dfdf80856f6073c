// Package extract implements the frame export stage.
package extract

import (
	"context"
	"fmt"

	"github.com/user/mpegctx/pkg/mpegctx"
	"github.com/user/mpegctx/pkg/pipeline"
	"github.com/user/mpegctx/pkg/ports"
)

// Stage decodes frames from a Source and either keeps copies or hands them to a sink.
type Stage struct {
	sink   ports.FrameSink
	logger ports.Logger
}

// NewStage creates a new extract stage. sink may be nil, in which case frames
// are returned in memory.
func NewStage(sink ports.FrameSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("extract"),
	}
}

// Execute decodes until end of stream, input.Max kept frames, or cancellation.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractResult, error) {
	result := pipeline.ExtractResult{Frames: []pipeline.Frame{}}

	if input.Source == nil {
		return result, fmt.Errorf("extract: no source")
	}
	every := input.Every
	if every < 1 {
		every = 1
	}

	if input.Start > 0 {
		found, err := input.Source.Seek(input.Start.Seconds(), input.Exact)
		if err != nil {
			return result, fmt.Errorf("extract: seek: %w", err)
		}
		if !found {
			s.logger.Warn("No frame found at %s", input.Start)
			return result, nil
		}
	}

	for input.Max <= 0 || len(result.Frames) < input.Max {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		img, ok, err := input.Source.DecodeVideo()
		if err != nil {
			return result, fmt.Errorf("extract: decode frame %d: %w", result.Decoded, err)
		}
		if !ok {
			break
		}

		index := result.Decoded
		result.Decoded++
		if index%every != 0 {
			continue
		}

		pos, err := input.Source.Position()
		if err != nil {
			return result, fmt.Errorf("extract: position: %w", err)
		}

		frame := pipeline.Frame{Index: index, Time: pos}
		if s.sink != nil {
			path, err := s.sink.SaveFrame(index, img)
			if err != nil {
				return result, fmt.Errorf("extract: save frame %d: %w", index, err)
			}
			frame.Path = path
		} else {
			frame.Image = mpegctx.CloneRaster(img)
		}

		s.logger.Debug("Extracted frame %d at %s", index, pos)
		result.Frames = append(result.Frames, frame)
	}

	s.logger.Info("Extracted %d of %d decoded frames", len(result.Frames), result.Decoded)
	return result, nil
}

var _ pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractResult] = (*Stage)(nil)
