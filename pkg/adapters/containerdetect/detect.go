// Package containerdetect classifies media files by container so that open
// failures can say what a rejected file actually is.
package containerdetect

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Container represents a media container type.
type Container string

const (
	ContainerMPEGPS  Container = "mpeg-ps"
	ContainerMPEGES  Container = "mpeg-es"
	ContainerMP4     Container = "mp4"
	ContainerUnknown Container = "unknown"
)

var (
	packStartCode      = []byte{0x00, 0x00, 0x01, 0xBA}
	sequenceHeaderCode = []byte{0x00, 0x00, 0x01, 0xB3}
)

// Result describes a detected container and, for MP4, its first video codec.
type Result struct {
	Container  Container
	VideoCodec string
}

// String returns a short human-readable description.
func (r Result) String() string {
	if r.VideoCodec != "" {
		return fmt.Sprintf("%s container with %s video", r.Container, r.VideoCodec)
	}
	return fmt.Sprintf("%s container", r.Container)
}

// Playable reports whether an MPEG-1 program stream engine can open the container.
func (r Result) Playable() bool {
	return r.Container == ContainerMPEGPS
}

// DetectFromFile detects the container of the file at path.
func DetectFromFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{Container: ContainerUnknown}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return DetectFromReader(f)
}

// DetectFromReader detects the container from an io.ReadSeeker.
// The reader is rewound to the start before returning.
func DetectFromReader(reader io.ReadSeeker) (Result, error) {
	head := make([]byte, 12)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Result{Container: ContainerUnknown}, fmt.Errorf("read header: %w", err)
	}
	head = head[:n]

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return Result{Container: ContainerUnknown}, fmt.Errorf("seek: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, packStartCode):
		return Result{Container: ContainerMPEGPS}, nil
	case bytes.HasPrefix(head, sequenceHeaderCode):
		return Result{Container: ContainerMPEGES, VideoCodec: "mpeg1"}, nil
	case len(head) >= 8 && string(head[4:8]) == "ftyp":
		return detectMP4(reader)
	}

	return Result{Container: ContainerUnknown}, nil
}

// DetectFromBytes detects the container from in-memory data.
func DetectFromBytes(data []byte) (Result, error) {
	return DetectFromReader(bytes.NewReader(data))
}

func detectMP4(reader io.ReadSeeker) (Result, error) {
	result := Result{Container: ContainerMP4}

	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return result, fmt.Errorf("decode mp4: %w", err)
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return result, fmt.Errorf("seek: %w", err)
	}

	var traks []*mp4.TrakBox
	if mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil {
		traks = append(traks, mp4File.Init.Moov.Traks...)
	}
	if mp4File.Moov != nil {
		traks = append(traks, mp4File.Moov.Traks...)
	}

	for _, trak := range traks {
		if codec := videoCodecOf(trak); codec != "" {
			result.VideoCodec = codec
			break
		}
	}

	return result, nil
}

func videoCodecOf(trak *mp4.TrakBox) string {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return ""
	}

	if trak.Mdia.Hdlr.HandlerType != "vide" {
		return ""
	}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ""
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return "h264"
		case "av01":
			return "av1"
		case "hvc1", "hev1":
			return "hevc"
		case "mp4v":
			return "mpeg4"
		}
	}

	return ""
}
