package containerdetect

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectFromBytes(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Container
		codec    string
	}{
		{"program stream", []byte{0x00, 0x00, 0x01, 0xBA, 0x44, 0x00, 0x04, 0x00, 0x04, 0x01, 0x01, 0x89}, ContainerMPEGPS, ""},
		{"elementary stream", []byte{0x00, 0x00, 0x01, 0xB3, 0x14, 0x00, 0xF0, 0x13}, ContainerMPEGES, "mpeg1"},
		{"text", []byte("hello, this is not video"), ContainerUnknown, ""},
		{"short", []byte{0x00, 0x00}, ContainerUnknown, ""},
		{"empty", []byte{}, ContainerUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DetectFromBytes(tt.data)
			if err != nil {
				t.Fatalf("DetectFromBytes failed: %v", err)
			}
			if result.Container != tt.expected {
				t.Errorf("container = %s, want %s", result.Container, tt.expected)
			}
			if result.VideoCodec != tt.codec {
				t.Errorf("codec = %q, want %q", result.VideoCodec, tt.codec)
			}
		})
	}
}

func TestResult_Playable(t *testing.T) {
	if !(Result{Container: ContainerMPEGPS}).Playable() {
		t.Error("expected mpeg-ps to be playable")
	}
	for _, c := range []Container{ContainerMPEGES, ContainerMP4, ContainerUnknown} {
		if (Result{Container: c}).Playable() {
			t.Errorf("expected %s not to be playable", c)
		}
	}
}

func TestResult_String(t *testing.T) {
	r := Result{Container: ContainerMP4, VideoCodec: "h264"}
	if got := r.String(); got != "mp4 container with h264 video" {
		t.Errorf("unexpected string %q", got)
	}

	r = Result{Container: ContainerUnknown}
	if got := r.String(); got != "unknown container" {
		t.Errorf("unexpected string %q", got)
	}
}

func TestDetectFromFile_Missing(t *testing.T) {
	_, err := DetectFromFile(filepath.Join(t.TempDir(), "missing.mpg"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDetectFromFile_RewindsAfterDetection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.mpg")
	data := []byte{0x00, 0x00, 0x01, 0xBA, 0x44, 0x00, 0x04, 0x00}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if _, err := DetectFromReader(f); err != nil {
		t.Fatalf("DetectFromReader failed: %v", err)
	}

	buf := make([]byte, 4)
	if _, err := f.Read(buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	if buf[3] != 0xBA {
		t.Error("expected reader to be rewound to the pack start code")
	}
}
