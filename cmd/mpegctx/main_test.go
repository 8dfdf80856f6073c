package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/user/mpegctx/pkg/adapters/logger"
	"github.com/user/mpegctx/pkg/mocks"
	"github.com/user/mpegctx/pkg/mpegctx"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.RunContext(context.Background(), append([]string{"mpegctx"}, args...))
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("expected version in output, got %q", out)
	}
}

func TestProbeCommand(t *testing.T) {
	dir := t.TempDir()

	ps := filepath.Join(dir, "clip.mpg")
	if err := os.WriteFile(ps, []byte{0x00, 0x00, 0x01, 0xBA, 0x44, 0, 0, 0, 0, 0, 0, 0}, 0644); err != nil {
		t.Fatal(err)
	}
	out, err := runApp(t, "probe", ps)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if !strings.Contains(out, "mpeg-ps container") {
		t.Errorf("unexpected output %q", out)
	}

	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("just some text here"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err = runApp(t, "probe", txt)
	if err == nil {
		t.Error("expected probe to fail for a text file")
	}
	if !strings.Contains(out, "unknown container") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCommandsRequireInput(t *testing.T) {
	for _, cmd := range []string{"info", "probe", "frames", "audio", "contact"} {
		if _, err := runApp(t, cmd); err == nil {
			t.Errorf("%s: expected error without input", cmd)
		}
	}
}

func TestInfoCommandMissingFile(t *testing.T) {
	_, err := runApp(t, "-Q", "info", filepath.Join(t.TempDir(), "absent.mpg"))
	if err == nil || !strings.Contains(err.Error(), "absent.mpg") {
		t.Errorf("expected open error naming the file, got %v", err)
	}
}

func TestInfoCommandBadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(cfg, []byte("audio_stream: 9"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := runApp(t, "--config", cfg, "info", "clip.mpg")
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestExportAudio(t *testing.T) {
	engine := mocks.NewEngine()
	engine.Blocks = 3
	opts := mpegctx.DefaultOptions()
	opts.Opener = &mocks.Opener{Engine: engine}
	dec, err := mpegctx.Open("clip.mpg", opts)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer dec.Release()

	fs := mocks.NewFileSystem()
	frames, err := exportAudio(context.Background(), dec, fs, "out.wav", 0, logger.NewNoop())
	if err != nil {
		t.Fatalf("exportAudio failed: %v", err)
	}
	if frames != 3*1152 {
		t.Errorf("frames = %d, want %d", frames, 3*1152)
	}

	data, ok := fs.GetFile("out.wav")
	if !ok {
		t.Fatal("expected out.wav to be written")
	}
	wantData := 3 * 1152 * 2 * 2
	if len(data) != 44+wantData {
		t.Fatalf("got %d bytes, want %d", len(data), 44+wantData)
	}
	if got := binary.LittleEndian.Uint32(data[40:]); got != uint32(wantData) {
		t.Errorf("data size = %d, want %d", got, wantData)
	}
	if got := binary.LittleEndian.Uint32(data[24:]); got != 44100 {
		t.Errorf("sample rate = %d, want 44100", got)
	}
}

func TestExportAudioNoTrack(t *testing.T) {
	engine := mocks.NewEngine()
	engine.AudioStreams = 0
	opts := mpegctx.DefaultOptions()
	opts.Opener = &mocks.Opener{Engine: engine}
	dec, err := mpegctx.Open("clip.mpg", opts)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer dec.Release()

	if _, err := exportAudio(context.Background(), dec, mocks.NewFileSystem(), "out.wav", 0, logger.NewNoop()); err == nil {
		t.Error("expected error for stream without audio")
	}
}

func TestExportAudioFromStart(t *testing.T) {
	engine := mocks.NewEngine()
	engine.Blocks = 10
	opts := mpegctx.DefaultOptions()
	opts.EnableVideo = false
	opts.Opener = &mocks.Opener{Engine: engine}
	dec, err := mpegctx.Open("clip.mpg", opts)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer dec.Release()

	// Start halfway into the fourth block: the first three end before it.
	block := 1152 * time.Second / 44100
	start := 3*block + block/2

	fs := mocks.NewFileSystem()
	frames, err := exportAudio(context.Background(), dec, fs, "tail.wav", start, logger.NewNoop())
	if err != nil {
		t.Fatalf("exportAudio failed: %v", err)
	}
	if frames != 7*1152 {
		t.Errorf("frames = %d, want %d", frames, 7*1152)
	}
	if len(engine.SeekCalls) != 0 {
		t.Errorf("expected no engine seeks, got %v", engine.SeekCalls)
	}
	if engine.AudioCalls != 11 {
		t.Errorf("expected every block decoded, got %d calls", engine.AudioCalls)
	}
}
