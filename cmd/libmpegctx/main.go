// Command libmpegctx builds mpegctx as a C shared library:
//
//	go build -buildmode=c-shared -o libmpegctx.so ./cmd/libmpegctx
//
// Hosts hold opaque tokens. Every function validates its token, so a released
// or foreign token fails with -1 instead of touching freed state.
package main

/*
#include <stddef.h>
#include <stdint.h>

typedef struct {
	int width;
	int height;
	int video_streams;
	int audio_streams;
	int fps;
	int sample_rate;
	int interval_time;
	int duration;
} mpegctx_info_t;
*/
import "C"

import (
	"unsafe"
)

func main() {}

//export mpegctx_open
func mpegctx_open(path *C.char, video, audio, stream C.int) unsafe.Pointer {
	token, err := openHandle(C.GoString(path), video != 0, audio != 0, int(stream))
	setLastError(err)
	return token
}

//export mpegctx_info
func mpegctx_info(token unsafe.Pointer, out *C.mpegctx_info_t) C.int {
	info, err := infoOf(token)
	if err != nil {
		setLastError(err)
		return -1
	}
	if out == nil {
		return 0
	}
	out.width = C.int(info.Width)
	out.height = C.int(info.Height)
	out.video_streams = C.int(info.VideoStreams)
	out.audio_streams = C.int(info.AudioStreams)
	out.fps = C.int(info.FrameRate)
	out.sample_rate = C.int(info.SampleRate)
	out.interval_time = C.int(info.CurrentTime)
	out.duration = C.int(info.Duration)
	return 0
}

//export mpegctx_decode_video
func mpegctx_decode_video(token unsafe.Pointer, dst *C.uint8_t, size C.size_t) C.int {
	var buf []byte
	if dst != nil {
		buf = unsafe.Slice((*byte)(unsafe.Pointer(dst)), int(size))
	}
	return C.int(decodeVideoInto(token, buf))
}

//export mpegctx_decode_audio
func mpegctx_decode_audio(token unsafe.Pointer, dst *C.double, size C.size_t) C.int {
	var buf []float64
	if dst != nil {
		buf = unsafe.Slice((*float64)(unsafe.Pointer(dst)), int(size))
	}
	return C.int(decodeAudioInto(token, buf))
}

//export mpegctx_seek
func mpegctx_seek(token unsafe.Pointer, seconds C.double, exact C.int) C.int {
	return C.int(seekTo(token, float64(seconds), exact != 0))
}

//export mpegctx_release
func mpegctx_release(token unsafe.Pointer) {
	releaseHandle(token)
}

// mpegctx_last_error returns a malloc'd copy of the last error message, or NULL.
// The caller frees it.
//
//export mpegctx_last_error
func mpegctx_last_error() *C.char {
	msg := lastError()
	if msg == "" {
		return nil
	}
	return C.CString(msg)
}
