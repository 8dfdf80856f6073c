// Package mpegctx owns MPEG-1 decoder contexts: one engine plus one reusable
// raster per open stream, exposed through five operations.
//
// # Operations
//
//	ctx, err := mpegctx.Open("clip.mpg", mpegctx.DefaultOptions())
//	defer ctx.Release()
//
//	info, _ := ctx.Info()
//	for {
//	    frame, ok, err := ctx.DecodeVideo()
//	    if err != nil || !ok {
//	        break
//	    }
//	    show(frame) // frame is overwritten by the next call
//	}
//	samples, ok, _ := ctx.DecodeAudio()
//	found, _ := ctx.Seek(1.5, true)
//
// End of stream is reported through the ok result, never as an error.
//
// # Raster reuse
//
// DecodeVideo returns the same *image.RGBA on every call. Before each decode all
// bytes are reset to 255, so once the stream has ended the raster reads as opaque
// white rather than the last frame. Use CloneRaster to keep a frame.
//
// # Lifetime
//
// A Context is released either by Release or, if the caller drops it, by a
// cleanup registered with the garbage collector. Both paths go through the same
// idempotent teardown. Every operation on a released Context fails with
// ErrInvalidContext.
//
// # Concurrency
//
// Operations on one Context are serialized by a mutex. Distinct Contexts are
// independent. Audio and video are not synchronized with each other; callers use
// Info().CurrentTime to pace them.
package mpegctx
