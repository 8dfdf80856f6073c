package mpegctx

// DecodeAudio decodes the next block of interleaved stereo samples.
//
// Every returned block is a fresh slice of BlockLen samples, widened from the
// engine's float32 values in left/right order. At end of stream, or when audio
// decoding is disabled, it returns (nil, false, nil).
func (c *Context) DecodeAudio() (samples []float64, ok bool, err error) {
	h, err := c.acquire()
	if err != nil {
		return nil, false, err
	}
	defer h.mu.Unlock()

	decoded := h.engine.DecodeAudio()
	if decoded == nil {
		return nil, false, nil
	}

	samples = make([]float64, h.engine.SamplesPerBlock()*2)
	n := len(samples)
	if len(decoded) < n {
		// Short engine blocks leave a zero tail so the length stays constant.
		n = len(decoded)
	}
	for i := 0; i < n; i++ {
		samples[i] = float64(decoded[i])
	}

	return samples, true, nil
}

// BlockLen returns the length of every block DecodeAudio returns.
func (c *Context) BlockLen() (int, error) {
	h, err := c.acquire()
	if err != nil {
		return 0, err
	}
	defer h.mu.Unlock()

	return h.engine.SamplesPerBlock() * 2, nil
}
