package mpegctx

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaster(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"typical", 352, 288, false},
		{"empty", 0, 0, false},
		{"max", 4095, 16, false},
		{"negative", -1, 10, true},
		{"too tall", 16, 4096, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newRaster(tt.w, tt.h)
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidDimensions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w*4, r.Stride)
			assert.Len(t, r.Pix, tt.w*tt.h*4)
		})
	}
}

func TestResetRaster(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {17, 9}} {
		r := image.NewRGBA(image.Rect(0, 0, size[0], size[1]))
		resetRaster(r)
		assertAllFill(t, r.Pix)
	}

	resetRaster(image.NewRGBA(image.Rect(0, 0, 0, 0)))
}

func TestCloneRaster(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Pix[0] = 42

	dst := CloneRaster(src)
	require.NotNil(t, dst)
	assert.Equal(t, src.Rect, dst.Rect)
	assert.Equal(t, src.Pix, dst.Pix)

	src.Pix[0] = 7
	assert.Equal(t, uint8(42), dst.Pix[0])

	assert.Nil(t, CloneRaster(nil))
}
