package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFit_DownscalesWideImages(t *testing.T) {
	p := NewProcessor(0)
	res, err := p.Fit(pngBytes(t, 400, 200), 100)
	require.NoError(t, err)

	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 50, res.Height)
	assert.Equal(t, "png", res.Format)
	assert.Equal(t, ".png", res.Ext())

	cfg, _, err := image.DecodeConfig(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
}

func TestFit_KeepsSmallImagesUntouched(t *testing.T) {
	data := pngBytes(t, 50, 20)
	res, err := NewProcessor(90).Fit(data, 100)
	require.NoError(t, err)
	assert.Equal(t, data, res.Data)
	assert.Equal(t, "image/png", res.ContentType)
}

func TestFit_RejectsGarbage(t *testing.T) {
	_, err := NewProcessor(90).Fit([]byte("not an image"), 100)
	assert.Error(t, err)
}
