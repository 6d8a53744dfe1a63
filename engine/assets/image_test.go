package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadImageReturnsNRGBA(t *testing.T) {
	path := writeTestPNG(t, 4, 4)

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestLoadImageMissingFileFails(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestScaleImageResamplesToRequestedSize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))

	dst := ScaleImage(src, 2, 2)

	assert.Equal(t, 2, dst.Bounds().Dx())
	assert.Equal(t, 2, dst.Bounds().Dy())
}

func TestLoadImageFittedDownscalesKeepingAspect(t *testing.T) {
	path := writeTestPNG(t, 8, 4)

	img, err := LoadImageFitted(path, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestLoadImageFittedLeavesSmallImagesUntouched(t *testing.T) {
	path := writeTestPNG(t, 4, 4)

	img, err := LoadImageFitted(path, 16)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}
