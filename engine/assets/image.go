package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// LoadImage decodes an image file into NRGBA pixels, the layout texture
// uploads expect.
func LoadImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image '%s': %w", path, err)
	}
	if nrgba, ok := src.(*image.NRGBA); ok {
		return nrgba, nil
	}
	dst := image.NewNRGBA(src.Bounds())
	draw.Copy(dst, src.Bounds().Min, src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// ScaleImage resamples an image to the given size with Catmull-Rom
// filtering. Used to fit oversized textures into device limits.
func ScaleImage(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// LoadImageFitted loads an image and scales it down, keeping the aspect
// ratio, so that neither dimension exceeds maxDim. Images already
// within the limit are returned untouched. Texture and font-page
// uploads go through this to stay inside device size limits.
func LoadImageFitted(path string, maxDim int) (*image.NRGBA, error) {
	if maxDim <= 0 {
		return nil, fmt.Errorf("invalid maximum dimension %d", maxDim)
	}
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img, nil
	}
	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return ScaleImage(img, w, h), nil
}
