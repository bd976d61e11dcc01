// Package imaging produces a lightweight, purely local description of an
// uploaded image: resolution and average color. It is an educational
// fallback that works without any model API.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Describe decodes the image and reports its resolution and average color.
func Describe(data []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	r, g, b := averageColor(img)

	return fmt.Sprintf(
		"Educational image description: %s image, resolution %dx%d, average color RGB(%d, %d, %d). Note: this is not a medical diagnosis.",
		format, width, height, r, g, b,
	), nil
}

// averageColor samples the image on a coarse grid. Sampling keeps large
// uploads cheap without meaningfully changing the average.
func averageColor(img image.Image) (uint8, uint8, uint8) {
	bounds := img.Bounds()
	stepX := bounds.Dx() / 64
	if stepX < 1 {
		stepX = 1
	}
	stepY := bounds.Dy() / 64
	if stepY < 1 {
		stepY = 1
	}

	var sumR, sumG, sumB, samples uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(b >> 8)
			samples++
		}
	}
	if samples == 0 {
		return 0, 0, 0
	}
	return uint8(sumR / samples), uint8(sumG / samples), uint8(sumB / samples)
}
