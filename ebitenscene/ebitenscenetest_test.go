package ebitenscene

import (
	"image"
	"image/color"
)

// solidImage returns a w x h fully-opaque white image.Image for tests
// that need a concrete Buffer backing without a real GPU texture.
func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}
