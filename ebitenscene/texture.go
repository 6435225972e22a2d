package ebitenscene

import "github.com/hajimehoshi/ebiten/v2"

// Texture is a renderer-owned GPU derivative of a Buffer, backed by an
// *ebiten.Image.
type Texture struct {
	img *ebiten.Image
}

// Size returns the texture's pixel dimensions, or (0, 0) once destroyed.
func (t *Texture) Size() (width, height int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Destroy drops the texture's reference to its backing image.
func (t *Texture) Destroy() {
	t.img = nil
}
