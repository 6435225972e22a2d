package ebitenscene

import (
	"image"

	"github.com/hearthglass/scenekit"
)

// Buffer adapts a Go image.Image into a scenekit.Buffer. It is
// reference-counted the way a platform buffer is: Lock increments,
// Unlock decrements and drops the backing image once the count reaches
// zero.
type Buffer struct {
	img  image.Image
	w, h int
	refs int
}

// NewBuffer wraps img as a scenekit.Buffer with one initial reference.
func NewBuffer(img image.Image) *Buffer {
	b := img.Bounds()
	return &Buffer{img: img, w: b.Dx(), h: b.Dy(), refs: 1}
}

// Lock increments the reference count and returns the same buffer.
func (b *Buffer) Lock() scenekit.Buffer {
	b.refs++
	return b
}

// Unlock decrements the reference count, releasing the backing image
// once it reaches zero.
func (b *Buffer) Unlock() {
	b.refs--
	if b.refs <= 0 {
		b.img = nil
	}
}

// Size returns the buffer's intrinsic pixel dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.w, b.h
}

// Image returns the buffer's backing image, or nil once it has been
// fully unlocked.
func (b *Buffer) Image() image.Image {
	return b.img
}
