package ebitenscene

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hearthglass/scenekit"
)

// whitePixel is a lazily-initialized 1x1 white pixel image used to draw
// untextured solid rectangles.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// Renderer draws scenekit's commit pipeline onto one Output's Target.
type Renderer struct {
	output  *Output
	current *ebiten.Image
}

// NewRenderer returns a Renderer bound to output's framebuffer.
func NewRenderer(output *Output) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) Begin(width, height int) {
	b := r.output.Target.Bounds()
	if b.Dx() != width || b.Dy() != height {
		r.output.Target = ebiten.NewImage(width, height)
	}
	r.current = r.output.Target
}

func (r *Renderer) End() {
	r.current = nil
}

func (r *Renderer) Scissor(box *scenekit.Box) {
	if box == nil {
		r.current = r.output.Target
		return
	}
	rect := image.Rect(box.X, box.Y, box.X+box.Width, box.Y+box.Height)
	r.current = r.output.Target.SubImage(rect).(*ebiten.Image)
}

func (r *Renderer) Clear(clr [4]float32) {
	r.current.Fill(floatColor(clr))
}

func (r *Renderer) RenderRect(box scenekit.Box, clr [4]float32, matrix [9]float32) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(box.Width), float64(box.Height))
	op.GeoM.Translate(float64(box.X), float64(box.Y))
	op.GeoM.Concat(geoMFromMat3(matrix))

	a := float64(clr[3])
	op.ColorScale.Scale(float32(float64(clr[0])*a), float32(float64(clr[1])*a), float32(float64(clr[2])*a), clr[3])

	r.current.DrawImage(ensureWhitePixel(), &op)
}

func (r *Renderer) RenderSubTexture(tex scenekit.Texture, srcBox scenekit.FBox, matrix [9]float32, alpha float32) {
	t, ok := tex.(*Texture)
	if !ok || t.img == nil {
		return
	}

	rect := image.Rect(
		int(srcBox.X), int(srcBox.Y),
		int(srcBox.X+srcBox.Width), int(srcBox.Y+srcBox.Height),
	)
	sub := t.img.SubImage(rect).(*ebiten.Image)

	var op ebiten.DrawImageOptions
	op.GeoM = geoMFromMat3(matrix)
	op.ColorScale.Scale(alpha, alpha, alpha, alpha)

	r.current.DrawImage(sub, &op)
}

func (r *Renderer) TextureFromBuffer(buffer scenekit.Buffer) scenekit.Texture {
	b, ok := buffer.(*Buffer)
	if !ok || b.img == nil {
		return nil
	}
	return &Texture{img: ebiten.NewImageFromImage(b.img)}
}

// geoMFromMat3 converts a row-major 3x3 affine matrix (bottom row
// 0, 0, 1) into an ebiten.GeoM.
func geoMFromMat3(m [9]float32) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(m[0]))
	g.SetElement(0, 1, float64(m[1]))
	g.SetElement(0, 2, float64(m[2]))
	g.SetElement(1, 0, float64(m[3]))
	g.SetElement(1, 1, float64(m[4]))
	g.SetElement(1, 2, float64(m[5]))
	return g
}

func floatColor(c [4]float32) color.Color {
	return color.NRGBA64{
		R: clampChannel(c[0]),
		G: clampChannel(c[1]),
		B: clampChannel(c[2]),
		A: clampChannel(c[3]),
	}
}

func clampChannel(v float32) uint16 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xffff
	default:
		return uint16(v * 0xffff)
	}
}
