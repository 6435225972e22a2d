package ebitenscene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hearthglass/scenekit"
)

// Output adapts a single window/surface to scenekit.Output, and doubles
// as its own scenekit.DamageAccumulator since there is only ever one
// pending-damage region to track per window.
type Output struct {
	// Target is the framebuffer scenekit composites onto. Reassigned by
	// Renderer.Begin if the raw resolution changes.
	Target *ebiten.Image

	width, height int
	transform     scenekit.OutputTransform
	scale         float32

	pending  *scenekit.Region
	staged   scenekit.Buffer
	attached bool

	commitListeners []func(scenekit.OutputCommitField)
	modeListeners   []func()
}

// NewOutput creates a window-backed output of the given raw pixel size
// and scale, using scenekit.TransformNormal.
func NewOutput(width, height int, scale float32) *Output {
	return &Output{
		Target:  ebiten.NewImage(width, height),
		width:   width,
		height:  height,
		scale:   scale,
		pending: scenekit.NewRegion(),
	}
}

// SetMode resizes or re-transforms the output, firing OnModeChange
// listeners. Scenekit recomputes output membership and damage in
// response.
func (o *Output) SetMode(width, height int, transform scenekit.OutputTransform, scale float32) {
	o.width, o.height, o.transform, o.scale = width, height, transform, scale
	for _, fn := range o.modeListeners {
		if fn != nil {
			fn()
		}
	}
}

func (o *Output) RawResolution() (width, height int) {
	return o.width, o.height
}

func (o *Output) TransformedResolution() (width, height int) {
	if o.transform.SwapsAxes() {
		return o.height, o.width
	}
	return o.width, o.height
}

func (o *Output) EffectiveResolution() (width, height int) {
	w, h := o.TransformedResolution()
	if o.scale <= 0 {
		return w, h
	}
	return int(float32(w) / o.scale), int(float32(h) / o.scale)
}

func (o *Output) Transform() scenekit.OutputTransform {
	return o.transform
}

func (o *Output) Scale() float32 {
	return o.scale
}

func (o *Output) TransformMatrix() [9]float32 {
	return outputTransformMatrix(o.transform)
}

func (o *Output) AttachBuffer(buffer scenekit.Buffer) bool {
	o.staged = buffer
	o.attached = true
	return true
}

func (o *Output) Test() bool {
	return o.attached
}

func (o *Output) Commit() bool {
	if !o.attached {
		return false
	}
	if b, ok := o.staged.(*Buffer); ok && b.img != nil {
		o.Target = ebiten.NewImageFromImage(b.img)
	}
	o.attached = false
	o.staged = nil
	return true
}

func (o *Output) Rollback() {
	o.attached = false
	o.staged = nil
}

func (o *Output) SetDamage(region *scenekit.Region) {
	// The window's whole framebuffer is always presented; there is no
	// separate "front buffer damage" bookkeeping to do for a demo window.
}

func (o *Output) ScheduleFrame() {
	// Ebiten already calls Draw every tick at the monitor's refresh rate,
	// so there is no separate frame-callback to arm.
}

func (o *Output) RenderSoftwareCursors(region *scenekit.Region) {
	// No software cursor support in the demo adapter.
}

func (o *Output) OnCommit(fn func(changed scenekit.OutputCommitField)) (unsubscribe func()) {
	o.commitListeners = append(o.commitListeners, fn)
	idx := len(o.commitListeners) - 1
	return func() {
		o.commitListeners[idx] = nil
	}
}

func (o *Output) OnModeChange(fn func()) (unsubscribe func()) {
	o.modeListeners = append(o.modeListeners, fn)
	idx := len(o.modeListeners) - 1
	return func() {
		o.modeListeners[idx] = nil
	}
}

// Add merges region into the pending damage.
func (o *Output) Add(region *scenekit.Region) {
	o.pending.Add(region)
}

// AddBox merges a single rectangle into the pending damage.
func (o *Output) AddBox(box scenekit.Box) {
	o.pending.AddBox(box)
}

// AddWhole marks the entire raw framebuffer as damaged.
func (o *Output) AddWhole() {
	o.pending.AddBox(scenekit.Box{Width: o.width, Height: o.height})
}

// Current returns the damage accumulated since the last AttachRender.
func (o *Output) Current() *scenekit.Region {
	return o.pending
}

// AttachRender hands off the pending damage for rendering and resets
// the accumulator. Unlike a double-buffered GPU output, a demo window
// has no previous-frame damage to carry forward.
func (o *Output) AttachRender() (needsFrame bool, damage *scenekit.Region, ok bool) {
	if o.pending.Empty() {
		return false, scenekit.NewRegion(), true
	}
	damage = o.pending.Copy()
	o.pending = scenekit.NewRegion()
	return true, damage, true
}

// outputTransformMatrix returns the row-major 3x3 matrix for one of the
// eight Wayland output-transform variants.
func outputTransformMatrix(t scenekit.OutputTransform) [9]float32 {
	switch t {
	case scenekit.Transform90:
		return [9]float32{0, -1, 1, 1, 0, 0, 0, 0, 1}
	case scenekit.Transform180:
		return [9]float32{-1, 0, 1, 0, -1, 1, 0, 0, 1}
	case scenekit.Transform270:
		return [9]float32{0, 1, 0, -1, 0, 1, 0, 0, 1}
	case scenekit.TransformFlipped:
		return [9]float32{-1, 0, 1, 0, 1, 0, 0, 0, 1}
	case scenekit.TransformFlipped90:
		return [9]float32{0, 1, 0, 1, 0, 0, 0, 0, 1}
	case scenekit.TransformFlipped180:
		return [9]float32{1, 0, 0, 0, -1, 1, 0, 0, 1}
	case scenekit.TransformFlipped270:
		return [9]float32{0, -1, 1, -1, 0, 1, 0, 0, 1}
	default:
		return [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}
	}
}
