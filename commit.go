package scenekit

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// highlightFadeout is how long a captured highlight-debug region keeps
// drawing once its damage is no longer current, matching
// HIGHLIGHT_DAMAGE_FADEOUT_TIME.
const highlightFadeout = 250 * time.Millisecond

// clearColor is the backdrop a SceneOutput paints into freshly damaged
// regions before compositing over it.
var clearColor = [4]float32{0, 0, 0, 1}

// highlightRegion is one frame's worth of captured damage, kept around
// only to paint a fading overlay in DebugDamageHighlight mode.
type highlightRegion struct {
	region    *Region
	createdAt time.Time
}

// highlightAlpha evaluates the linear fade-out for a region created at
// createdAt, as of now. expired reports whether the region has aged past
// highlightFadeout and should be dropped.
func highlightAlpha(createdAt, now time.Time) (alpha float32, expired bool) {
	elapsed := now.Sub(createdAt)
	if elapsed >= highlightFadeout {
		return 0, true
	}
	value, _ := gween.New(1, 0, float32(highlightFadeout.Seconds()), ease.Linear).
		Update(float32(elapsed.Seconds()))
	return value, false
}

// scanoutProbe accumulates the result of a single-node-covers-the-whole-
// viewport test, used to decide whether an output can skip compositing
// entirely and scan a client buffer out directly.
type scanoutProbe struct {
	viewport Box
	node     *Node
	count    int
}

// scanout reports whether so's entire viewport is covered by exactly one
// enabled buffer node whose buffer, source box, and transform allow it to
// be attached to the output directly, bypassing the renderer.
func (so *SceneOutput) scanout() (node *Node, ok bool) {
	if so.Scene.DebugDamage == DebugDamageHighlight {
		// Direct scan-out would skip rendering the highlight overlay.
		return nil, false
	}

	probe := &scanoutProbe{viewport: so.viewport()}
	forEachNode(so.Scene.Root, 0, 0, func(n *Node, x, y int) {
		w, h := getSize(n)
		nodeBox := Box{X: x, Y: y, Width: w, Height: h}
		if _, overlaps := probe.viewport.intersect(nodeBox); !overlaps {
			return
		}
		probe.count++
		if probe.viewport.equal(nodeBox) {
			probe.node = n
		}
	})

	if probe.count != 1 || probe.node == nil || probe.node.Type != NodeBuffer {
		return nil, false
	}

	n := probe.node
	if n.Buffer == nil || !n.SrcBox.Empty() || n.Transform != so.Output.Transform() {
		return nil, false
	}
	return n, true
}

// Commit renders and presents one frame for so, mirroring
// wlr_scene_output_commit: it first tries direct scan-out, falls back to
// damage-bounded composited rendering, applies the debug-damage
// visualization mode, and finally commits the output. now times the
// highlight-debug fade and must be non-decreasing across calls on the
// same SceneOutput.
func (so *SceneOutput) Commit(now time.Time, renderer Renderer, cache ClientBufferCache) bool {
	if node, ok := so.scanout(); ok {
		if so.Output.AttachBuffer(node.Buffer) && so.Output.Test() {
			if !so.prevScanout {
				so.Damage.AddWhole()
			}
			so.prevScanout = true
			node.OutputPresent.Emit(so)
			return so.Output.Commit()
		}
		so.Output.Rollback()
	}
	if so.prevScanout {
		// Leaving scan-out: the output's front buffer no longer matches
		// what compositing will produce until a full repaint happens.
		so.Damage.AddWhole()
	}
	so.prevScanout = false

	debugDamage := so.Scene.DebugDamage
	if debugDamage == DebugDamageRerender {
		so.Damage.AddWhole()
	}
	if debugDamage == DebugDamageHighlight {
		so.applyHighlightDamage(now)
	}

	needsFrame, damage, ok := so.Damage.AttachRender()
	if !ok {
		return false
	}
	if !needsFrame {
		so.Output.Rollback()
		return true
	}

	rawW, rawH := so.Output.RawResolution()
	renderer.Begin(rawW, rawH)

	for _, rect := range damage.Boxes() {
		box := rect
		renderer.Scissor(&box)
		renderer.Clear(clearColor)
	}
	forEachNode(so.Scene.Root, -so.X, -so.Y, func(node *Node, lx, ly int) {
		so.renderNode(renderer, cache, node, lx, ly, damage)
	})
	renderer.Scissor(nil)

	if debugDamage == DebugDamageHighlight {
		so.renderHighlights(renderer, now)
	}

	so.Output.RenderSoftwareCursors(damage)
	renderer.End()

	trW, trH := so.Output.TransformedResolution()
	frameDamage := transformRegion(damage, so.Output.Transform().Invert(), trW, trH)
	so.Output.SetDamage(frameDamage)

	success := so.Output.Commit()

	if debugDamage == DebugDamageHighlight && len(so.Scene.highlightRegions) > 0 {
		so.Output.ScheduleFrame()
	}

	return success
}

// renderNode draws a single node's contribution at output-local
// coordinates (lx, ly), which it scales by the output's scale factor, once
// per sub-rectangle where its destination box overlaps damage. Tree nodes
// contribute nothing themselves. A buffer node that actually draws fires
// OutputPresent exactly once, regardless of how many sub-rectangles its
// box was split into.
func (so *SceneOutput) renderNode(renderer Renderer, cache ClientBufferCache, node *Node, lx, ly int, damage *Region) {
	w, h := getSize(node)
	if w <= 0 || h <= 0 {
		return
	}
	dstBox := scaleBox(Box{X: lx, Y: ly, Width: w, Height: h}, so.Output.Scale())

	subRects := damage.IntersectBox(dstBox).Boxes()
	if len(subRects) == 0 {
		return
	}

	switch node.Type {
	case NodeRect:
		for _, rect := range subRects {
			box := rect
			renderer.Scissor(&box)
			renderer.RenderRect(dstBox, node.Color, so.Output.TransformMatrix())
		}
	case NodeBuffer:
		if node.Buffer == nil {
			return
		}
		texture := node.resolveTexture(renderer, cache)
		if texture == nil {
			return
		}
		srcBox := node.SrcBox
		if srcBox.Empty() {
			tw, th := texture.Size()
			srcBox = FBox{Width: float64(tw), Height: float64(th)}
		}
		matrix := projectBoxMatrix(dstBox, node.Transform.Invert(), so.Output.TransformMatrix())
		for _, rect := range subRects {
			box := rect
			renderer.Scissor(&box)
			renderer.RenderSubTexture(texture, srcBox, matrix, 1.0)
		}
		node.OutputPresent.Emit(so)
	}
}

// applyHighlightDamage captures the current frame's pending damage as a
// new highlight region (prepended, newest first), then ages the whole
// list: each region has the union of newer regions subtracted from it
// (so overlapping damage only glows once), and regions that are now
// empty or older than highlightFadeout are dropped. The union of every
// surviving region is folded back into the output's damage so the
// overlay actually gets painted.
func (so *SceneOutput) applyHighlightDamage(now time.Time) {
	scene := so.Scene

	if current := so.Damage.Current(); current != nil && !current.Empty() {
		captured := &highlightRegion{region: current.Copy(), createdAt: now}
		scene.highlightRegions = append([]*highlightRegion{captured}, scene.highlightRegions...)
	}

	acc := NewRegion()
	survivors := scene.highlightRegions[:0]
	for _, hr := range scene.highlightRegions {
		hr.region = hr.region.Subtract(acc)
		acc = acc.Union(hr.region)

		if _, expired := highlightAlpha(hr.createdAt, now); expired || hr.region.Empty() {
			continue
		}
		survivors = append(survivors, hr)
	}
	scene.highlightRegions = survivors

	so.Damage.Add(acc)
}

// renderHighlights overlays every surviving highlight region as a
// translucent red rectangle, its alpha fading out over highlightFadeout.
func (so *SceneOutput) renderHighlights(renderer Renderer, now time.Time) {
	matrix := so.Output.TransformMatrix()
	for _, hr := range so.Scene.highlightRegions {
		alpha, _ := highlightAlpha(hr.createdAt, now)
		color := [4]float32{alpha * 0.5, 0, 0, alpha * 0.5}
		for _, box := range hr.region.Boxes() {
			renderer.RenderRect(box, color, matrix)
		}
	}
}

// SendFrameDone notifies every enabled buffer descendant whose primary
// output is so that a frame has been presented, letting clients release
// the buffers they submitted. Buffers whose primary output is a
// different SceneOutput are skipped, so a buffer spanning two outputs is
// only woken by the one doing most of the work for it.
func (so *SceneOutput) SendFrameDone(now time.Time) {
	forEachNode(so.Scene.Root, 0, 0, func(node *Node, lx, ly int) {
		if node.Type == NodeBuffer && node.PrimaryOutput == so {
			node.SendFrameDone(now)
		}
	})
}
