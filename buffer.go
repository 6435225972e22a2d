package scenekit

import "time"

// SetBuffer replaces node's displayed buffer, damaging the whole node.
// Equivalent to SetBufferWithDamage(buffer, nil). Panics if node is not a
// buffer node.
func (n *Node) SetBuffer(buffer Buffer) {
	n.SetBufferWithDamage(buffer, nil)
}

// SetBufferWithDamage replaces node's displayed buffer. If damage is
// nil, the whole node is damaged (covering both the old and new
// content); otherwise damage is a buffer-local region describing exactly
// what changed, which is translated through node's transform, source
// box, and destination scale into each output's damage accumulator.
// damage must be nil when buffer is nil. Panics if node is not a buffer
// node.
func (n *Node) SetBufferWithDamage(buffer Buffer, damage *Region) {
	requireType(n, NodeBuffer, "SetBufferWithDamage")
	if buffer == nil && damage != nil {
		panic("scenekit: SetBufferWithDamage: damage requires a non-nil buffer")
	}

	if buffer != n.Buffer {
		if damage == nil {
			damageWhole(n)
		}

		if n.texture != nil {
			n.texture.Destroy()
			n.texture = nil
		}
		if n.Buffer != nil {
			n.Buffer.Unlock()
		}
		if buffer != nil {
			n.Buffer = buffer.Lock()
		} else {
			n.Buffer = nil
		}

		updateOutputs(n, nil)

		if damage == nil {
			damageWhole(n)
		}
	}

	if damage == nil {
		return
	}

	lx, ly, enabled := Coords(n)
	if !enabled {
		return
	}

	bw, bh := buffer.Size()

	box := n.SrcBox
	if box.Empty() {
		box = FBox{}
		if n.Transform.SwapsAxes() {
			box.Width, box.Height = float64(bh), float64(bw)
		} else {
			box.Width, box.Height = float64(bw), float64(bh)
		}
	}

	var scaleX, scaleY float64
	if n.DstWidth != 0 || n.DstHeight != 0 {
		scaleX = float64(n.DstWidth) / box.Width
		scaleY = float64(n.DstHeight) / box.Height
	} else {
		scaleX = float64(bw) / box.Width
		scaleY = float64(bh) / box.Height
	}

	transDamage := transformRegion(damage, n.Transform, bw, bh)
	transDamage = transDamage.IntersectBox(Box{
		X: int(box.X), Y: int(box.Y),
		Width: int(box.Width), Height: int(box.Height),
	})

	scene := sceneOf(n)
	for _, so := range scene.Outputs {
		outScale := so.Output.Scale()
		outDamage := transDamage.ScaleXY(outScale*float32(scaleX), outScale*float32(scaleY))
		dx := int(float64(lx-so.X) * float64(outScale))
		dy := int(float64(ly-so.Y) * float64(outScale))
		so.Damage.Add(outDamage.Translate(dx, dy))
	}
}

// SetSourceBox sets the source sub-rectangle sampled from Buffer, in
// buffer-local coordinates. Passing nil (or an empty box) selects the
// whole buffer. A no-op if unchanged; otherwise damages the whole node.
// Panics if node is not a buffer node.
func (n *Node) SetSourceBox(box *FBox) {
	requireType(n, NodeBuffer, "SetSourceBox")

	newEmpty := box == nil || box.Empty()
	curEmpty := n.SrcBox.Empty()
	if (newEmpty && curEmpty) || (box != nil && *box == n.SrcBox) {
		return
	}

	if box != nil {
		n.SrcBox = *box
	} else {
		n.SrcBox = FBox{}
	}
	damageWhole(n)
}

// SetDestSize sets the explicit destination size node is drawn at. (0, 0)
// selects the intrinsic buffer size. A no-op if unchanged; otherwise
// brackets the resize with whole-node damage and triggers an
// output-membership recomputation. Panics if node is not a buffer node.
func (n *Node) SetDestSize(width, height int) {
	requireType(n, NodeBuffer, "SetDestSize")
	if n.DstWidth == width && n.DstHeight == height {
		return
	}
	damageWhole(n)
	n.DstWidth, n.DstHeight = width, height
	damageWhole(n)
	updateOutputs(n, nil)
}

// SetTransform sets node's output transform. A no-op if unchanged;
// otherwise brackets the change with whole-node damage and triggers an
// output-membership recomputation. Panics if node is not a buffer node.
func (n *Node) SetTransform(t OutputTransform) {
	requireType(n, NodeBuffer, "SetTransform")
	if n.Transform == t {
		return
	}
	damageWhole(n)
	n.Transform = t
	damageWhole(n)
	updateOutputs(n, nil)
}

// SendFrameDone fires node's FrameDone signal directly with now,
// unconditionally. Scene-output-driven frame-done dispatch
// (SceneOutput.SendFrameDone) filters by primary output before calling
// this. Panics if node is not a buffer node.
func (n *Node) SendFrameDone(now time.Time) {
	requireType(n, NodeBuffer, "SendFrameDone")
	n.FrameDone.Emit(now)
}

// resolveTexture returns the texture to render node's buffer with,
// preferring a cached client-buffer texture, then node's own cached
// texture, then converting the buffer fresh.
func (n *Node) resolveTexture(renderer Renderer, cache ClientBufferCache) Texture {
	if cache != nil {
		if tex, ok := cache.Get(n.Buffer); ok {
			return tex
		}
	}
	if n.texture != nil {
		return n.texture
	}
	n.texture = renderer.TextureFromBuffer(n.Buffer)
	return n.texture
}
