package scenekit

// updateOutputs recomputes output membership for every buffer descendant
// of node. It is called on any positional, sizing,
// transform, or parent change, and on any scene-output resize/move/mode
// change (via the listeners NewSceneOutput attaches). Disabled nodes are
// still visited — membership is purely geometric. When ignore is
// non-nil, that scene-output is excluded from the intersection test, so
// a departing output's buffers still see a final OutputLeave for it.
func updateOutputs(node *Node, ignore *SceneOutput) {
	scene := sceneOf(node)
	lx, ly, _ := Coords(node)
	updateOutputsAt(node, lx, ly, scene, ignore)
}

func updateOutputsAt(node *Node, lx, ly int, scene *Scene, ignore *SceneOutput) {
	switch node.Type {
	case NodeBuffer:
		updateBufferOutputs(node, lx, ly, scene, ignore)
	case NodeTree:
		for _, child := range node.children {
			updateOutputsAt(child, lx+child.X, ly+child.Y, scene, ignore)
		}
	}
}

// updateBufferOutputs recomputes a single buffer node's active-outputs
// bitset and primary output, then diffs against the previous bitset to
// emit OutputEnter/OutputLeave. The two passes are an invariant: every
// observer of OutputEnter/OutputLeave must see PrimaryOutput already
// reflecting the new geometry.
func updateBufferOutputs(node *Node, lx, ly int, scene *Scene, ignore *SceneOutput) {
	width, height := getSize(node)
	bufferBox := Box{X: lx, Y: ly, Width: width, Height: height}

	largestOverlap := 0
	node.PrimaryOutput = nil
	var active uint64

	for _, so := range scene.Outputs {
		if so == ignore {
			continue
		}
		if ix, ok := bufferBox.intersect(so.viewport()); ok {
			overlap := ix.Width * ix.Height
			if overlap > largestOverlap {
				largestOverlap = overlap
				node.PrimaryOutput = so
			}
			active |= 1 << uint(so.Index)
		}
	}

	oldActive := node.activeOutputs
	node.activeOutputs = active

	for _, so := range scene.Outputs {
		mask := uint64(1) << uint(so.Index)
		now := active&mask != 0
		before := oldActive&mask != 0
		if now && !before {
			node.OutputEnter.Emit(so)
		} else if !now && before {
			node.OutputLeave.Emit(so)
		}
	}
}
