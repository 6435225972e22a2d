package scenekit

// damageWhole marks a node's full bounding box as damaged on every
// output it could appear on: if the scene has no outputs, or node is
// disabled anywhere up its ancestor chain, nothing happens. Otherwise
// node's subtree is walked depth-first (skipping disabled subtrees);
// each node's bounding box in scene coordinates is translated into
// every output's frame, scaled by that output's scale, and added to
// that output's damage.
func damageWhole(node *Node) {
	scene := sceneOf(node)
	if len(scene.Outputs) == 0 {
		return
	}

	lx, ly, enabled := Coords(node)
	if !enabled {
		return
	}

	damageWholeAt(node, scene, lx, ly)
}

func damageWholeAt(node *Node, scene *Scene, lx, ly int) {
	if !node.Enabled {
		return
	}

	if node.Type == NodeTree {
		for _, child := range node.children {
			damageWholeAt(child, scene, lx+child.X, ly+child.Y)
		}
	}

	width, height := getSize(node)

	for _, so := range scene.Outputs {
		box := Box{X: lx - so.X, Y: ly - so.Y, Width: width, Height: height}
		box = scaleBox(box, so.Output.Scale())
		so.Damage.AddBox(box)
	}
}
