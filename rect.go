package scenekit

// SetSize resizes a rect node. A no-op if unchanged; otherwise brackets
// the resize with whole-node damage. Panics if node is not a rect node.
func (n *Node) SetSize(width, height int) {
	requireType(n, NodeRect, "SetSize")
	if n.Width == width && n.Height == height {
		return
	}
	damageWhole(n)
	n.Width = width
	n.Height = height
	damageWhole(n)
}

// SetColor changes a rect node's fill color. A no-op if unchanged.
// Panics if node is not a rect node.
func (n *Node) SetColor(color [4]float32) {
	requireType(n, NodeRect, "SetColor")
	if n.Color == color {
		return
	}
	n.Color = color
	damageWhole(n)
}

// requireType panics if node's tag doesn't match want, a wrong-accessor
// programming-contract violation.
func requireType(node *Node, want NodeType, op string) {
	if node.Type != want {
		panic("scenekit: " + op + ": node is not the expected node type")
	}
}
