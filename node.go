package scenekit

import "time"

// NodeType tags which variant a Node carries. The tag is immutable after
// creation; Node is a single flat struct holding every variant's fields
// rather than an interface with three implementations, the same trade
// willow's Node makes ("a single flat struct is used for all node types
// to avoid interface dispatch on the hot path").
type NodeType uint8

const (
	// NodeTree is an ordered container of child nodes. The scene root is
	// a tree node with a nil Parent.
	NodeTree NodeType = iota
	// NodeRect is a solid-colored rectangle.
	NodeRect
	// NodeBuffer displays a platform buffer.
	NodeBuffer
)

// BufferIterFunc is called once per enabled buffer descendant during
// ForEachBuffer, with its absolute scene coordinates.
type BufferIterFunc func(node *Node, lx, ly int)

// NodeIterFunc is called once per enabled node during a full-tree
// traversal, with its absolute scene coordinates.
type NodeIterFunc func(node *Node, lx, ly int)

// Node is the common header for every scene-graph element, plus the
// payload fields of whichever variant Type selects. See NodeType for why
// this is one struct rather than three.
type Node struct {
	Type NodeType

	// X and Y are this node's position relative to Parent.
	X, Y int
	// Enabled disables this node and its subtree: a disabled node
	// contributes zero pixels and zero damage (see damage.go). Output
	// membership is computed regardless of Enabled (see membership.go).
	Enabled bool
	// Parent is this node's parent tree node, or nil only for the scene
	// root.
	Parent *Node

	children []*Node // meaningful only when Type == NodeTree
	scene    *Scene  // non-nil only on the scene's root tree node
	addons   map[string]any

	// Destroy fires before this node's children are torn down, so
	// observers can detach children in flight.
	Destroy Signal[struct{}]

	// --- NodeRect payload ---

	// Width and Height are the rectangle's size in pixels.
	Width, Height int
	// Color is the rectangle's RGBA fill color.
	Color [4]float32

	// --- NodeBuffer payload ---

	// Buffer is the platform buffer this node displays, or nil if the
	// node is not currently renderable.
	Buffer  Buffer
	texture Texture // lazily created, invalidated whenever Buffer is replaced

	// SrcBox is the source sub-rectangle within Buffer to sample, in
	// buffer-local coordinates. An empty box means the whole buffer.
	SrcBox FBox
	// DstWidth and DstHeight are the explicit destination size; 0 means
	// use the intrinsic buffer size.
	DstWidth, DstHeight int
	// Transform relates buffer pixel orientation to display orientation.
	Transform OutputTransform

	activeOutputs uint64
	// PrimaryOutput is, among the outputs this buffer intersects, the one
	// with the largest overlap area; nil if it intersects none.
	PrimaryOutput *SceneOutput
	// PointAcceptsInput, if set, overrides the default bounding-box hit
	// test: it returns true iff the buffer-local point (lx, ly) should be
	// treated as hit. scenekit carries this hook through unchanged
	// without prescribing further semantics — that contract belongs to
	// whatever input-routing layer the host builds on top.
	PointAcceptsInput func(lx, ly float64) bool

	OutputEnter   Signal[*SceneOutput]
	OutputLeave   Signal[*SceneOutput]
	OutputPresent Signal[*SceneOutput]
	FrameDone     Signal[time.Time]
}

// NewTree creates a new, initially-empty tree node as the top (last)
// child of parent.
func NewTree(parent *Node) *Node {
	requireTree(parent, "NewTree")
	n := &Node{Type: NodeTree, Enabled: true}
	attachChild(parent, n)
	return n
}

// NewRect creates a rectangle node of the given size and color as the top
// child of parent. The new rect is damaged in full.
func NewRect(parent *Node, width, height int, color [4]float32) *Node {
	requireTree(parent, "NewRect")
	n := &Node{Type: NodeRect, Enabled: true, Width: width, Height: height, Color: color}
	attachChild(parent, n)
	damageWhole(n)
	return n
}

// NewBuffer creates a buffer node as the top child of parent, optionally
// displaying buffer. If buffer is non-nil it is locked. The new node is
// damaged in full and triggers an output-membership recomputation.
func NewBuffer(parent *Node, buffer Buffer) *Node {
	requireTree(parent, "NewBuffer")
	n := &Node{Type: NodeBuffer, Enabled: true}
	if buffer != nil {
		n.Buffer = buffer.Lock()
	}
	attachChild(parent, n)
	damageWhole(n)
	updateOutputs(n, nil)
	return n
}

// attachChild appends child to parent's children, the z-order placement
// every constructor uses (tail = top).
func attachChild(parent, child *Node) {
	child.Parent = parent
	parent.children = append(parent.children, child)
}

// requireTree panics (a programming-contract violation) if parent is
// nil or not a tree node.
func requireTree(parent *Node, op string) {
	if parent == nil {
		panic("scenekit: " + op + ": parent is nil")
	}
	if parent.Type != NodeTree {
		panic("scenekit: " + op + ": parent is not a tree node")
	}
}

// root walks up the parent chain to the scene root.
func (n *Node) root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// sceneOf returns the Scene that owns node, via the root tree node's back
// reference.
func sceneOf(node *Node) *Scene {
	return node.root().scene
}

// SetAddon attaches an opaque collaborator payload to this node under
// key, overwriting any existing value.
func (n *Node) SetAddon(key string, value any) {
	if n.addons == nil {
		n.addons = make(map[string]any)
	}
	n.addons[key] = value
}

// Addon returns the payload attached under key, if any.
func (n *Node) Addon(key string) (any, bool) {
	v, ok := n.addons[key]
	return v, ok
}

// RemoveAddon detaches the payload attached under key.
func (n *Node) RemoveAddon(key string) {
	delete(n.addons, key)
}

// DestroyNode recursively destroys node and its subtree: it damages the
// whole node, fires Destroy, (for buffer nodes) emits a final OutputLeave
// for every currently-active output and releases the buffer/texture,
// (for the scene root) tears down every scene-output and clears the
// highlight list, recursively destroys children, and finally unlinks
// node from its parent. Destroying a nil node is tolerated.
func DestroyNode(node *Node) {
	if node == nil {
		return
	}

	damageWhole(node)

	node.Destroy.Emit(struct{}{})

	scene := sceneOf(node)

	switch node.Type {
	case NodeBuffer:
		if node.activeOutputs != 0 {
			for _, so := range scene.Outputs {
				if node.activeOutputs&(1<<so.Index) != 0 {
					node.OutputLeave.Emit(so)
				}
			}
		}
		if node.texture != nil {
			node.texture.Destroy()
			node.texture = nil
		}
		if node.Buffer != nil {
			node.Buffer.Unlock()
			node.Buffer = nil
		}
	case NodeTree:
		if node == scene.Root {
			for _, so := range append([]*SceneOutput{}, scene.Outputs...) {
				DestroySceneOutput(so)
			}
			scene.highlightRegions = nil
			if scene.unsubscribePresentation != nil {
				scene.unsubscribePresentation()
				scene.unsubscribePresentation = nil
			}
		}
		for _, child := range append([]*Node{}, node.children...) {
			DestroyNode(child)
		}
	}

	if node.Parent != nil {
		removeChild(node.Parent, node)
		node.Parent = nil
	}
}

// removeChild deletes child from parent.children.
func removeChild(parent, child *Node) {
	for i, c := range parent.children {
		if c == child {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}

// SetEnabled enables or disables node. A no-op if unchanged; otherwise
// brackets the mutation with whole-node damage so both the old and new
// visible state are repainted.
func (n *Node) SetEnabled(enabled bool) {
	if n.Enabled == enabled {
		return
	}
	damageWhole(n)
	n.Enabled = enabled
	damageWhole(n)
}

// SetPosition moves node to (x, y) relative to its parent. A no-op if
// unchanged; otherwise brackets the move with whole-node damage and
// triggers an output-membership recomputation.
func (n *Node) SetPosition(x, y int) {
	if n.X == x && n.Y == y {
		return
	}
	damageWhole(n)
	n.X = x
	n.Y = y
	damageWhole(n)
	updateOutputs(n, nil)
}

// PlaceAbove moves node to immediately above sibling in z-order (node and
// sibling must share a parent and must not be the same node). A no-op if
// already immediately above. Damages both nodes afterward.
func (n *Node) PlaceAbove(sibling *Node) {
	requireSameParent(n, sibling, "PlaceAbove")
	idx := childIndex(n.Parent, n)
	sibIdx := childIndex(n.Parent, sibling)
	if idx == sibIdx+1 {
		return
	}
	moveChild(n.Parent, n, sibling, true)
	damageWhole(n)
	damageWhole(sibling)
}

// PlaceBelow moves node to immediately below sibling in z-order. A no-op
// if already immediately below. Damages both nodes afterward.
func (n *Node) PlaceBelow(sibling *Node) {
	requireSameParent(n, sibling, "PlaceBelow")
	idx := childIndex(n.Parent, n)
	sibIdx := childIndex(n.Parent, sibling)
	if idx == sibIdx-1 {
		return
	}
	moveChild(n.Parent, n, sibling, false)
	damageWhole(n)
	damageWhole(sibling)
}

// RaiseToTop moves node to the top of its siblings' z-order.
func (n *Node) RaiseToTop() {
	top := n.Parent.children[len(n.Parent.children)-1]
	if n == top {
		return
	}
	n.PlaceAbove(top)
}

// LowerToBottom moves node to the bottom of its siblings' z-order.
func (n *Node) LowerToBottom() {
	bottom := n.Parent.children[0]
	if n == bottom {
		return
	}
	n.PlaceBelow(bottom)
}

// requireSameParent panics unless node and sibling are distinct nodes
// sharing a parent.
func requireSameParent(node, sibling *Node, op string) {
	if node == sibling {
		panic("scenekit: " + op + ": node and sibling are the same node")
	}
	if node.Parent == nil || node.Parent != sibling.Parent {
		panic("scenekit: " + op + ": node and sibling do not share a parent")
	}
}

// childIndex returns child's index within parent.children, or -1.
func childIndex(parent, child *Node) int {
	for i, c := range parent.children {
		if c == child {
			return i
		}
	}
	return -1
}

// moveChild relocates node to immediately above or below sibling within
// parent's children slice.
func moveChild(parent, node, sibling *Node, above bool) {
	removeChild(parent, node)
	sibIdx := childIndex(parent, sibling)
	insertAt := sibIdx + 1
	if !above {
		insertAt = sibIdx
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[insertAt+1:], parent.children[insertAt:])
	parent.children[insertAt] = node
}

// Reparent moves node to be the top child of newParent. A no-op if
// newParent is already node's parent. Panics if newParent is nil, or if
// newParent is node itself or a descendant of node (which would create a
// cycle). Damages node before and after the move and triggers an
// output-membership recomputation.
func (n *Node) Reparent(newParent *Node) {
	if newParent == nil {
		panic("scenekit: Reparent: newParent is nil")
	}
	if n.Parent == newParent {
		return
	}
	for ancestor := newParent; ancestor != nil; ancestor = ancestor.Parent {
		if ancestor == n {
			panic("scenekit: Reparent: newParent is node or a descendant of node")
		}
	}

	damageWhole(n)

	if n.Parent != nil {
		removeChild(n.Parent, n)
	}
	attachChild(newParent, n)

	damageWhole(n)

	updateOutputs(n, nil)
}

// Coords returns node's absolute scene coordinates (the sum of x,y along
// the ancestor chain to the root) and whether every node on that chain,
// including node itself, is enabled.
func Coords(node *Node) (lx, ly int, enabled bool) {
	enabled = true
	for cur := node; cur != nil; cur = cur.Parent {
		lx += cur.X
		ly += cur.Y
		enabled = enabled && cur.Enabled
	}
	return lx, ly, enabled
}

// ForEachBuffer walks node's subtree depth-first, skipping disabled
// subtrees, invoking iter on every buffer descendant with its absolute
// scene coordinates.
func ForEachBuffer(node *Node, iter BufferIterFunc) {
	var lx, ly int
	if node.Parent != nil {
		lx, ly, _ = Coords(node.Parent)
	}
	forEachBuffer(node, lx, ly, iter)
}

func forEachBuffer(node *Node, lx, ly int, iter BufferIterFunc) {
	if !node.Enabled {
		return
	}
	lx += node.X
	ly += node.Y

	switch node.Type {
	case NodeBuffer:
		iter(node, lx, ly)
	case NodeTree:
		for _, child := range node.children {
			forEachBuffer(child, lx, ly, iter)
		}
	}
}

// forEachNode walks node's subtree depth-first (node itself first, then
// children), skipping disabled subtrees, invoking iter with absolute
// scene coordinates. Used by the commit pipeline for scan-out detection
// and rendering.
func forEachNode(node *Node, lx, ly int, iter NodeIterFunc) {
	if !node.Enabled {
		return
	}
	lx += node.X
	ly += node.Y

	iter(node, lx, ly)

	if node.Type == NodeTree {
		for _, child := range node.children {
			forEachNode(child, lx, ly, iter)
		}
	}
}

// NodeAt performs a top-first (reverse z-order) hit test starting at
// node, in node's local coordinate space. It returns the hit node and
// the point in that node's own local coordinates, or ok=false if nothing
// was hit.
func NodeAt(node *Node, lx, ly float64) (hit *Node, nx, ny float64, ok bool) {
	if !node.Enabled {
		return nil, 0, 0, false
	}

	lx -= float64(node.X)
	ly -= float64(node.Y)

	switch node.Type {
	case NodeTree:
		for i := len(node.children) - 1; i >= 0; i-- {
			if hit, nx, ny, ok := NodeAt(node.children[i], lx, ly); ok {
				return hit, nx, ny, ok
			}
		}
		return nil, 0, 0, false
	case NodeRect:
		w, h := getSize(node)
		if lx >= 0 && lx < float64(w) && ly >= 0 && ly < float64(h) {
			return node, lx, ly, true
		}
		return nil, 0, 0, false
	case NodeBuffer:
		var intersects bool
		if node.PointAcceptsInput != nil {
			intersects = node.PointAcceptsInput(lx, ly)
		} else {
			w, h := getSize(node)
			intersects = lx >= 0 && lx < float64(w) && ly >= 0 && ly < float64(h)
		}
		if intersects {
			return node, lx, ly, true
		}
		return nil, 0, 0, false
	default:
		return nil, 0, 0, false
	}
}
