package scenekit

import "math"

// Box is an axis-aligned integer rectangle in some coordinate space
// (scene-space, output-local, or output-scaled, depending on context).
type Box struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the box has zero area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// intersect reports whether b and other overlap, and returns the
// intersection box when they do.
func (b Box) intersect(other Box) (Box, bool) {
	x1 := max(b.X, other.X)
	y1 := max(b.Y, other.Y)
	x2 := min(b.X+b.Width, other.X+other.Width)
	y2 := min(b.Y+b.Height, other.Y+other.Height)
	if x2 <= x1 || y2 <= y1 {
		return Box{}, false
	}
	return Box{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// equal reports whether two boxes describe the same rectangle.
func (b Box) equal(other Box) bool {
	return b.X == other.X && b.Y == other.Y && b.Width == other.Width && b.Height == other.Height
}

// translate returns the box shifted by (dx, dy).
func (b Box) translate(dx, dy int) Box {
	b.X += dx
	b.Y += dy
	return b
}

// FBox is a floating-point rectangle, used for buffer source regions.
type FBox struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether the box has zero width or height, the convention
// wlr_scene.c uses to mean "whole buffer" for a source box.
func (b FBox) Empty() bool {
	return b.Width == 0 || b.Height == 0
}

// scaleLength implements wlr_scene.c's scale_length: it preserves the
// invariant round((offset+length)*scale) - round(offset*scale) for the
// scaled length, which avoids 1-pixel cracks between adjacent damaged
// boxes at fractional scales.
func scaleLength(length, offset int, scale float32) int {
	return int(math.Round(float64(offset+length)*float64(scale))) - int(math.Round(float64(offset)*float64(scale)))
}

// scaleBox returns box scaled by scale, using scaleLength for width and
// height so adjacent boxes still tile without gaps or overlaps.
func scaleBox(box Box, scale float32) Box {
	return Box{
		X:      int(math.Round(float64(box.X) * float64(scale))),
		Y:      int(math.Round(float64(box.Y) * float64(scale))),
		Width:  scaleLength(box.Width, box.X, scale),
		Height: scaleLength(box.Height, box.Y, scale),
	}
}

// Region is an unordered set of rectangles, which may overlap, describing
// a pixel area, modeled after the pixman region32 the original source uses
// to accumulate output damage.
type Region struct {
	boxes []Box
}

// NewRegion returns an empty region.
func NewRegion() *Region {
	return &Region{}
}

// Boxes returns the rectangles making up the region. The caller must not
// mutate the returned slice.
func (r *Region) Boxes() []Box {
	return r.boxes
}

// Empty reports whether the region has no area.
func (r *Region) Empty() bool {
	return len(r.boxes) == 0
}

// Add merges other's rectangles into r.
func (r *Region) Add(other *Region) {
	if other == nil {
		return
	}
	r.boxes = append(r.boxes, other.boxes...)
	r.normalize()
}

// AddBox merges a single rectangle into r.
func (r *Region) AddBox(box Box) {
	if box.Empty() {
		return
	}
	r.boxes = append(r.boxes, box)
	r.normalize()
}

// Union returns a new region containing the area of both r and other.
func (r *Region) Union(other *Region) *Region {
	out := &Region{boxes: append([]Box{}, r.boxes...)}
	out.Add(other)
	return out
}

// Subtract returns a new region containing r's area with other's area
// removed.
func (r *Region) Subtract(other *Region) *Region {
	out := &Region{}
	for _, b := range r.boxes {
		out.boxes = append(out.boxes, subtractBox(b, other.boxes)...)
	}
	out.normalize()
	return out
}

// IntersectBox returns a new region containing the overlap of r and a
// single box.
func (r *Region) IntersectBox(box Box) *Region {
	out := &Region{}
	for _, b := range r.boxes {
		if ib, ok := b.intersect(box); ok {
			out.boxes = append(out.boxes, ib)
		}
	}
	out.normalize()
	return out
}

// Translate returns a new region shifted by (dx, dy).
func (r *Region) Translate(dx, dy int) *Region {
	out := &Region{boxes: make([]Box, len(r.boxes))}
	for i, b := range r.boxes {
		out.boxes[i] = b.translate(dx, dy)
	}
	return out
}

// ScaleXY returns a new region with every rectangle scaled independently
// on each axis, using scaleLength so that the scaled rectangles continue
// to tile without cracks.
func (r *Region) ScaleXY(scaleX, scaleY float32) *Region {
	out := &Region{boxes: make([]Box, len(r.boxes))}
	for i, b := range r.boxes {
		out.boxes[i] = Box{
			X:      int(math.Round(float64(b.X) * float64(scaleX))),
			Y:      int(math.Round(float64(b.Y) * float64(scaleY))),
			Width:  scaleLength(b.Width, b.X, scaleX),
			Height: scaleLength(b.Height, b.Y, scaleY),
		}
	}
	out.normalize()
	return out
}

// Copy returns an independent copy of the region.
func (r *Region) Copy() *Region {
	return &Region{boxes: append([]Box{}, r.boxes...)}
}

// normalize drops degenerate rectangles. It does not attempt to coalesce
// overlapping rectangles into a minimal rectangle set — callers only rely
// on the union area, not on a canonical rectangle decomposition.
func (r *Region) normalize() {
	kept := r.boxes[:0]
	for _, b := range r.boxes {
		if !b.Empty() {
			kept = append(kept, b)
		}
	}
	r.boxes = kept
}

// subtractBox subtracts a set of rectangles from a single rectangle,
// returning the (possibly empty) set of rectangles covering what remains.
// Each subtraction splits the remaining pieces into up to four rectangles
// (above, below, left, right of the cut), a standard rectangle-clipping
// technique.
func subtractBox(b Box, cuts []Box) []Box {
	remaining := []Box{b}
	for _, cut := range cuts {
		var next []Box
		for _, piece := range remaining {
			next = append(next, subtractOne(piece, cut)...)
		}
		remaining = next
		if len(remaining) == 0 {
			break
		}
	}
	return remaining
}

// subtractOne removes cut's area from piece, returning up to four
// rectangles that cover what's left of piece.
func subtractOne(piece, cut Box) []Box {
	ix, ok := piece.intersect(cut)
	if !ok {
		return []Box{piece}
	}

	var out []Box
	// Above the cut.
	if ix.Y > piece.Y {
		out = append(out, Box{X: piece.X, Y: piece.Y, Width: piece.Width, Height: ix.Y - piece.Y})
	}
	// Below the cut.
	pieceBottom := piece.Y + piece.Height
	ixBottom := ix.Y + ix.Height
	if ixBottom < pieceBottom {
		out = append(out, Box{X: piece.X, Y: ixBottom, Width: piece.Width, Height: pieceBottom - ixBottom})
	}
	// Left of the cut, within the cut's vertical band.
	if ix.X > piece.X {
		out = append(out, Box{X: piece.X, Y: ix.Y, Width: ix.X - piece.X, Height: ix.Height})
	}
	// Right of the cut, within the cut's vertical band.
	pieceRight := piece.X + piece.Width
	ixRight := ix.X + ix.Width
	if ixRight < pieceRight {
		out = append(out, Box{X: ixRight, Y: ix.Y, Width: pieceRight - ixRight, Height: ix.Height})
	}
	return out
}

// getSize returns a node's rendered pixel size: (0,0) for tree nodes,
// (Width,Height) for rects, and for buffer nodes the explicit
// destination size if set, else the buffer's intrinsic size (swapping
// width/height for a 90-degree transform), else (0,0) when no buffer is
// attached.
func getSize(node *Node) (width, height int) {
	switch node.Type {
	case NodeRect:
		return node.Width, node.Height
	case NodeBuffer:
		if node.DstWidth > 0 && node.DstHeight > 0 {
			return node.DstWidth, node.DstHeight
		}
		if node.Buffer != nil {
			w, h := node.Buffer.Size()
			if node.Transform.SwapsAxes() {
				return h, w
			}
			return w, h
		}
		return 0, 0
	default:
		return 0, 0
	}
}

// OutputTransform is one of the eight 90-degree rotation/flip
// combinations relating buffer pixel orientation to display orientation,
// matching the Wayland output-transform enum.
type OutputTransform uint8

const (
	TransformNormal OutputTransform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

// SwapsAxes reports whether the transform swaps width and height, true
// for any transform with the 90-degree bit set.
func (t OutputTransform) SwapsAxes() bool {
	return t&1 != 0
}

// Invert returns the inverse of t.
func (t OutputTransform) Invert() OutputTransform {
	if t&4 != 0 || t == Transform180 || t == TransformNormal {
		// Flipped transforms, 180, and normal are their own inverse.
		return t
	}
	if t == Transform90 {
		return Transform270
	}
	return Transform90
}

// transformPoint applies transform to a point (x, y) within a (width,
// height) sized box, used to map buffer-local damage into the effective
// source-box coordinate space.
func transformPoint(t OutputTransform, x, y float64, width, height float64) (float64, float64) {
	if t >= TransformFlipped {
		x = width - x
		t -= TransformFlipped
	}
	switch t {
	case Transform90:
		return y, width - x
	case Transform180:
		return width - x, height - y
	case Transform270:
		return height - y, x
	default:
		return x, y
	}
}

// transformRegion rotates/flips a buffer-local region by t within a
// (bufferWidth, bufferHeight) sized buffer, matching
// wlr_region_transform's semantics for whole-pixel regions.
func transformRegion(region *Region, t OutputTransform, bufferWidth, bufferHeight int) *Region {
	if t == TransformNormal {
		return region.Copy()
	}
	out := &Region{}
	for _, b := range region.boxes {
		x1, y1 := transformPoint(t, float64(b.X), float64(b.Y), float64(bufferWidth), float64(bufferHeight))
		x2, y2 := transformPoint(t, float64(b.X+b.Width), float64(b.Y+b.Height), float64(bufferWidth), float64(bufferHeight))
		nb := Box{
			X:      int(math.Round(min(x1, x2))),
			Y:      int(math.Round(min(y1, y2))),
			Width:  int(math.Round(math.Abs(x2 - x1))),
			Height: int(math.Round(math.Abs(y2 - y1))),
		}
		if !nb.Empty() {
			out.boxes = append(out.boxes, nb)
		}
	}
	out.normalize()
	return out
}
