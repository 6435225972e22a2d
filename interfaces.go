package scenekit

// Buffer is an opaque, reference-counted platform buffer — a client's
// pixel content. scenekit never inspects pixel data; it only needs size
// and reference-count bookkeeping.
type Buffer interface {
	// Lock increments the buffer's reference count and returns the same
	// buffer, mirroring wlr_buffer_lock.
	Lock() Buffer
	// Unlock decrements the reference count, releasing the buffer once it
	// reaches zero.
	Unlock()
	// Size returns the buffer's intrinsic pixel dimensions.
	Size() (width, height int)
}

// Texture is a renderer-owned GPU derivative of a Buffer.
type Texture interface {
	// Size returns the texture's pixel dimensions.
	Size() (width, height int)
	// Destroy releases the texture. Only textures scenekit itself created
	// via Renderer.TextureFromBuffer are destroyed by scenekit; textures
	// returned by a ClientBufferCache are borrowed, not destroyed.
	Destroy()
}

// ClientBufferCache lets a compositor hand scenekit an already-converted
// texture for a buffer it knows about, avoiding a redundant upload.
type ClientBufferCache interface {
	// Get returns the cached texture for buffer, or ok=false if none
	// exists.
	Get(buffer Buffer) (texture Texture, ok bool)
}

// Renderer provides the scissor/clear/draw primitives the commit pipeline
// issues. All coordinates are in the output's raw (untransformed)
// framebuffer space.
type Renderer interface {
	// Begin starts a render pass targeting a framebuffer of the given raw
	// pixel dimensions. Every successful Begin must be paired with an End.
	Begin(width, height int)
	// End finishes the current render pass.
	End()
	// Scissor restricts subsequent draws to box, or removes the
	// restriction when box is nil. box is expressed in the same raw,
	// untransformed framebuffer space as Begin's dimensions; a Renderer
	// backing an output with a non-normal transform is responsible for
	// remapping box into its actual framebuffer orientation itself,
	// mirroring wlroots' scissor_output.
	Scissor(box *Box)
	// Clear fills the current scissor rectangle with color.
	Clear(color [4]float32)
	// RenderRect draws a solid box tinted by color, transformed by
	// matrix (the output's transform matrix).
	RenderRect(box Box, color [4]float32, matrix [9]float32)
	// RenderSubTexture draws srcBox of tex into the current scissor
	// rectangle using matrix (a projection computed from the destination
	// box and the inverse of the node's transform), at the given alpha.
	RenderSubTexture(tex Texture, srcBox FBox, matrix [9]float32, alpha float32)
	// TextureFromBuffer converts buffer into a renderer-owned texture.
	// Returns nil if the conversion fails.
	TextureFromBuffer(buffer Buffer) Texture
}

// OutputCommitField is a bitmask of the output state fields that changed
// in an Output's commit event.
type OutputCommitField uint32

const (
	OutputCommitMode OutputCommitField = 1 << iota
	OutputCommitTransform
	OutputCommitScale
)

// Output is the physical display output abstraction a SceneOutput binds
// to. scenekit only consumes the subset of an output's surface needed to
// drive the commit pipeline; everything else (backend, connectors, modes)
// is the host's concern.
type Output interface {
	// EffectiveResolution returns the output's logical viewport size —
	// the transformed, scale-independent resolution used for layout.
	EffectiveResolution() (width, height int)
	// TransformedResolution returns the output's physical resolution
	// after applying Transform but not Scale.
	TransformedResolution() (width, height int)
	// RawResolution returns the output's raw framebuffer size, the
	// dimensions passed to Renderer.Begin.
	RawResolution() (width, height int)
	// Transform returns the output's current transform.
	Transform() OutputTransform
	// Scale returns the output's current scale factor.
	Scale() float32
	// TransformMatrix returns the 3x3 projection matrix encoding the
	// output's transform, in row-major order.
	TransformMatrix() [9]float32

	// AttachBuffer stages buffer for presentation without committing.
	AttachBuffer(buffer Buffer) bool
	// Test validates the currently staged state without presenting it.
	Test() bool
	// Commit presents the currently staged state.
	Commit() bool
	// Rollback discards any staged state since the last Commit.
	Rollback()
	// SetDamage records the (output-local, physical-pixel) damage region
	// that this frame actually repainted.
	SetDamage(region *Region)
	// ScheduleFrame asks the output to notify the host when it's ready
	// for the next frame, used to drive the highlight-fade animation.
	ScheduleFrame()
	// RenderSoftwareCursors draws any software cursor overlays, clipped
	// to region.
	RenderSoftwareCursors(region *Region)

	// OnCommit registers a listener for the output's commit event,
	// returning an unsubscribe func.
	OnCommit(fn func(changed OutputCommitField)) (unsubscribe func())
	// OnModeChange registers a listener for the output's mode-change
	// event, returning an unsubscribe func.
	OnModeChange(fn func()) (unsubscribe func())
}

// DamageAccumulator tracks an output's pending damage between frames,
// mirroring wlr_output_damage.
type DamageAccumulator interface {
	// Add merges region into the accumulator's pending damage.
	Add(region *Region)
	// AddBox merges a single rectangle into the pending damage.
	AddBox(box Box)
	// AddWhole marks the entire output as damaged.
	AddWhole()
	// AttachRender prepares to render a frame: it reports whether a frame
	// is actually needed and, if so, the region that must be redrawn.
	AttachRender() (needsFrame bool, damage *Region, ok bool)
	// Current returns the currently accumulated (not yet rendered)
	// damage region.
	Current() *Region
}

// PresentationExtension is the optional presentation-feedback observer a
// Scene may be bound to.
type PresentationExtension interface {
	// OnDestroy registers a listener for the extension's destruction,
	// returning an unsubscribe func.
	OnDestroy(fn func()) (unsubscribe func())
}
