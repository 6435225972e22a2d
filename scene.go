package scenekit

import (
	"log/slog"
	"os"
)

// DebugDamageMode controls an output's debug-damage visualization,
// selected once at scene creation via the WLR_SCENE_DEBUG_DAMAGE
// environment variable.
type DebugDamageMode uint8

const (
	// DebugDamageNone renders normally: scan-out when possible, otherwise
	// only the accumulated damage is redrawn.
	DebugDamageNone DebugDamageMode = iota
	// DebugDamageRerender disables scan-out's benefit by damaging the
	// whole output every frame, but otherwise renders normally.
	DebugDamageRerender
	// DebugDamageHighlight disables scan-out entirely and overlays each
	// frame's damage as a fading red rectangle.
	DebugDamageHighlight
)

const debugDamageEnvVar = "WLR_SCENE_DEBUG_DAMAGE"

// Scene is the root container for a scene graph: the root tree node, the
// scene-outputs bound to it, an optional presentation-feedback
// extension, and the debug-damage visualization mode.
type Scene struct {
	// Root is the scene's root tree node. Its Parent is always nil.
	Root *Node
	// Outputs holds every scene-output bound to this scene, kept sorted
	// by SceneOutput.Index.
	Outputs []*SceneOutput
	// Presentation is the optional presentation-feedback extension this
	// scene reports to, set via SetPresentation.
	Presentation PresentationExtension
	// DebugDamage is this scene's debug-damage visualization mode, read
	// once from WLR_SCENE_DEBUG_DAMAGE at NewScene.
	DebugDamage DebugDamageMode

	highlightRegions        []*highlightRegion
	unsubscribePresentation func()
}

// NewScene creates a scene with an empty root tree node and reads
// WLR_SCENE_DEBUG_DAMAGE once to select the debug-damage mode. An unset
// variable or the value "none" select DebugDamageNone; an unrecognized
// value is logged and also falls back to DebugDamageNone.
func NewScene() *Scene {
	scene := &Scene{}
	scene.Root = &Node{Type: NodeTree, Enabled: true, scene: scene}
	scene.DebugDamage = parseDebugDamageEnv(os.Getenv(debugDamageEnvVar))
	return scene
}

func parseDebugDamageEnv(value string) DebugDamageMode {
	switch value {
	case "", "none":
		return DebugDamageNone
	case "rerender":
		return DebugDamageRerender
	case "highlight":
		return DebugDamageHighlight
	default:
		slog.Error("unknown WLR_SCENE_DEBUG_DAMAGE option, falling back to none", "value", value)
		return DebugDamageNone
	}
}

// SetPresentation binds scene to a presentation-feedback extension.
// Panics if scene is already bound to one.
func SetPresentation(scene *Scene, presentation PresentationExtension) {
	if scene.Presentation != nil {
		panic("scenekit: SetPresentation: scene already has a presentation extension")
	}
	scene.Presentation = presentation
	scene.unsubscribePresentation = presentation.OnDestroy(func() {
		scene.Presentation = nil
		scene.unsubscribePresentation = nil
	})
}
