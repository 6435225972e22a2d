// Package scenekit is a retained-mode scene graph for compositors: a
// tree of rectangles and buffers that tracks which outputs it's visible
// on, accumulates damage as it changes, and renders itself.
//
// scenekit ports the design of wlroots' scene-graph API to Go: a
// [Scene] owns a tree of [Node]s rooted at [Scene.Root], and one
// [SceneOutput] per physical [Output] it should be composited onto.
//
// # Quick start
//
//	scene := scenekit.NewScene()
//	rect := scenekit.NewRect(scene.Root, 200, 100, [4]float32{1, 0, 0, 1})
//	rect.SetPosition(50, 50)
//
//	so := scenekit.NewSceneOutput(scene, myOutput, myDamageAccumulator)
//	so.Commit(time.Now(), myRenderer, myClientBufferCache)
//
// # Scene graph
//
// Every node is one of three variants, tagged by [NodeType]: a
// [NodeTree] container, a [NodeRect] solid color, or a [NodeBuffer]
// displaying a [Buffer]. Nodes are created with [NewTree], [NewRect],
// and [NewBuffer], and repositioned with [Node.SetPosition],
// [Node.PlaceAbove], [Node.PlaceBelow], and [Node.Reparent].
//
// # Output membership and damage
//
// Every change to the tree damages the affected region on every
// [SceneOutput] bound to the scene (see damage.go), and recomputes which
// outputs each buffer node now overlaps (see membership.go), firing
// [Node.OutputEnter] and [Node.OutputLeave] as that set changes.
// [Node.PrimaryOutput] is always the output with the largest overlap.
//
// # Commit pipeline
//
// [SceneOutput.Commit] tries direct scan-out first, falls back to
// damage-bounded composited rendering otherwise, and honors
// [Scene.DebugDamage] (selected once via the WLR_SCENE_DEBUG_DAMAGE
// environment variable) for visualizing what actually gets repainted.
// Fading highlight overlays are driven by [gween].
//
// [gween]: https://github.com/tanema/gween
package scenekit
