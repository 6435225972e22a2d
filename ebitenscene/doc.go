// Package ebitenscene implements scenekit's Renderer, Output, Texture,
// and Buffer interfaces against [Ebitengine], so a scenekit.Scene can be
// driven to a real window without scenekit itself depending on a
// specific graphics backend.
//
// Construct an [Output] per window/surface and a [Renderer] to drive
// it, wire them into a scenekit.SceneOutput, and call Commit from an
// ebiten.Game's Update, then blit Output.Target in Draw:
//
//	out := ebitenscene.NewOutput(640, 480, 1)
//	so := scenekit.NewSceneOutput(scene, out, myDamageAccumulator)
//	renderer := ebitenscene.NewRenderer(out)
//	so.Commit(time.Now(), renderer, nil)
//
// [Ebitengine]: https://ebitengine.org
package ebitenscene
