// Command demo drives a scenekit.Scene with the ebitenscene adapter: a
// static background rect and a bouncing rect, committed every tick
// through the real commit pipeline (damage tracking, scan-out
// detection, the debug-damage modes) onto an actual window.
package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hearthglass/scenekit"
	"github.com/hearthglass/scenekit/ebitenscene"
)

const (
	windowTitle = "scenekit demo"
	screenW     = 640
	screenH     = 480
)

type game struct {
	scene    *scenekit.Scene
	output   *ebitenscene.Output
	so       *scenekit.SceneOutput
	renderer *ebitenscene.Renderer

	bouncer *scenekit.Node
	dx      int
}

func newGame() *game {
	scene := scenekit.NewScene()

	bg := scenekit.NewRect(scene.Root, screenW, screenH, [4]float32{0.1, 0.1, 0.15, 1})
	bg.SetPosition(0, 0)

	bouncer := scenekit.NewRect(scene.Root, 80, 80, [4]float32{0.9, 0.3, 0.3, 1})
	bouncer.SetPosition(20, screenH/2-40)

	output := ebitenscene.NewOutput(screenW, screenH, 1)
	so := scenekit.NewSceneOutput(scene, output, output)

	return &game{
		scene:    scene,
		output:   output,
		so:       so,
		renderer: ebitenscene.NewRenderer(output),
		bouncer:  bouncer,
		dx:       4,
	}
}

func (g *game) Update() error {
	next := g.bouncer.X + g.dx
	if next <= 0 || next+g.bouncer.Width >= screenW {
		g.dx = -g.dx
		next = g.bouncer.X + g.dx
	}
	g.bouncer.SetPosition(next, g.bouncer.Y)

	g.so.Commit(time.Now(), g.renderer, nil)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.output.Target, nil)
	g.so.SendFrameDone(time.Now())
}

func (g *game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return screenW, screenH
}

func main() {
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
