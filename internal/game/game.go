// Package game runs a built scene: it routes pointer input into the scene
// graph, advances the player, dialog and animations once per tick, and keeps
// the projection in step with the window size.
package game

import (
	"fmt"
	"log"

	"chosenoffset.com/adventure/internal/render"
	"chosenoffset.com/adventure/internal/world/scenedef"
)

// Game drives one scene.
type Game struct {
	World    *scenedef.World
	Renderer render.Renderer
	Input    render.InputManager

	// Last size handed to the projector
	ScreenWidth  int
	ScreenHeight int

	// Ticks counts completed simulation steps
	Ticks int

	introSpoken bool
	err         error
}

// New creates a game for a built world.
func New(w *scenedef.World, r render.Renderer, input render.InputManager) *Game {
	return &Game{
		World:    w,
		Renderer: r,
		Input:    input,
	}
}

// Update advances the scene by one tick.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}

	dt := g.World.Config.TickSeconds()

	if !g.introSpoken {
		g.introSpoken = true
		if g.World.Intro != "" {
			g.World.Dialog.Add(g.World.Player, g.World.Intro)
		}
	}

	g.handlePointer()

	g.World.Player.Step(dt)
	g.World.Dialog.Step(dt)
	g.World.Scene.Update(dt)

	g.Ticks++
	return nil
}

// handlePointer forwards a fresh left click to the scene graph.
func (g *Game) handlePointer() {
	if g.Input == nil || !g.Input.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		return
	}
	x, y := g.Input.GetCursorPosition()
	g.World.Scene.PointerDown(float64(x), float64(y))
}

// Layout reprojects the world whenever the window size changes. The logical
// screen always matches the window so UI text stays crisp.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		if g.ScreenWidth > 0 && g.ScreenHeight > 0 {
			return g.ScreenWidth, g.ScreenHeight
		}
		return 1, 1
	}

	if outsideWidth != g.ScreenWidth || outsideHeight != g.ScreenHeight {
		err := g.World.Projector.ApplyResize(float64(outsideWidth), float64(outsideHeight))
		if err != nil {
			// Surfaced from the next Update, which stops the loop
			log.Printf("Error: failed to resize to %dx%d: %v", outsideWidth, outsideHeight, err)
			g.err = fmt.Errorf("resize %dx%d: %w", outsideWidth, outsideHeight, err)
		} else {
			g.ScreenWidth, g.ScreenHeight = outsideWidth, outsideHeight
		}
	}
	return outsideWidth, outsideHeight
}
