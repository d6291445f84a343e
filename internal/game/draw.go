package game

import (
	"image/color"

	"chosenoffset.com/adventure/internal/render"
)

// letterboxColor fills the screen outside the virtual frame.
var letterboxColor = color.Black

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(letterboxColor)
	g.World.Scene.Draw(screen)
}
