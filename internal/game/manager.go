package game

import (
	"image/color"
	"log"

	"chosenoffset.com/adventure/internal/render"
)

const pauseLabel = "PAUSED"

// Manager handles the overall game state: Space pauses and resumes the
// simulation, Escape quits.
type Manager struct {
	State    State
	Game     *Game
	Renderer render.Renderer
	InputMgr render.InputManager
}

// NewManager creates a manager that starts playing g.
func NewManager(g *Game, r render.Renderer, input render.InputManager) *Manager {
	return &Manager{
		State:    StatePlaying,
		Game:     g,
		Renderer: r,
		InputMgr: input,
	}
}

// Update handles global keys, then advances the game unless paused.
func (m *Manager) Update() error {
	if m.InputMgr != nil {
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			log.Println("Quit requested")
			return render.ErrQuit
		}
		if m.InputMgr.IsKeyJustPressed(render.KeySpace) {
			m.TogglePause()
		}
	}

	if m.State == StatePaused {
		return nil
	}
	return m.Game.Update()
}

// TogglePause switches between playing and paused.
func (m *Manager) TogglePause() {
	if m.State == StatePaused {
		m.State = StatePlaying
	} else {
		m.State = StatePaused
	}
	log.Printf("Game %s", m.State)
}

// Draw draws the game, dimmed with a label while paused.
func (m *Manager) Draw(screen render.Image) {
	m.Game.Draw(screen)
	if m.State == StatePaused && m.Renderer != nil {
		m.drawPauseOverlay(screen)
	}
}

func (m *Manager) drawPauseOverlay(screen render.Image) {
	w, h := screen.Size()
	m.Renderer.FillRect(screen, 0, 0, float32(w), float32(h), color.RGBA{A: 160})

	const scale = 2
	tw, th := m.Renderer.MeasureText(pauseLabel, scale)
	m.Renderer.DrawText(screen, pauseLabel, (float64(w)-tw)/2, (float64(h)-th)/2, color.White, scale)
}

// Layout delegates to the game.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.Game.Layout(outsideWidth, outsideHeight)
}
