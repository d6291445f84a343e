package game

import (
	"errors"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render"
	"chosenoffset.com/adventure/internal/render/rendertest"
	"chosenoffset.com/adventure/internal/simulation"
	"chosenoffset.com/adventure/internal/viewport"
	"chosenoffset.com/adventure/internal/world/scenedef"
)

const hallScene = `
name: hall
player:
  id: hero
  sheet: hero.json
  start: {x: 120, y: 100}
  intro: "Hello."
room:
  id: hall
  states:
    - id: default
      background: hall.png
      walk_polygon: [{x: 0, y: 0}, {x: 240, y: 0}, {x: 240, y: 135}, {x: 0, y: 135}]
verbs:
  look: look.png
  use: use.png
  pickup: pickup.png
`

const heroSheet = `{
	"name": "hero",
	"image_path": "hero.png",
	"frame_width": 16,
	"frame_height": 32,
	"frames": [
		{"name": "idle_0", "x": 0, "y": 0},
		{"name": "walk_0", "x": 1, "y": 0},
		{"name": "walk_1", "x": 2, "y": 0}
	],
	"animations": {"idle": ["idle_0"], "walk": ["walk_0", "walk_1"]}
}`

type fakeLoader struct{}

func (fakeLoader) LoadImage(path string) (render.Image, error) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, "hall") {
		return rendertest.NewImage(name, 240, 135), nil
	}
	return rendertest.NewImage(name, 48, 32), nil
}

func (fakeLoader) LoadImageData(path string) (image.Image, error) {
	return nil, errors.New("no masks here")
}

type fakeInput struct {
	justPressed map[render.Key]bool
	clicked     bool
	x, y        int
}

func newFakeInput() *fakeInput {
	return &fakeInput{justPressed: make(map[render.Key]bool)}
}

func (f *fakeInput) IsKeyPressed(key render.Key) bool     { return f.justPressed[key] }
func (f *fakeInput) IsKeyJustPressed(key render.Key) bool { return f.justPressed[key] }
func (f *fakeInput) GetCursorPosition() (int, int)        { return f.x, f.y }
func (f *fakeInput) IsMouseButtonPressed(b render.MouseButton) bool {
	return f.clicked && b == render.MouseButtonLeft
}
func (f *fakeInput) IsMouseButtonJustPressed(b render.MouseButton) bool {
	return f.clicked && b == render.MouseButtonLeft
}

func (f *fakeInput) click(x, y int) {
	f.clicked, f.x, f.y = true, x, y
}

func (f *fakeInput) release() {
	f.clicked = false
	f.justPressed = make(map[render.Key]bool)
}

func newTestGame(t *testing.T) (*Game, *fakeInput, *rendertest.Renderer) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hero.json"), []byte(heroSheet), 0644); err != nil {
		t.Fatalf("Failed to write sheet: %v", err)
	}
	def, err := scenedef.Parse([]byte(hallScene))
	if err != nil {
		t.Fatalf("Failed to parse scene: %v", err)
	}
	r := &rendertest.Renderer{}
	w, err := scenedef.Build(def, scenedef.BuildOptions{
		BaseDir:  dir,
		Loader:   fakeLoader{},
		Renderer: r,
		Config:   simulation.DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	input := newFakeInput()
	return New(w, r, input), input, r
}

func TestLayoutAppliesResize(t *testing.T) {
	g, _, _ := newTestGame(t)

	w, h := g.Layout(480, 270)
	if w != 480 || h != 270 {
		t.Errorf("Expected logical size 480x270, got %dx%d", w, h)
	}
	if g.World.Projector.Scale() != 2 {
		t.Errorf("Expected scale 2, got %f", g.World.Projector.Scale())
	}

	g.Layout(960, 270)
	if g.World.Projector.Scale() != 2 {
		t.Errorf("Expected height-bound scale 2, got %f", g.World.Projector.Scale())
	}
	if off := g.World.Projector.Offset(); off != geom.Pt(240, 0) {
		t.Errorf("Expected pillarbox offset (240, 0), got %v", off)
	}
}

func TestLayoutIgnoresEmptyWindow(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.Layout(480, 270)

	w, h := g.Layout(0, 0)
	if w != 480 || h != 270 {
		t.Errorf("Expected previous size kept, got %dx%d", w, h)
	}
	if g.World.Projector.Scale() != 2 {
		t.Errorf("Expected scale unchanged, got %f", g.World.Projector.Scale())
	}
}

func TestResizeFailureStopsLoop(t *testing.T) {
	g := New(&scenedef.World{
		Config:    simulation.DefaultConfig(),
		Projector: viewport.New(viewport.Config{VirtualWidth: 240, VirtualHeight: 135}),
	}, nil, nil)

	g.Layout(480, 270)
	if err := g.Update(); !errors.Is(err, viewport.ErrNotBound) {
		t.Errorf("Expected ErrNotBound from Update, got %v", err)
	}
}

func TestIntroSpokenOnce(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.Layout(480, 270)

	for i := 0; i < 3; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	lines := g.World.Dialog.Lines(g.World.Player)
	if len(lines) != 1 || lines[0].Text != "Hello." {
		t.Fatalf("Expected the intro line once, got %d lines", len(lines))
	}

	// 2s at 60 tps
	for i := 0; i < 120; i++ {
		g.Update()
	}
	if g.World.Dialog.Len() != 0 {
		t.Errorf("Expected the intro to expire, %d lines left", g.World.Dialog.Len())
	}
}

func TestClickWalksPlayer(t *testing.T) {
	g, input, _ := newTestGame(t)
	g.Layout(480, 270)

	input.click(100, 200)
	g.Update()
	input.release()

	if g.World.Player.Target() != geom.Pt(50, 100) {
		t.Errorf("Expected target (50, 100), got %v", g.World.Player.Target())
	}
	// One tick at 60 units/s
	pos := g.World.Player.Position()
	if math.Abs(pos.X-119) > 1e-9 || pos.Y != 100 {
		t.Errorf("Expected player at (119, 100), got %v", pos)
	}

	for i := 0; i < 120; i++ {
		g.Update()
	}
	if g.World.Player.Position() != geom.Pt(50, 100) || g.World.Player.Moving() {
		t.Errorf("Expected player resting at (50, 100), got %v", g.World.Player.Position())
	}
}

func TestDrawFillsAndDrawsScene(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.Layout(480, 270)
	screen := rendertest.NewImage("screen", 480, 270)

	g.Draw(screen)

	if screen.Filled != letterboxColor {
		t.Errorf("Expected letterbox fill, got %v", screen.Filled)
	}
	found := false
	for _, d := range screen.Draws {
		if img, ok := d.Src.(*rendertest.Image); ok && img.Name == "hall.png" {
			found = true
		}
	}
	if !found {
		t.Error("Expected the room background drawn")
	}
}

func TestManagerPauseAndQuit(t *testing.T) {
	g, input, r := newTestGame(t)
	m := NewManager(g, r, input)
	m.Layout(480, 270)

	m.Update()
	if g.Ticks != 1 {
		t.Fatalf("Expected 1 tick, got %d", g.Ticks)
	}

	input.justPressed[render.KeySpace] = true
	m.Update()
	input.release()
	if m.State != StatePaused {
		t.Fatalf("Expected paused, got %s", m.State)
	}
	m.Update()
	if g.Ticks != 1 {
		t.Errorf("Expected no ticks while paused, got %d", g.Ticks)
	}

	m.Draw(rendertest.NewImage("screen", 480, 270))
	if len(r.Texts) == 0 || r.Texts[len(r.Texts)-1].Text != pauseLabel {
		t.Error("Expected the pause label drawn")
	}

	input.justPressed[render.KeyEscape] = true
	if err := m.Update(); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}
