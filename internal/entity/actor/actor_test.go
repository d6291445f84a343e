package actor

import (
	"errors"
	"math"
	"testing"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render"
	"chosenoffset.com/adventure/internal/render/rendertest"
)

const tick = 1.0 / 60.0

type passFunc func(p geom.Point) bool

func (f passFunc) IsPassable(p geom.Point) bool { return f(p) }

func frames(prefix string, n int) []render.Image {
	out := make([]render.Image, n)
	for i := range out {
		out[i] = rendertest.NewImage(prefix, 16, 32)
	}
	return out
}

func newTestActor(t *testing.T, start geom.Point) *Actor {
	t.Helper()
	a, err := New(Options{
		ID:          "hero",
		WalkFrames:  frames("walk", 4),
		IdleFrames:  frames("idle", 2),
		Start:       start,
		Speed:       60,
		StopEpsilon: 0.5,
	})
	if err != nil {
		t.Fatalf("Failed to create actor: %v", err)
	}
	return a
}

func TestNewRequiresAnimations(t *testing.T) {
	_, err := New(Options{ID: "hero", IdleFrames: frames("idle", 1)})
	if !errors.Is(err, ErrMissingAnimation) {
		t.Errorf("Expected ErrMissingAnimation for walk, got %v", err)
	}
	_, err = New(Options{ID: "hero", WalkFrames: frames("walk", 1)})
	if !errors.Is(err, ErrMissingAnimation) {
		t.Errorf("Expected ErrMissingAnimation for idle, got %v", err)
	}
}

func TestNewStartsIdle(t *testing.T) {
	a := newTestActor(t, geom.Pt(10, 10))
	if a.Moving() {
		t.Error("Expected new actor to be idle")
	}
	a.Step(tick)
	if a.Moving() || a.Position() != geom.Pt(10, 10) {
		t.Errorf("Expected actor to stay idle at (10, 10), got %v moving=%v", a.Position(), a.Moving())
	}
}

func TestDefaults(t *testing.T) {
	a, err := New(Options{ID: "hero", WalkFrames: frames("walk", 1), IdleFrames: frames("idle", 1)})
	if err != nil {
		t.Fatalf("Failed to create actor: %v", err)
	}
	if a.Speed() != DefaultSpeed {
		t.Errorf("Expected default speed %f, got %f", DefaultSpeed, a.Speed())
	}
	if a.View().AnimationSpeed != DefaultAnimationSpeed {
		t.Errorf("Expected default animation speed %f, got %f", DefaultAnimationSpeed, a.View().AnimationSpeed)
	}
}

func TestSetTargetUpdatesFacing(t *testing.T) {
	a := newTestActor(t, geom.Pt(100, 50))

	a.SetTarget(geom.Pt(50, 50))
	if a.Facing() != FacingLeft || a.View().ScaleX >= 0 {
		t.Errorf("Expected facing left with mirrored view, got %v scaleX=%f", a.Facing(), a.View().ScaleX)
	}

	// Straight down keeps the previous facing
	a.SetTarget(geom.Pt(100, 90))
	if a.Facing() != FacingLeft {
		t.Error("Expected facing unchanged for a vertical target")
	}

	a.SetTarget(geom.Pt(150, 50))
	if a.Facing() != FacingRight || a.View().ScaleX <= 0 {
		t.Errorf("Expected facing right, got %v scaleX=%f", a.Facing(), a.View().ScaleX)
	}
}

func TestStepMovesAtConstantSpeed(t *testing.T) {
	a := newTestActor(t, geom.Pt(0, 0))
	a.SetTarget(geom.Pt(100, 0))

	a.Step(0.5)
	if !a.Moving() {
		t.Error("Expected actor to be walking")
	}
	if math.Abs(a.Position().X-30) > 1e-9 {
		t.Errorf("Expected x=30 after half a second at speed 60, got %f", a.Position().X)
	}
}

func TestStepNonPositiveDtDoesNothing(t *testing.T) {
	a := newTestActor(t, geom.Pt(0, 0))
	a.SetTarget(geom.Pt(100, 0))

	a.Step(0)
	a.Step(-1)
	if a.Position() != geom.Pt(0, 0) {
		t.Errorf("Expected no movement, got %v", a.Position())
	}
}

func TestStepWithinEpsilonSnapsToTarget(t *testing.T) {
	a := newTestActor(t, geom.Pt(10, 10))
	a.SetTarget(geom.Pt(30, 10))
	a.Step(tick)
	if !a.Moving() {
		t.Fatal("Expected actor to be walking")
	}

	a.SetPosition(geom.Pt(10, 10))
	a.SetTarget(geom.Pt(10.3, 10.2))
	a.Step(tick)
	if a.Moving() {
		t.Error("Expected actor to be idle within stop epsilon")
	}
	if a.Position() != geom.Pt(10.3, 10.2) {
		t.Errorf("Expected position snapped to target, got %v", a.Position())
	}
}

func TestImpassableStepIsVetoed(t *testing.T) {
	a := newTestActor(t, geom.Pt(50, 50))
	a.BindRoom(passFunc(func(p geom.Point) bool { return p.X < 51.5 }))

	a.SetTarget(geom.Pt(100, 50))
	a.Step(tick) // x = 51, allowed
	before := a.Position()
	a.Step(tick) // x = 52, blocked

	if a.Position() != before {
		t.Errorf("Expected position rolled back to %v, got %v", before, a.Position())
	}
	if a.Target() != before {
		t.Errorf("Expected target collapsed to %v, got %v", before, a.Target())
	}
	if a.Moving() {
		t.Error("Expected actor idle after veto")
	}

	a.Step(tick)
	if a.Position() != before || a.Moving() {
		t.Error("Expected a second step to stay put")
	}
}

func TestSetTargetMidMoveReplacesTarget(t *testing.T) {
	a := newTestActor(t, geom.Pt(0, 0))
	a.SetTarget(geom.Pt(100, 0))
	a.Step(0.5)

	a.SetTarget(geom.Pt(0, 0))
	if a.Facing() != FacingLeft {
		t.Error("Expected actor to turn around")
	}
	for i := 0; i < 120; i++ {
		a.Step(tick)
	}
	if a.Position() != geom.Pt(0, 0) {
		t.Errorf("Expected actor back at origin, got %v", a.Position())
	}
}

func TestWalkConvergesOnTarget(t *testing.T) {
	a := newTestActor(t, geom.Pt(120, 67))
	a.BindRoom(passFunc(func(geom.Point) bool { return true }))
	target := geom.Pt(180, 95)
	a.SetTarget(target)

	// distance / speed is a bit over 1.1s; give it 2s of ticks
	for i := 0; i < 120; i++ {
		a.Step(tick)
	}

	if a.Position() != target {
		t.Errorf("Expected actor at %v, got %v", target, a.Position())
	}
	if a.Moving() {
		t.Error("Expected actor idle after arriving")
	}
	if v := a.View(); v.X != target.X || v.Y != target.Y {
		t.Errorf("Expected view at target, got (%f, %f)", v.X, v.Y)
	}
}

func TestWalkSwitchesAnimation(t *testing.T) {
	a := newTestActor(t, geom.Pt(0, 0))
	idle := a.View().Texture()

	a.SetTarget(geom.Pt(20, 0))
	a.Step(tick)
	if a.View().Texture().(*rendertest.Image).Name != "walk" {
		t.Error("Expected walk frames while moving")
	}
	for i := 0; i < 60; i++ {
		a.Step(tick)
	}
	if a.View().Texture().(*rendertest.Image).Name != idle.(*rendertest.Image).Name {
		t.Error("Expected idle frames after arriving")
	}
	if !a.View().Playing() {
		t.Error("Expected animation to keep playing")
	}
}
