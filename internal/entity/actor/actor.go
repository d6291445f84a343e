// Package actor provides the player-controlled character: a position that
// walks in a straight line toward a target at constant speed, vetoed by the
// current room's passability test.
package actor

import (
	"errors"
	"fmt"
	"math"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render"
	"chosenoffset.com/adventure/internal/render/scene"
)

// ErrMissingAnimation is returned when a required animation has no frames.
var ErrMissingAnimation = errors.New("missing actor animation")

const (
	DefaultSpeed          = 60.0 // world units per second
	DefaultStopEpsilon    = 0.5
	DefaultAnimationSpeed = 0.15
)

// Passability is implemented by anything that can veto a position,
// typically the active room.
type Passability interface {
	IsPassable(p geom.Point) bool
}

// Facing is the horizontal direction the actor looks in
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Options configures a new Actor. Zero numeric values select the defaults.
type Options struct {
	ID             string
	WalkFrames     []render.Image
	IdleFrames     []render.Image
	Start          geom.Point
	Speed          float64
	StopEpsilon    float64
	AnimationSpeed float64
}

// Actor is a walking character.
type Actor struct {
	id          string
	pos         geom.Point
	target      geom.Point
	speed       float64
	stopEpsilon float64
	moving      bool
	facing      Facing

	walkFrames []render.Image
	idleFrames []render.Image
	view       *scene.Node

	room Passability
}

// New creates an idle actor standing at opts.Start.
func New(opts Options) (*Actor, error) {
	if len(opts.WalkFrames) == 0 {
		return nil, fmt.Errorf("actor %s walk: %w", opts.ID, ErrMissingAnimation)
	}
	if len(opts.IdleFrames) == 0 {
		return nil, fmt.Errorf("actor %s idle: %w", opts.ID, ErrMissingAnimation)
	}

	a := &Actor{
		id:          opts.ID,
		pos:         opts.Start,
		target:      opts.Start,
		speed:       opts.Speed,
		stopEpsilon: opts.StopEpsilon,
		walkFrames:  opts.WalkFrames,
		idleFrames:  opts.IdleFrames,
	}
	if a.speed <= 0 {
		a.speed = DefaultSpeed
	}
	if a.stopEpsilon <= 0 {
		a.stopEpsilon = DefaultStopEpsilon
	}
	animSpeed := opts.AnimationSpeed
	if animSpeed <= 0 {
		animSpeed = DefaultAnimationSpeed
	}

	a.view = scene.NewAnimatedSprite(opts.ID, opts.IdleFrames)
	a.view.ID = opts.ID
	a.view.AnimationSpeed = animSpeed
	a.view.SetAnchor(0.5, 1)
	a.view.Play()
	a.syncView()

	return a, nil
}

// ID returns the actor id.
func (a *Actor) ID() string {
	return a.id
}

// View returns the actor's scene node.
func (a *Actor) View() *scene.Node {
	return a.view
}

// BindRoom sets the passability test used to veto steps. Nil unbinds it.
func (a *Actor) BindRoom(room Passability) {
	a.room = room
}

// Position returns the current position.
func (a *Actor) Position() geom.Point {
	return a.pos
}

// Target returns the movement target.
func (a *Actor) Target() geom.Point {
	return a.target
}

// Moving reports whether the actor is in its walking state.
func (a *Actor) Moving() bool {
	return a.moving
}

// Facing returns the direction the actor looks in.
func (a *Actor) Facing() Facing {
	return a.facing
}

// Speed returns the walking speed in world units per second.
func (a *Actor) Speed() float64 {
	return a.speed
}

// SetPosition places the actor at p and cancels any movement.
func (a *Actor) SetPosition(p geom.Point) {
	a.pos = p
	a.target = p
	a.setMoving(false)
	a.syncView()
}

// SetTarget replaces the movement target. The actor turns toward it unless
// it lies straight above or below.
func (a *Actor) SetTarget(p geom.Point) {
	switch {
	case p.X < a.pos.X:
		a.facing = FacingLeft
	case p.X > a.pos.X:
		a.facing = FacingRight
	}
	a.target = p
	a.syncView()
}

// Step advances the actor by dt seconds.
func (a *Actor) Step(dt float64) {
	if dt <= 0 {
		return
	}

	dist := geom.Distance(a.pos, a.target)
	if dist <= a.stopEpsilon || dist == 0 {
		if a.moving {
			a.setMoving(false)
		}
		a.pos = a.target
		a.syncView()
		return
	}

	if !a.moving {
		a.setMoving(true)
	}

	t := math.Min(1, a.speed*dt/dist)
	prev := a.pos
	next := a.target
	if t < 1 {
		next = geom.Lerp(prev, a.target, t)
	}

	if a.room != nil && !a.room.IsPassable(next) {
		a.target = prev
		a.setMoving(false)
		a.syncView()
		return
	}

	a.pos = next
	a.syncView()
}

func (a *Actor) setMoving(moving bool) {
	if a.moving == moving {
		return
	}
	a.moving = moving
	if moving {
		a.view.SetFrames(a.walkFrames)
	} else {
		a.view.SetFrames(a.idleFrames)
	}
	a.view.Play()
}

func (a *Actor) syncView() {
	a.view.SetPosition(a.pos.X, a.pos.Y)
	sx := math.Abs(a.view.ScaleX)
	if a.facing == FacingLeft {
		sx = -sx
	}
	a.view.ScaleX = sx
}
