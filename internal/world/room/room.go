// Package room implements a location as a small state machine. Each state
// binds a background, a walkable region and the items present while it is
// active; switching state swaps all three together.
package room

import (
	"errors"
	"fmt"
	"log"

	"github.com/zyedidia/generic/mapset"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render"
	"chosenoffset.com/adventure/internal/render/scene"
	"chosenoffset.com/adventure/internal/world/item"
)

var (
	// ErrNotFound is returned for an unknown state id.
	ErrNotFound = errors.New("room state not found")
	// ErrNoStates is returned when a room is built without states.
	ErrNoStates = errors.New("room must have at least one state")
)

// State is one configuration of a room.
type State struct {
	ID         string
	Background render.Image
	Walkable   Region
	ItemIDs    []string
}

// AddItemID adds an item to the state's item list.
func (s *State) AddItemID(id string) {
	s.ItemIDs = append(s.ItemIDs, id)
}

// Fitter sizes a background sprite to the virtual frame.
type Fitter interface {
	FitContain(sprite *scene.Node)
}

// Options configures a new Room.
type Options struct {
	ID         string
	Registry   *item.Registry
	Fitter     Fitter
	States     []*State
	StartState string
}

// Room is a location whose look, walkable area and items depend on its current state.
type Room struct {
	// OnStateChange is called after a successful state switch.
	OnStateChange func(from, to string)

	id       string
	registry *item.Registry
	fitter   Fitter

	states  map[string]*State
	order   []string
	current string

	root       *scene.Node
	background *scene.Node
	itemsLayer *scene.Node

	visible mapset.Set[string]
}

// New builds a room and shows its start state.
func New(opts Options) (*Room, error) {
	if len(opts.States) == 0 {
		return nil, fmt.Errorf("room %s: %w", opts.ID, ErrNoStates)
	}

	r := &Room{
		id:       opts.ID,
		registry: opts.Registry,
		fitter:   opts.Fitter,
		states:   make(map[string]*State, len(opts.States)),
		visible:  mapset.New[string](),
	}
	for _, s := range opts.States {
		r.AddState(s)
	}

	initial, err := r.getState(opts.StartState)
	if err != nil {
		return nil, fmt.Errorf("unknown start state: %w", err)
	}
	r.current = initial.ID

	r.root = scene.NewContainer("room_" + opts.ID)
	r.background = scene.NewSprite("background", initial.Background)
	r.root.AddChild(r.background)
	r.itemsLayer = scene.NewContainer("items")
	r.root.AddChild(r.itemsLayer)

	r.loadStateItems(initial)
	r.refreshView()

	return r, nil
}

// ID returns the room id.
func (r *Room) ID() string {
	return r.id
}

// Root returns the room's scene node.
func (r *Room) Root() *scene.Node {
	return r.root
}

// Background returns the background sprite.
func (r *Room) Background() *scene.Node {
	return r.background
}

// Attach adds the room to the world container once.
func (r *Room) Attach(world *scene.Node) {
	if r.root.Parent() == nil {
		world.AddChild(r.root)
	}
}

// AddState registers a state, replacing one with the same id. Replacing the
// active state does not refresh the view until the next switch.
func (r *Room) AddState(s *State) {
	if _, exists := r.states[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	r.states[s.ID] = s
}

// StateIDs returns the state ids in registration order.
func (r *Room) StateIDs() []string {
	return append([]string(nil), r.order...)
}

// CurrentStateID returns the active state id.
func (r *Room) CurrentStateID() string {
	return r.current
}

// CurrentState returns the active state.
func (r *Room) CurrentState() *State {
	return r.states[r.current]
}

// IsPassable reports whether p is walkable in the active state. Without an
// active state or region everything is blocked.
func (r *Room) IsPassable(p geom.Point) bool {
	state, ok := r.states[r.current]
	if !ok || state.Walkable == nil {
		return false
	}
	return state.Walkable.Contains(p)
}

// SetCurrentState switches the room to the state with the given id. The
// background, walkable region and visible items change together. Switching
// to the active state does nothing.
func (r *Room) SetCurrentState(id string) error {
	if id == r.current {
		return nil
	}

	next, err := r.getState(id)
	if err != nil {
		return err
	}
	prev := r.current
	r.current = id

	r.background.SetTexture(next.Background)
	r.loadStateItems(next)
	r.refreshView()

	if r.OnStateChange != nil {
		r.OnStateChange(prev, id)
	}
	return nil
}

// IsVisible reports whether the item is shown in the active state.
func (r *Room) IsVisible(itemID string) bool {
	return r.visible.Has(itemID)
}

// VisibleItems returns the ids of the items shown, in state order.
func (r *Room) VisibleItems() []string {
	var ids []string
	for _, id := range r.states[r.current].ItemIDs {
		if r.visible.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *Room) loadStateItems(state *State) {
	r.itemsLayer.RemoveChildren()
	r.visible.Clear()

	for _, id := range state.ItemIDs {
		if r.registry == nil {
			break
		}
		it, ok := r.registry.Get(id)
		if !ok {
			log.Printf("Warning: room %s state %s lists unknown item %q", r.id, state.ID, id)
			continue
		}
		r.itemsLayer.AddChild(it.StageView())
		r.visible.Put(id)
	}
}

func (r *Room) refreshView() {
	if r.fitter != nil {
		r.fitter.FitContain(r.background)
	}
}

func (r *Room) getState(id string) (*State, error) {
	s, ok := r.states[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s, nil
}
