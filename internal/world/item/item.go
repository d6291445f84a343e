// Package item provides interactive scene objects: named things with a set of
// visual states, an interaction point the player walks to, and optional
// look/use/pickup behaviour.
package item

import (
	"errors"
	"fmt"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render"
	"chosenoffset.com/adventure/internal/render/scene"
)

var (
	// ErrNotFound is returned when a state id is unknown.
	ErrNotFound = errors.New("item state not found")
	// ErrNoStates is returned when an item is built without states.
	ErrNoStates = errors.New("item must have at least one state")
)

// DefaultStageScale is the scale applied to the in-scene sprite.
const DefaultStageScale = 0.5

// State binds a state id to the textures shown in the scene and in the inventory.
type State struct {
	ID        string
	Stage     render.Image
	Inventory render.Image
}

// Callbacks holds the optional verb behaviours. A nil callback makes the
// verb a no-op for this item.
type Callbacks struct {
	OnLook   func()
	OnUse    func()
	OnPickUp func()
}

// Options configures a new Item.
type Options struct {
	ID               string
	Position         geom.Point
	InteractionPoint geom.Point
	States           []State
	StartState       string
	StageScale       float64
	Callbacks
}

// Item is an interactive object placed in a room.
type Item struct {
	Callbacks

	// OnStateChange is called after the state actually changed.
	OnStateChange func(from, to string)

	id               string
	interactionPoint geom.Point

	states  map[string]State
	order   []string
	current string

	stageView     *scene.Node
	inventoryView *scene.Node
}

// New builds an item. It fails when no states are given or the start state is unknown.
func New(opts Options) (*Item, error) {
	if len(opts.States) == 0 {
		return nil, fmt.Errorf("item %s: %w", opts.ID, ErrNoStates)
	}

	it := &Item{
		Callbacks:        opts.Callbacks,
		id:               opts.ID,
		interactionPoint: opts.InteractionPoint,
		states:           make(map[string]State, len(opts.States)),
	}
	for _, s := range opts.States {
		it.AddState(s)
	}

	start, err := it.getState(opts.StartState)
	if err != nil {
		return nil, err
	}
	it.current = start.ID

	scale := opts.StageScale
	if scale <= 0 {
		scale = DefaultStageScale
	}

	it.stageView = scene.NewSprite(opts.ID, start.Stage)
	it.stageView.ID = opts.ID
	it.stageView.SetAnchor(0.5, 0.5)
	it.stageView.SetPosition(opts.Position.X, opts.Position.Y)
	it.stageView.SetScale(scale)
	it.stageView.Interactive = true

	it.inventoryView = scene.NewSprite(opts.ID+"_inventory", start.Inventory)
	it.inventoryView.ID = opts.ID

	return it, nil
}

// ID returns the item's stable identifier.
func (it *Item) ID() string {
	return it.id
}

// Position returns the anchor position of the in-scene sprite.
func (it *Item) Position() geom.Point {
	return it.stageView.Position()
}

// InteractionPoint returns where the player stands to interact with the item.
func (it *Item) InteractionPoint() geom.Point {
	return it.interactionPoint
}

// StageView returns the sprite shown in the room.
func (it *Item) StageView() *scene.Node {
	return it.stageView
}

// InventoryView returns the icon shown in the inventory bar.
func (it *Item) InventoryView() *scene.Node {
	return it.inventoryView
}

// AddState registers a state, replacing one with the same id.
func (it *Item) AddState(s State) {
	if _, exists := it.states[s.ID]; !exists {
		it.order = append(it.order, s.ID)
	}
	it.states[s.ID] = s
}

// StateIDs returns the state ids in registration order.
func (it *Item) StateIDs() []string {
	return append([]string(nil), it.order...)
}

// StateID returns the current state id.
func (it *Item) StateID() string {
	return it.current
}

// SetState switches to the state with the given id. Switching to the
// current state does nothing.
func (it *Item) SetState(id string) error {
	if id == it.current {
		return nil
	}

	next, err := it.getState(id)
	if err != nil {
		return err
	}
	prev := it.current
	it.current = next.ID

	it.stageView.SetTexture(next.Stage)
	it.inventoryView.SetTexture(next.Inventory)

	if it.OnStateChange != nil {
		it.OnStateChange(prev, next.ID)
	}
	return nil
}

// Look runs the look behaviour, if any.
func (it *Item) Look() {
	if it.OnLook != nil {
		it.OnLook()
	}
}

// Use runs the use behaviour, if any.
func (it *Item) Use() {
	if it.OnUse != nil {
		it.OnUse()
	}
}

// PickUp runs the pickup behaviour, if any.
func (it *Item) PickUp() {
	if it.OnPickUp != nil {
		it.OnPickUp()
	}
}

func (it *Item) getState(id string) (State, error) {
	s, ok := it.states[id]
	if !ok {
		return State{}, fmt.Errorf("%s:%s: %w", it.id, id, ErrNotFound)
	}
	return s, nil
}
