// Package interaction holds the shared interaction state (the selected verb
// plus handles to the item registry and dialog queue) and routes clicks on
// items to their verb behaviour.
package interaction

import (
	"fmt"
	"log"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/render/scene"
	"chosenoffset.com/adventure/internal/ui/dialog"
	"chosenoffset.com/adventure/internal/world/item"
)

// Verb selects which item behaviour a click triggers
type Verb string

const (
	VerbLook   Verb = "look"
	VerbUse    Verb = "use"
	VerbPickUp Verb = "pickup"
)

// Verbs lists every verb in menu order.
var Verbs = []Verb{VerbLook, VerbUse, VerbPickUp}

// Valid reports whether v is a known verb.
func (v Verb) Valid() bool {
	switch v {
	case VerbLook, VerbUse, VerbPickUp:
		return true
	}
	return false
}

// ParseVerb converts a config string to a Verb.
func ParseVerb(s string) (Verb, error) {
	v := Verb(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown verb: %s", s)
	}
	return v, nil
}

// Walker is anything that can be sent walking to a point, typically the player.
type Walker interface {
	SetTarget(p geom.Point)
}

// Context is the interaction state shared by the room, inventory and verb UI.
type Context struct {
	Items  *item.Registry
	Dialog *dialog.Queue

	verb      Verb
	listeners []func(Verb)
}

// NewContext creates a context with the given starting verb.
func NewContext(items *item.Registry, dialogs *dialog.Queue, initial Verb) *Context {
	if !initial.Valid() {
		initial = VerbPickUp
	}
	return &Context{
		Items:  items,
		Dialog: dialogs,
		verb:   initial,
	}
}

// Verb returns the selected verb.
func (c *Context) Verb() Verb {
	return c.verb
}

// SetVerb selects a verb. Selecting the current verb again, or an unknown
// one, does nothing.
func (c *Context) SetVerb(v Verb) {
	if v == c.verb || !v.Valid() {
		return
	}
	c.verb = v
	for _, fn := range c.listeners {
		fn(v)
	}
}

// OnVerbChange registers fn to run after the selected verb changes.
func (c *Context) OnVerbChange(fn func(Verb)) {
	c.listeners = append(c.listeners, fn)
}

// Run invokes the item behaviour matching the selected verb.
func (c *Context) Run(it *item.Item) {
	switch c.verb {
	case VerbLook:
		it.Look()
	case VerbUse:
		it.Use()
	case VerbPickUp:
		it.PickUp()
	}
}

// Dispatch sends the walker to the item's interaction point and runs the
// selected verb straight away; the behaviour does not wait for arrival.
func (c *Context) Dispatch(walker Walker, it *item.Item) {
	if walker != nil {
		walker.SetTarget(it.InteractionPoint())
	}
	c.Run(it)
}

// DispatchID resolves id through the registry and dispatches on it. Unknown
// ids are ignored.
func (c *Context) DispatchID(walker Walker, id string) bool {
	if c.Items == nil {
		return false
	}
	it, ok := c.Items.Get(id)
	if !ok {
		log.Printf("Warning: click on unknown item %q", id)
		return false
	}
	c.Dispatch(walker, it)
	return true
}

// BindObjectClicks installs a pointer handler on every registered item's
// scene sprite. A click dispatches on the item named by the sprite's ID and
// never reaches the background.
func (c *Context) BindObjectClicks(walker Walker) {
	if c.Items == nil {
		return
	}
	for _, id := range c.Items.IDs() {
		it, _ := c.Items.Get(id)
		it.StageView().OnPointerDown = func(e *scene.PointerEvent) {
			e.StopPropagation()
			c.DispatchID(walker, e.Current.ID)
		}
	}
}
