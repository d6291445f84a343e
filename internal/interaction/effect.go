package interaction

import (
	"fmt"
	"log"

	"chosenoffset.com/adventure/internal/ui/dialog"
	"chosenoffset.com/adventure/internal/world/item"
)

// EffectType names something an item behaviour does
type EffectType string

const (
	EffectSay          EffectType = "say"            // Speaker says Value
	EffectSetState     EffectType = "set_state"      // Target item switches to state Value
	EffectSetRoomState EffectType = "set_room_state" // Room switches to state Value
	EffectPickUp       EffectType = "pickup"         // Target item goes into the inventory
)

// Effect is a single step of a declarative item behaviour
type Effect struct {
	Type   EffectType `yaml:"type" json:"type"`
	Value  string     `yaml:"value,omitempty" json:"value,omitempty"`
	Target string     `yaml:"target,omitempty" json:"target,omitempty"` // Item id, defaults to the item itself
}

// Validate checks that the effect is properly configured
func (e Effect) Validate() error {
	switch e.Type {
	case EffectSay, EffectSetState, EffectSetRoomState:
		if e.Value == "" {
			return fmt.Errorf("effect %s needs a value", e.Type)
		}
	case EffectPickUp:
	case "":
		return fmt.Errorf("effect must have a type")
	default:
		return fmt.Errorf("unknown effect type: %s", e.Type)
	}
	return nil
}

// Behaviour lists the effects for each verb
type Behaviour struct {
	Look   []Effect `yaml:"look,omitempty" json:"look,omitempty"`
	Use    []Effect `yaml:"use,omitempty" json:"use,omitempty"`
	PickUp []Effect `yaml:"pickup,omitempty" json:"pickup,omitempty"`
}

// For returns the effects bound to a verb
func (b Behaviour) For(v Verb) []Effect {
	switch v {
	case VerbLook:
		return b.Look
	case VerbUse:
		return b.Use
	case VerbPickUp:
		return b.PickUp
	}
	return nil
}

// Validate checks every effect of the behaviour
func (b Behaviour) Validate() error {
	for _, verb := range Verbs {
		for i, e := range b.For(verb) {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("%s effect %d: %w", verb, i, err)
			}
		}
	}
	return nil
}

// RoomSwitcher changes the active room state.
type RoomSwitcher interface {
	SetCurrentState(id string) error
}

// Picker moves items into the inventory.
type Picker interface {
	Pick(it *item.Item) bool
}

// Env is what effects act on. Nil members turn the matching effects into
// logged no-ops.
type Env struct {
	Context   *Context
	Speaker   dialog.Speaker
	Room      RoomSwitcher
	Inventory Picker
}

// Bind turns a declarative behaviour into the item's verb callbacks. Verbs
// without effects keep whatever callback the item already had.
func (env *Env) Bind(it *item.Item, b Behaviour) {
	if len(b.Look) > 0 {
		it.OnLook = func() { env.Run(it, b.Look) }
	}
	if len(b.Use) > 0 {
		it.OnUse = func() { env.Run(it, b.Use) }
	}
	if len(b.PickUp) > 0 {
		it.OnPickUp = func() { env.Run(it, b.PickUp) }
	}
}

// Run applies effects in order on behalf of self. A failing effect is logged
// and the rest still run.
func (env *Env) Run(self *item.Item, effects []Effect) {
	for _, e := range effects {
		if err := env.Apply(self, e); err != nil {
			log.Printf("Warning: %s effect on %s: %v", e.Type, self.ID(), err)
		}
	}
}

// Apply performs a single effect.
func (env *Env) Apply(self *item.Item, e Effect) error {
	switch e.Type {
	case EffectSay:
		if env.Context == nil || env.Context.Dialog == nil || env.Speaker == nil {
			return fmt.Errorf("no dialog queue or speaker")
		}
		env.Context.Dialog.Add(env.Speaker, e.Value)
		return nil

	case EffectSetState:
		target, err := env.target(self, e)
		if err != nil {
			return err
		}
		return target.SetState(e.Value)

	case EffectSetRoomState:
		if env.Room == nil {
			return fmt.Errorf("no room bound")
		}
		return env.Room.SetCurrentState(e.Value)

	case EffectPickUp:
		if env.Inventory == nil {
			return fmt.Errorf("no inventory bound")
		}
		target, err := env.target(self, e)
		if err != nil {
			return err
		}
		env.Inventory.Pick(target)
		return nil
	}
	return fmt.Errorf("unknown effect type: %s", e.Type)
}

func (env *Env) target(self *item.Item, e Effect) (*item.Item, error) {
	if e.Target == "" || e.Target == self.ID() {
		return self, nil
	}
	if env.Context == nil || env.Context.Items == nil {
		return nil, fmt.Errorf("no item registry")
	}
	it, ok := env.Context.Items.Get(e.Target)
	if !ok {
		return nil, fmt.Errorf("unknown target item %q", e.Target)
	}
	return it, nil
}
