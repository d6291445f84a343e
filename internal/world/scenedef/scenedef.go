// Package scenedef describes a playable scene in YAML: the player, the items
// with their states and verb effects, the room states and the verb icons.
package scenedef

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/adventure/internal/core/geom"
	"chosenoffset.com/adventure/internal/interaction"
)

// Definition is the root of a scene file
type Definition struct {
	Name   string            `yaml:"name"`
	Player PlayerDef         `yaml:"player"`
	Items  []ItemDef         `yaml:"items"`
	Room   RoomDef           `yaml:"room"`
	Verbs  map[string]string `yaml:"verbs"` // verb -> icon image path
}

// PlayerDef describes the player character
type PlayerDef struct {
	ID    string     `yaml:"id"`
	Sheet string     `yaml:"sheet"` // Sprite sheet JSON path
	Start geom.Point `yaml:"start"`
	Intro string     `yaml:"intro,omitempty"` // Spoken once when the scene starts
}

// ItemDef describes one interactive item
type ItemDef struct {
	ID               string         `yaml:"id"`
	Position         geom.Point     `yaml:"position"`
	InteractionPoint *geom.Point    `yaml:"interaction_point,omitempty"` // Defaults to Position
	Scale            float64        `yaml:"scale,omitempty"`
	StartState       string         `yaml:"start_state,omitempty"` // Defaults to the first state
	States           []ItemStateDef `yaml:"states"`

	interaction.Behaviour `yaml:",inline"`
}

// ItemStateDef binds an item state to its images
type ItemStateDef struct {
	ID             string `yaml:"id"`
	Image          string `yaml:"image"`
	InventoryImage string `yaml:"inventory_image,omitempty"` // Defaults to Image
}

// RoomDef describes the room and its states
type RoomDef struct {
	ID         string         `yaml:"id"`
	StartState string         `yaml:"start_state,omitempty"` // Defaults to the first state
	States     []RoomStateDef `yaml:"states"`
}

// RoomStateDef describes one room state. The walkable area is either a
// polygon or a pixel mask.
type RoomStateDef struct {
	ID          string       `yaml:"id"`
	Background  string       `yaml:"background"`
	WalkPolygon []geom.Point `yaml:"walk_polygon,omitempty"`
	WalkMask    string       `yaml:"walk_mask,omitempty"`
	MaskColor   string       `yaml:"mask_color,omitempty"` // #rrggbb, defaults to white
	MaskScale   float64      `yaml:"mask_scale,omitempty"` // Mask pixels per world unit
	Items       []string     `yaml:"items"`
}

// Load reads and validates a scene file
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a scene definition
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the definition is complete enough to build
func (d *Definition) Validate() error {
	if d.Player.ID == "" {
		return fmt.Errorf("player must have an id")
	}
	if d.Player.Sheet == "" {
		return fmt.Errorf("player %s needs a sprite sheet", d.Player.ID)
	}

	seen := make(map[string]bool, len(d.Items))
	for i, it := range d.Items {
		if it.ID == "" {
			return fmt.Errorf("item %d has no id", i)
		}
		if seen[it.ID] {
			return fmt.Errorf("duplicate item id: %s", it.ID)
		}
		seen[it.ID] = true
		if len(it.States) == 0 {
			return fmt.Errorf("item %s has no states", it.ID)
		}
		for _, s := range it.States {
			if s.ID == "" || s.Image == "" {
				return fmt.Errorf("item %s: every state needs an id and an image", it.ID)
			}
		}
		if err := it.Behaviour.Validate(); err != nil {
			return fmt.Errorf("item %s: %w", it.ID, err)
		}
	}

	if len(d.Room.States) == 0 {
		return fmt.Errorf("room %s has no states", d.Room.ID)
	}
	for _, s := range d.Room.States {
		if s.ID == "" || s.Background == "" {
			return fmt.Errorf("room %s: every state needs an id and a background", d.Room.ID)
		}
		if len(s.WalkPolygon) > 0 && s.WalkMask != "" {
			return fmt.Errorf("room state %s: use walk_polygon or walk_mask, not both", s.ID)
		}
	}

	for _, verb := range interaction.Verbs {
		if d.Verbs[string(verb)] == "" {
			return fmt.Errorf("missing icon for verb %s", verb)
		}
	}
	for name := range d.Verbs {
		if _, err := interaction.ParseVerb(name); err != nil {
			return err
		}
	}
	return nil
}

// startState returns id, or the first state when id is empty.
func (it *ItemDef) startState() string {
	if it.StartState != "" {
		return it.StartState
	}
	return it.States[0].ID
}

func (r *RoomDef) startState() string {
	if r.StartState != "" {
		return r.StartState
	}
	return r.States[0].ID
}
