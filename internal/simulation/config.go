// Package simulation provides the tunable settings of the game: display,
// actor movement, dialog, verb menu and inventory layout.
// Settings are loaded from a JSON file over built-in defaults and can be
// overridden from the environment.
package simulation

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"chosenoffset.com/adventure/internal/core/geom"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ADVENTURE_"

// Config holds all settings for a game
type Config struct {
	// Scene definition file
	Scene string `json:"scene"`

	Display   DisplayConfig   `json:"display"`
	Actor     ActorConfig     `json:"actor"`
	Dialog    DialogConfig    `json:"dialog"`
	Verbs     VerbConfig      `json:"verbs"`
	Inventory InventoryConfig `json:"inventory"`
}

// DisplayConfig defines the virtual frame and the window
type DisplayConfig struct {
	VirtualWidth   float64 `json:"virtual_width"`   // World units across
	VirtualHeight  float64 `json:"virtual_height"`  // World units down
	IntegerScaling bool    `json:"integer_scaling"` // Floor the scale to a whole number
	WindowWidth    int     `json:"window_width"`
	WindowHeight   int     `json:"window_height"`
	TPS            int     `json:"tps"` // Simulation ticks per second
	Title          string  `json:"title"`
}

// ActorConfig defines player movement
type ActorConfig struct {
	Speed          float64 `json:"speed"`           // World units per second
	StopEpsilon    float64 `json:"stop_epsilon"`    // Arrival distance
	AnimationSpeed float64 `json:"animation_speed"` // Frames per 1/60 s
	WalkAnimation  string  `json:"walk_animation"`
	IdleAnimation  string  `json:"idle_animation"`
}

// DialogConfig defines spoken lines
type DialogConfig struct {
	LineDurationMs float64 `json:"line_duration_ms"`
	VerticalOffset float64 `json:"vertical_offset"` // Screen pixels above the speaker
	StackOffset    float64 `json:"stack_offset"`    // 0 lets concurrent lines overlap
	FontScale      float64 `json:"font_scale"`
	Color          string  `json:"color"` // #rrggbb
}

// VerbConfig defines the verb menu
type VerbConfig struct {
	Initial       string     `json:"initial"`
	SelectedAlpha float64    `json:"selected_alpha"`
	DimmedAlpha   float64    `json:"dimmed_alpha"`
	Origin        geom.Point `json:"origin"`
	Spacing       float64    `json:"spacing"`
	IconScale     float64    `json:"icon_scale"`
}

// InventoryConfig defines the inventory bar
type InventoryConfig struct {
	Origin      geom.Point `json:"origin"`
	SlotX       float64    `json:"slot_x"`
	SlotSpacing float64    `json:"slot_spacing"`
	SlotY       float64    `json:"slot_y"`
	IconScale   float64    `json:"icon_scale"`
	PanelWidth  float64    `json:"panel_width"`
	PanelHeight float64    `json:"panel_height"`
}

// DefaultConfig returns the settings of the demo game
func DefaultConfig() *Config {
	return &Config{
		Scene: "data/scene.yaml",
		Display: DisplayConfig{
			VirtualWidth:   240,
			VirtualHeight:  135,
			IntegerScaling: false,
			WindowWidth:    1280,
			WindowHeight:   720,
			TPS:            60,
			Title:          "Adventure",
		},
		Actor: ActorConfig{
			Speed:          60,
			StopEpsilon:    0.5,
			AnimationSpeed: 0.15,
			WalkAnimation:  "walk",
			IdleAnimation:  "idle",
		},
		Dialog: DialogConfig{
			LineDurationMs: 2000,
			VerticalOffset: 256,
			StackOffset:    0,
			FontScale:      2,
			Color:          "#00b913",
		},
		Verbs: VerbConfig{
			Initial:       "pickup",
			SelectedAlpha: 1.0,
			DimmedAlpha:   0.25,
			Origin:        geom.Pt(5, 0),
			Spacing:       10,
			IconScale:     1,
		},
		Inventory: InventoryConfig{
			Origin:      geom.Pt(40, 0),
			SlotX:       4,
			SlotSpacing: 14,
			SlotY:       2,
			IconScale:   0.5,
		},
	}
}

// LoadConfig loads config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would break the simulation
func (c *Config) Validate() error {
	if c.Display.VirtualWidth <= 0 || c.Display.VirtualHeight <= 0 {
		return fmt.Errorf("invalid virtual resolution: %gx%g", c.Display.VirtualWidth, c.Display.VirtualHeight)
	}
	if c.Display.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.Display.TPS)
	}
	if c.Actor.Speed <= 0 {
		return fmt.Errorf("actor speed must be positive, got %g", c.Actor.Speed)
	}
	if c.Actor.StopEpsilon < 0 {
		return fmt.Errorf("stop epsilon cannot be negative, got %g", c.Actor.StopEpsilon)
	}
	if c.Dialog.LineDurationMs <= 0 {
		return fmt.Errorf("dialog line duration must be positive, got %g", c.Dialog.LineDurationMs)
	}
	if _, err := ParseHexColor(c.Dialog.Color); err != nil {
		return fmt.Errorf("dialog color: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from ADVENTURE_* environment variables.
func (c *Config) ApplyEnv() error {
	lookup := func(name string) (string, bool) {
		v, ok := os.LookupEnv(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := lookup("SCENE"); ok {
		c.Scene = v
	}
	if v, ok := lookup("TITLE"); ok {
		c.Display.Title = v
	}

	boolVars := map[string]*bool{
		"INTEGER_SCALING": &c.Display.IntegerScaling,
	}
	for name, dst := range boolVars {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = b
		}
	}

	intVars := map[string]*int{
		"WINDOW_WIDTH":  &c.Display.WindowWidth,
		"WINDOW_HEIGHT": &c.Display.WindowHeight,
		"TPS":           &c.Display.TPS,
	}
	for name, dst := range intVars {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	floatVars := map[string]*float64{
		"ACTOR_SPEED":      &c.Actor.Speed,
		"STOP_EPSILON":     &c.Actor.StopEpsilon,
		"DIALOG_DURATION":  &c.Dialog.LineDurationMs,
		"DIALOG_STACK":     &c.Dialog.StackOffset,
		"DIALOG_FONTSCALE": &c.Dialog.FontScale,
	}
	for name, dst := range floatVars {
		if v, ok := lookup(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = f
		}
	}

	return c.Validate()
}

// LineDurationSeconds returns the dialog line lifetime in seconds.
func (c *Config) LineDurationSeconds() float64 {
	return c.Dialog.LineDurationMs / 1000
}

// TickSeconds returns the duration of one simulation tick.
func (c *Config) TickSeconds() float64 {
	return 1 / float64(c.Display.TPS)
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
