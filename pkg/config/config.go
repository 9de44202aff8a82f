// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-tether/pkg/entity"
	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/physics"
)

// Scene names understood by the sandbox
const (
	SceneRope        = "rope"
	SceneMultispring = "multispring"
	SceneConstrained = "constrained"
	ScenePlayer      = "player"
	SceneClassic     = "classic"
)

// Scenes lists every scene in key order (1-5)
var Scenes = []string{SceneRope, SceneMultispring, SceneConstrained, ScenePlayer, SceneClassic}

// SandboxConfig contains configuration for a sandbox run
type SandboxConfig struct {
	Window      WindowConfig `json:"window" yaml:"window"`
	TickMillis  int          `json:"tickMillis" yaml:"tickMillis"`
	Gravity     Vec2         `json:"gravity" yaml:"gravity"`
	Texture     string       `json:"texture" yaml:"texture"`
	Scene       string       `json:"scene" yaml:"scene"`
	Input       InputConfig  `json:"input" yaml:"input"`
	Rope        RopeConfig   `json:"rope" yaml:"rope"`
	Multispring ChainConfig  `json:"multispring" yaml:"multispring"`
	Constrained ChainConfig  `json:"constrained" yaml:"constrained"`
	Player      PlayerConfig `json:"player" yaml:"player"`
}

// Vec2 is a point or vector in configuration files
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vector converts v to a physics vector
func (v Vec2) Vector() physics.Vector2D {
	return physics.Vector2D{X: v.X, Y: v.Y}
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Title  string `json:"title" yaml:"title"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// InputConfig contains pointer gesture configuration
type InputConfig struct {
	LongPressMillis int `json:"longPressMillis" yaml:"longPressMillis"`
}

// RopeConfig contains configuration for the single tether
type RopeConfig struct {
	Anchor Vec2    `json:"anchor" yaml:"anchor"`
	Start  Vec2    `json:"start" yaml:"start"`
	K      float64 `json:"k" yaml:"k"`
}

// ChainConfig contains configuration for a chain body
type ChainConfig struct {
	Anchor       Vec2    `json:"anchor" yaml:"anchor"`
	Nodes        int     `json:"nodes" yaml:"nodes"`
	Spacing      float64 `json:"spacing" yaml:"spacing"`
	K            float64 `json:"k,omitempty" yaml:"k,omitempty"`
	Friction     float64 `json:"friction,omitempty" yaml:"friction,omitempty"`
	EndMass      float64 `json:"endMass,omitempty" yaml:"endMass,omitempty"`
	PointerScale float64 `json:"pointerScale" yaml:"pointerScale"`
	Passes       int     `json:"passes,omitempty" yaml:"passes,omitempty"`
}

// PlayerConfig contains configuration for the player controller
type PlayerConfig struct {
	Start    Vec2    `json:"start" yaml:"start"`
	Floor    float64 `json:"floor" yaml:"floor"`
	Gravity  float64 `json:"gravity" yaml:"gravity"`
	MaxSpeed float64 `json:"maxSpeed" yaml:"maxSpeed"`
}

// isYAML reports whether path names a YAML file
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadConfig loads a configuration from a JSON or YAML file, chosen by
// extension. Fields missing from the file keep their default values.
func LoadConfig(path string) (*SandboxConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a JSON or YAML file, chosen by extension
func SaveConfig(config *SandboxConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default sandbox configuration
func DefaultConfig() *SandboxConfig {
	rope := entity.DefaultRopeParams()
	multi := entity.DefaultMultispringParams()
	constrained := entity.DefaultConstrainedParams()
	player := entity.DefaultPlayerParams()

	return &SandboxConfig{
		Window: WindowConfig{
			Title:  "Tether",
			Width:  entity.Width,
			Height: entity.Height,
		},
		TickMillis: 16,
		Gravity:    vec(physics.DefaultGravity),
		Texture:    entity.DefaultTexture,
		Scene:      SceneConstrained,
		Input: InputConfig{
			LongPressMillis: int(input.DefaultLongPressThreshold / time.Millisecond),
		},
		Rope: RopeConfig{
			Anchor: vec(rope.Anchor),
			Start:  vec(rope.Start),
			K:      rope.K,
		},
		Multispring: ChainConfig{
			Anchor:       vec(multi.Anchor),
			Nodes:        multi.Nodes,
			Spacing:      multi.Spacing,
			K:            multi.K,
			Friction:     multi.Friction,
			EndMass:      multi.EndMass,
			PointerScale: multi.PointerScale,
		},
		Constrained: ChainConfig{
			Anchor:       vec(constrained.Anchor),
			Nodes:        constrained.Nodes,
			Spacing:      constrained.Spacing,
			PointerScale: constrained.PointerScale,
			Passes:       constrained.Passes,
		},
		Player: PlayerConfig{
			Start:    vec(player.Start),
			Floor:    player.Floor,
			Gravity:  player.Gravity,
			MaxSpeed: player.MaxSpeed,
		},
	}
}

func vec(v physics.Vector2D) Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// TickInterval returns the wall-clock time between ticks
func (c *SandboxConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// LongPressThreshold returns the hold time above which a release is long
func (c *SandboxConfig) LongPressThreshold() time.Duration {
	return time.Duration(c.Input.LongPressMillis) * time.Millisecond
}

// RopeParams builds the rope body parameters
func (c *SandboxConfig) RopeParams() entity.RopeParams {
	return entity.RopeParams{
		Anchor:  c.Rope.Anchor.Vector(),
		Start:   c.Rope.Start.Vector(),
		K:       c.Rope.K,
		Gravity: c.Gravity.Vector(),
		Texture: c.Texture,
	}
}

// MultispringParams builds the mass-spring chain parameters
func (c *SandboxConfig) MultispringParams() entity.ChainParams {
	return c.chainParams(c.Multispring)
}

// ConstrainedParams builds the constrained chain parameters
func (c *SandboxConfig) ConstrainedParams() entity.ChainParams {
	return c.chainParams(c.Constrained)
}

func (c *SandboxConfig) chainParams(cc ChainConfig) entity.ChainParams {
	return entity.ChainParams{
		Anchor:       cc.Anchor.Vector(),
		Nodes:        cc.Nodes,
		Spacing:      cc.Spacing,
		K:            cc.K,
		Friction:     cc.Friction,
		EndMass:      cc.EndMass,
		Gravity:      c.Gravity.Vector(),
		PointerScale: cc.PointerScale,
		Passes:       cc.Passes,
		Texture:      c.Texture,
	}
}

// PlayerParams builds the player parameters
func (c *SandboxConfig) PlayerParams() entity.PlayerParams {
	return entity.PlayerParams{
		Start:    c.Player.Start.Vector(),
		Floor:    c.Player.Floor,
		Gravity:  c.Player.Gravity,
		MaxSpeed: c.Player.MaxSpeed,
		Texture:  c.Texture,
	}
}

// IsScene reports whether name is a known scene
func IsScene(name string) bool {
	for _, s := range Scenes {
		if s == name {
			return true
		}
	}
	return false
}

// Validate checks the configuration for values the simulation cannot run with
func (c *SandboxConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return &ValidationError{Field: "Window", Value: c.Window, Message: "window size must be positive"}
	}
	if c.TickMillis < 1 || c.TickMillis > 1000 {
		return &ValidationError{Field: "TickMillis", Value: c.TickMillis, Message: "must be between 1 and 1000"}
	}
	if c.Texture == "" {
		return &ValidationError{Field: "Texture", Value: c.Texture, Message: "cannot be empty"}
	}
	if !IsScene(c.Scene) {
		return &ValidationError{Field: "Scene", Value: c.Scene, Message: fmt.Sprintf("must be one of %s", strings.Join(Scenes, ", "))}
	}
	if c.Input.LongPressMillis < 0 {
		return &ValidationError{Field: "Input.LongPressMillis", Value: c.Input.LongPressMillis, Message: "cannot be negative"}
	}
	if c.Rope.Anchor == c.Rope.Start {
		return &ValidationError{Field: "Rope.Start", Value: c.Rope.Start, Message: "must differ from the anchor"}
	}
	if c.Rope.K <= 0 {
		return &ValidationError{Field: "Rope.K", Value: c.Rope.K, Message: "must be positive"}
	}
	if err := validateChain("Multispring", c.Multispring); err != nil {
		return err
	}
	if c.Multispring.K <= 0 {
		return &ValidationError{Field: "Multispring.K", Value: c.Multispring.K, Message: "must be positive"}
	}
	if c.Multispring.Friction < 0 {
		return &ValidationError{Field: "Multispring.Friction", Value: c.Multispring.Friction, Message: "cannot be negative"}
	}
	if c.Multispring.EndMass <= 0 {
		return &ValidationError{Field: "Multispring.EndMass", Value: c.Multispring.EndMass, Message: "must be positive"}
	}
	if err := validateChain("Constrained", c.Constrained); err != nil {
		return err
	}
	if c.Constrained.Passes < 1 {
		return &ValidationError{Field: "Constrained.Passes", Value: c.Constrained.Passes, Message: "must be at least 1"}
	}
	if c.Player.MaxSpeed < 0 {
		return &ValidationError{Field: "Player.MaxSpeed", Value: c.Player.MaxSpeed, Message: "cannot be negative"}
	}
	return nil
}

// validateChain checks the layout shared by both chains. Rest length comes
// from the first link, so two nodes and a positive spacing are required.
func validateChain(name string, cc ChainConfig) error {
	if cc.Nodes < 2 || cc.Nodes > 1000 {
		return &ValidationError{Field: name + ".Nodes", Value: cc.Nodes, Message: "must be between 2 and 1000"}
	}
	if cc.Spacing <= 0 {
		return &ValidationError{Field: name + ".Spacing", Value: cc.Spacing, Message: "must be positive"}
	}
	if cc.PointerScale <= 0 {
		return &ValidationError{Field: name + ".PointerScale", Value: cc.PointerScale, Message: "must be positive"}
	}
	return nil
}
