// pkg/entity/player.go
package entity

import (
	"math"

	"github.com/opd-ai/go-tether/pkg/input"
	"github.com/opd-ai/go-tether/pkg/physics"
)

// Playfield dimensions in pixels
const (
	Width  = 640
	Height = 360
)

// PlayerState is the vertical movement state
type PlayerState int

const (
	Airborne PlayerState = iota
	Grounded
)

// String returns the state name
func (s PlayerState) String() string {
	if s == Grounded {
		return "grounded"
	}
	return "airborne"
}

// TetherState tells whether the player is attached to a tether
type TetherState int

const (
	Untethered TetherState = iota
	Tethered
)

// String returns the state name
func (s TetherState) String() string {
	if s == Tethered {
		return "tethered"
	}
	return "untethered"
}

// PlayerParams configures a Player
type PlayerParams struct {
	Start physics.Vector2D
	// Floor is the y coordinate the player lands on.
	Floor    float64
	Gravity  float64
	MaxSpeed float64
	Texture  string
}

// DefaultPlayerParams returns the player defaults. The floor leaves room for
// a 16 pixel sprite at the bottom of the playfield.
func DefaultPlayerParams() PlayerParams {
	return PlayerParams{
		Start:    physics.Vector2D{X: 10, Y: 0},
		Floor:    Height - 16,
		Gravity:  10,
		MaxSpeed: 4,
		Texture:  DefaultTexture,
	}
}

// Player falls until it lands, then runs toward the pointer while the button
// is held. A short click toggles its tether.
type Player struct {
	BaseBody
	physics.KinematicState

	state  PlayerState
	tether TetherState
	params PlayerParams
}

// NewPlayer creates an airborne, untethered player at the start position
func NewPlayer(r Renderer, p PlayerParams) (*Player, error) {
	base, err := newBaseBody(r, "player", p.Texture)
	if err != nil {
		return nil, err
	}
	return &Player{
		BaseBody:       base,
		KinematicState: physics.KinematicState{Position: p.Start},
		state:          Airborne,
		tether:         Untethered,
		params:         p,
	}, nil
}

// State returns the vertical movement state
func (p *Player) State() PlayerState {
	return p.state
}

// Tether returns the tether state
func (p *Player) Tether() TetherState {
	return p.tether
}

// Update runs both state machines and integrates the position
func (p *Player) Update(snap input.Snapshot) {
	switch p.state {
	case Airborne:
		if p.Position.Y+p.Velocity.Y < p.params.Floor {
			p.Accelerate(physics.Vector2D{Y: p.params.Gravity}, physics.DeltaTime)
		} else {
			// Landing is one-way: nothing lifts the player off the floor.
			p.Velocity.Y = 0
			p.Position.Y = p.params.Floor
			p.state = Grounded
		}
	case Grounded:
		if snap.Gesture == input.Held {
			p.Velocity.X = p.runSpeed(snap)
		}
	}

	p.Integrate()

	if snap.Gesture == input.ShortReleased {
		if p.tether == Tethered {
			p.tether = Untethered
		} else {
			p.tether = Tethered
		}
	}
}

// runSpeed eases from half to full speed over the first seconds of a hold
func (p *Player) runSpeed(snap input.Snapshot) float64 {
	hold := float64(snap.HoldDuration())
	sign := -1.0
	if float64(snap.PointerX) > p.Position.X {
		sign = 1.0
	}
	return sign * p.params.MaxSpeed / (1.0 + math.Exp(-hold/1000.0*2.0))
}

// Draw blits the sprite at the player's position
func (p *Player) Draw(r Renderer) {
	p.blit(r, p.Position)
}

// Points returns the player's position
func (p *Player) Points() []physics.Vector2D {
	return []physics.Vector2D{p.Position}
}
