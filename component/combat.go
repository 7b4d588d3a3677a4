package component

import (
	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/jakecoffman/cp"
)

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHit           CombatEventType = "hit"
	EventDamageApplied CombatEventType = "damage_applied"
	EventDeath         CombatEventType = "death"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type       CombatEventType
	AttackerID int
	TargetID   int
	Damage     int
	HitboxID   string
	Frame      int
	Pos        cp.Vector
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter fans combat events out to handlers.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Subscribe registers h for every subsequent event.
func (e *CombatEventEmitter) Subscribe(h CombatEventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// Damage describes damage parameters.
type Damage struct {
	Amount         int
	CooldownFrames int
	IFrameFrames   int
	Faction        Faction
	MultiHit       bool
}

// Hitbox is an offensive collision area.
type Hitbox struct {
	ID      string
	Shape   collision.Hitbox
	Damage  Damage
	Active  bool
	OwnerID int
}

// Hurtbox is a defensive collision area.
type Hurtbox struct {
	ID      string
	Shape   collision.Hitbox
	Faction Faction
	Enabled bool
	OwnerID int
}

func shapeCenter(h collision.Hitbox) cp.Vector {
	if h == nil {
		return cp.Vector{}
	}
	return h.Bounds().Center()
}
