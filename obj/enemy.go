package obj

import (
	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/Unlucky-Polypus/Survivor/common"
	"github.com/Unlucky-Polypus/Survivor/component"
	"github.com/jakecoffman/cp"
)

type EnemyConfig struct {
	Body          collision.HitboxParams
	Speed         float64
	Health        int
	ContactDamage int
	// Score is awarded when the enemy is defeated.
	Score int
}

// Enemy walks straight at the player and hurts it on contact.
type Enemy struct {
	*Character
	Vel           cp.Vector
	Speed         float64
	Health        *component.Health
	ContactDamage int
	Score         int
}

func NewEnemy(id int, pos cp.Vector, cfg EnemyConfig, anim *component.Animation) *Enemy {
	c := NewCharacter(id, pos, cfg.Body, anim)
	c.Kind = "enemy"
	return &Enemy{
		Character:     c,
		Speed:         cfg.Speed,
		Health:        component.NewHealth(cfg.Health),
		ContactDamage: cfg.ContactDamage,
		Score:         cfg.Score,
	}
}

// SteerToward points the velocity at target. An enemy already on the target
// stops instead of producing a NaN heading.
func (e *Enemy) SteerToward(target cp.Vector) {
	e.Vel = common.DirectionTo(e.Pos, target)
}

// Update moves the enemy along its heading for dt seconds.
func (e *Enemy) Update(dt float64) {
	e.MoveBy(e.Vel.Mult(e.Speed*dt), DirectionOf(e.Vel), dt)
}

// Hitboxes is the contact damage region, the same box as the body.
func (e *Enemy) Hitboxes() []component.Hitbox {
	return []component.Hitbox{{
		ID:      "contact",
		Shape:   e.Hitbox(),
		Active:  e.Health.IsAlive(),
		OwnerID: e.ID,
		Damage: component.Damage{
			Amount:  e.ContactDamage,
			Faction: component.FactionEnemy,
		},
	}}
}
