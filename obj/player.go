package obj

import (
	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/Unlucky-Polypus/Survivor/common"
	"github.com/Unlucky-Polypus/Survivor/component"
	"github.com/jakecoffman/cp"
)

// PlayerID is the owner id of the player and its weapons.
const PlayerID = 1

type PlayerConfig struct {
	Body   collision.HitboxParams
	Speed  float64
	Health int
	// IFrames is how many frames the player is invulnerable after a hit.
	IFrames int
}

// Player is the controlled character and its weapons.
type Player struct {
	*Character
	Speed   float64
	IFrames int
	Health  *component.Health
	Sword   *Sword
	Daggers *DaggerSet
	Aura    *Aura

	tester *collision.Tester
}

func NewPlayer(pos cp.Vector, cfg PlayerConfig, anim *component.Animation, tester *collision.Tester) *Player {
	c := NewCharacter(PlayerID, pos, cfg.Body, anim)
	c.Kind = "player"
	c.Tester = tester
	return &Player{
		Character: c,
		Speed:     cfg.Speed,
		IFrames:   cfg.IFrames,
		Health:    component.NewHealth(cfg.Health),
		tester:    tester,
	}
}

// Move walks along dir for dt seconds and keeps the body inside the arena.
func (p *Player) Move(dir Direction, dt float64) {
	p.MoveBy(dir.Vector().Mult(p.Speed*dt), dir, dt)
	margin := max(p.Body.Size.X, p.Body.Size.Y) / 2
	p.Pos = common.ClampToArena(p.Pos, margin)
}

// Update moves the weapons with the player and advances timers.
func (p *Player) Update(dt float64) {
	if p.Sword != nil {
		p.Sword.Follow(p.Pos)
		p.Sword.Update(dt)
	}
	if p.Daggers != nil {
		p.Daggers.Update(dt)
	}
	if p.Aura != nil {
		p.Aura.Center = p.Pos
	}
	p.Health.Tick()
}

// CollidesWithAny reports whether any player weapon hits hb. The sword is
// tested first, then the daggers, then the aura. A dagger that hits is
// consumed.
func (p *Player) CollidesWithAny(hb collision.Hitbox) bool {
	if p.Sword != nil && p.tester.Intersects(p.Sword.Hitbox(), hb) {
		return true
	}
	if p.Daggers != nil && p.Daggers.CollideWith(hb) {
		return true
	}
	if p.Aura != nil && p.Aura.Enabled && p.tester.Intersects(p.Aura.Hitbox(), hb) {
		return true
	}
	return false
}

// Weapons lists the non-consumable weapons as collidables.
func (p *Player) Weapons() []collision.Collidable {
	var parts []collision.Collidable
	if p.Sword != nil {
		parts = append(parts, p.Sword)
	}
	if p.Aura != nil && p.Aura.Enabled {
		parts = append(parts, p.Aura)
	}
	return parts
}

func (p *Player) Hurtboxes() []component.Hurtbox {
	return []component.Hurtbox{{
		ID:      "body",
		Shape:   p.Hitbox(),
		Faction: component.FactionPlayer,
		Enabled: true,
		OwnerID: p.ID,
	}}
}

func (p *Player) CanBeHit() bool {
	return p.Health.IsAlive() && p.Health.IFrames == 0
}
