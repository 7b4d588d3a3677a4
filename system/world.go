package system

import (
	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/Unlucky-Polypus/Survivor/common"
	"github.com/Unlucky-Polypus/Survivor/component"
	"github.com/Unlucky-Polypus/Survivor/obj"
	"github.com/Unlucky-Polypus/Survivor/prefabs"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// weaponDamage is what any player weapon deals to an enemy per hit.
const weaponDamage = 1

// Intent is the player's request for one frame.
type Intent struct {
	Move   obj.Direction
	Throw  bool
	Target cp.Vector
}

// AnimationSource builds a fresh animation for "player" or "enemy". It may
// return nil when nothing is drawn, as in tests.
type AnimationSource func(kind string) *component.Animation

// World owns the run: the player, the enemies and the score.
type World struct {
	Player  *obj.Player
	Enemies []*obj.Enemy
	Score   int
	Elapsed float64

	Resolver *component.CombatResolver
	Events   *component.CombatEventEmitter
	Anims    AnimationSource

	catalog  *prefabs.Catalog
	director *Director
	spawner  *Spawner
	pressure DirectorOutput
	tester   *collision.Tester
	log      *zap.Logger
	nextID   int
	// directorFailing suppresses repeated warnings until the script recovers.
	directorFailing bool
}

// NewWorld creates a world and starts the first run.
func NewWorld(cat *prefabs.Catalog, director *Director, spawner *Spawner, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		Events:   &component.CombatEventEmitter{},
		catalog:  cat,
		director: director,
		spawner:  spawner,
		tester:   collision.NewTester(log),
		log:      log.Named("world"),
	}
	w.Reset()
	return w
}

// Reset starts a new run with a fresh player in the middle of the arena.
func (w *World) Reset() {
	w.Resolver = component.NewCombatResolver(w.log)
	w.Resolver.Emitter = w.Events
	w.Enemies = nil
	w.Score = 0
	w.Elapsed = 0
	w.nextID = obj.PlayerID + 1
	w.pressure = w.evalDirector()
	w.Player = w.newPlayer(cp.Vector{X: common.ArenaWidth / 2, Y: common.ArenaHeight / 2})
}

// ApplyCatalog swaps in reloaded prefabs. The player keeps its position,
// health, sword angle and daggers in flight; tuning applies immediately and
// thrown daggers keep the params they were thrown with.
func (w *World) ApplyCatalog(cat *prefabs.Catalog) {
	if cat == nil {
		return
	}
	w.catalog = cat
	old := w.Player
	w.Player = w.newPlayer(old.Pos)
	w.Player.Health = old.Health
	w.Player.Sword.Angle = old.Sword.Angle
	w.Player.Daggers.Inherit(old.Daggers)
	if w.spawner != nil {
		w.spawner.Margin = cat.Director.SpawnMargin
	}
	w.log.Info("prefabs applied")
}

// SetDirector replaces the director, e.g. after the script changed.
func (w *World) SetDirector(d *Director) {
	w.director = d
	w.directorFailing = false
}

// Pressure is the director output used for the last refill.
func (w *World) Pressure() DirectorOutput {
	return w.pressure
}

// GameOver reports whether the player died.
func (w *World) GameOver() bool {
	return !w.Player.Health.IsAlive()
}

func (w *World) newPlayer(pos cp.Vector) *obj.Player {
	c := w.catalog
	p := obj.NewPlayer(pos, obj.PlayerConfig{
		Body:    c.Player.Collider.Params(),
		Speed:   c.Player.MoveSpeed,
		Health:  c.Player.Health,
		IFrames: c.Player.IFrames,
	}, w.anim("player"), w.tester)

	p.Sword = obj.NewSword(pos, c.Sword.SizeRatio, c.Sword.SwingSpeed, c.Sword.Params(), c.Sword.DrawOffset.Vector())
	p.Sword.OwnerID = p.ID
	p.Sword.Tester = w.tester

	p.Daggers = obj.NewDaggerSet(c.Dagger.Params(), c.Dagger.SizeRatio, c.Dagger.Speed, w.tester)
	p.Daggers.Cooldown = c.Dagger.Cooldown
	p.Daggers.MaxActive = c.Dagger.MaxActive
	p.Daggers.DrawOffset = c.Dagger.DrawOffset.Vector()
	p.Daggers.Arena = common.ArenaBounds()

	p.Aura = &obj.Aura{Center: pos, Radius: c.Aura.Radius, Enabled: c.Aura.Enabled}
	return p
}

func (w *World) anim(kind string) *component.Animation {
	if w.Anims == nil {
		return nil
	}
	return w.Anims(kind)
}

// Update advances the run by dt seconds. Nothing moves once the player died.
func (w *World) Update(dt float64, in Intent) {
	if w.GameOver() || dt <= 0 {
		return
	}
	w.Elapsed += dt
	w.Resolver.Tick()

	p := w.Player
	p.Move(in.Move, dt)
	if in.Throw {
		p.Daggers.Throw(p.Pos, in.Target)
	}
	for _, e := range w.Enemies {
		e.SteerToward(p.Pos)
		e.Update(dt)
	}
	p.Update(dt)

	w.resolveCollisions()
	w.removeDefeated()

	w.pressure = w.evalDirector()
	w.populate()
}

// resolveCollisions applies enemy contact damage to the player, then player
// weapons to enemies. An enemy that lands a hit is spent and scores nothing.
func (w *World) resolveCollisions() {
	p := w.Player
	for _, e := range w.Enemies {
		if w.Resolver.Resolve(e, p, p.Health) {
			p.Health.StartIFrames(p.IFrames)
			e.Health.Dead = true
			continue
		}
		if !p.CollidesWithAny(e.Hitbox()) {
			continue
		}
		evt := component.CombatEvent{
			Type:       component.EventHit,
			AttackerID: p.ID,
			TargetID:   e.ID,
			Damage:     weaponDamage,
			Frame:      w.Resolver.Frame(),
			Pos:        e.Pos,
		}
		if e.Health.ApplyDamage(weaponDamage, evt) && !e.Health.IsAlive() {
			w.Score += e.Score
			evt.Type = component.EventDeath
			w.Events.Emit(evt)
		}
	}
}

// removeDefeated drops dead enemies, keeping the order of the rest.
func (w *World) removeDefeated() {
	kept := w.Enemies[:0]
	for _, e := range w.Enemies {
		if e.Health.IsAlive() {
			kept = append(kept, e)
			continue
		}
		w.Resolver.Forget(e.ID)
	}
	clear(w.Enemies[len(kept):])
	w.Enemies = kept
}

func (w *World) evalDirector() DirectorOutput {
	if w.director == nil {
		return DirectorOutput{MaxEnemies: w.catalog.Director.MaxEnemies, EnemySpeed: w.catalog.Director.EnemySpeed}.clamped()
	}
	out, err := w.director.Eval(w.Elapsed, w.Score)
	if err != nil && !w.directorFailing {
		w.log.Warn("director failed, using static values", zap.Error(err))
	}
	w.directorFailing = err != nil
	return out
}

func (w *World) enemyConfig() obj.EnemyConfig {
	spec := w.catalog.Enemy
	return obj.EnemyConfig{
		Body:          spec.Collider.Params(),
		Speed:         spec.MoveSpeed,
		Health:        spec.Health,
		ContactDamage: spec.ContactDamage,
		Score:         spec.Score,
	}
}

// populate spawns enemies until the director's cap is reached.
func (w *World) populate() {
	if w.spawner == nil {
		return
	}
	cfg := w.enemyConfig()
	if w.pressure.EnemySpeed > 0 {
		cfg.Speed = w.pressure.EnemySpeed
	}
	minDist := float64(common.BaseHeight) / 2
	for len(w.Enemies) < w.pressure.MaxEnemies {
		e := w.spawn(w.spawner.PositionAwayFrom(w.Player.Pos, minDist), cfg)
		e.SteerToward(w.Player.Pos)
	}
}

// Spawn adds an enemy at pos with the catalog's stats.
func (w *World) Spawn(pos cp.Vector) *obj.Enemy {
	return w.spawn(pos, w.enemyConfig())
}

func (w *World) spawn(pos cp.Vector, cfg obj.EnemyConfig) *obj.Enemy {
	e := obj.NewEnemy(w.nextID, pos, cfg, w.anim("enemy"))
	e.Tester = w.tester
	w.nextID++
	w.Enemies = append(w.Enemies, e)
	return e
}
